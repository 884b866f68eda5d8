package pass

import "github.com/konchunas/rellic/internal/ast"

// Capability interfaces. A visitor implements the ones for the node
// kinds it inspects; every other node is passed through while its
// children are still visited. Returning false aborts the walk.

type CompoundVisitor interface {
	VisitCompound(c *ast.CompoundStmt) bool
}

type IfVisitor interface {
	VisitIf(s *ast.IfStmt) bool
}

type WhileVisitor interface {
	VisitWhile(s *ast.WhileStmt) bool
}

type FunctionVisitor interface {
	VisitFunction(f *ast.FunctionDecl) bool
}

// RecordVisitor may fail; the error aborts the walk and is returned.
type RecordVisitor interface {
	VisitRecord(r *ast.RecordDecl) error
}

// Walk visits the tree rooted at root in post-order, so children are
// always seen before their parent. stopped is polled after every node.
func Walk(root ast.Node, v any, stopped func() bool) error {
	w := &walker{v: v, stopped: stopped}
	w.walk(root)
	return w.err
}

type walker struct {
	v       any
	stopped func() bool
	done    bool
	err     error
}

func (w *walker) walk(n ast.Node) {
	for _, c := range ast.Children(n) {
		if w.done {
			return
		}
		w.walk(c)
	}
	if w.done {
		return
	}
	if !w.visit(n) {
		w.done = true
		return
	}
	if w.stopped != nil && w.stopped() {
		w.done = true
	}
}

func (w *walker) visit(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.CompoundStmt:
		if cv, ok := w.v.(CompoundVisitor); ok {
			return cv.VisitCompound(n)
		}
	case *ast.IfStmt:
		if iv, ok := w.v.(IfVisitor); ok {
			return iv.VisitIf(n)
		}
	case *ast.WhileStmt:
		if wv, ok := w.v.(WhileVisitor); ok {
			return wv.VisitWhile(n)
		}
	case *ast.FunctionDecl:
		if fv, ok := w.v.(FunctionVisitor); ok {
			return fv.VisitFunction(n)
		}
	case *ast.RecordDecl:
		if rv, ok := w.v.(RecordVisitor); ok {
			if err := rv.VisitRecord(n); err != nil {
				w.err = err
				return false
			}
		}
	}
	return true
}
