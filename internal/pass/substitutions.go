package pass

import "github.com/konchunas/rellic/internal/ast"

// Substitutions records node replacements during a traversal. A nil
// replacement removes the node. Later writes for the same node
// overwrite earlier ones.
type Substitutions struct {
	m map[ast.Node]ast.Node
}

func NewSubstitutions() *Substitutions {
	return &Substitutions{m: make(map[ast.Node]ast.Node)}
}

// Set records that from is to be replaced by to. Pass an untyped nil to
// remove from.
func (s *Substitutions) Set(from, to ast.Node) {
	s.m[from] = to
}

// Lookup returns the replacement registered for n.
func (s *Substitutions) Lookup(n ast.Node) (ast.Node, bool) {
	r, ok := s.m[n]
	return r, ok
}

// Current follows registered replacements starting at n and returns the
// node that will end up in its place, or nil if it is removed.
func (s *Substitutions) Current(n ast.Node) ast.Node {
	for i := 0; i <= len(s.m); i++ {
		r, ok := s.m[n]
		if !ok || r == n {
			return n
		}
		if r == nil {
			return nil
		}
		n = r
	}
	return n
}

func (s *Substitutions) Len() int {
	return len(s.m)
}

// Apply relinks every parent slot that holds a registered node to its
// replacement, throughout the tree rooted at root. It returns the new
// root and the number of replacements that were reachable.
func (s *Substitutions) Apply(ctx *ast.Context, root ast.Node) (ast.Node, int) {
	if len(s.m) == 0 {
		return root, 0
	}
	a := &applier{subs: s, ctx: ctx, active: make(map[ast.Node]bool)}
	return a.node(root), a.applied
}

type applier struct {
	subs    *Substitutions
	ctx     *ast.Context
	applied int
	active  map[ast.Node]bool
}

func (a *applier) node(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	if r, ok := a.subs.m[n]; ok && r != n && !a.active[n] {
		a.applied++
		if r == nil {
			return nil
		}
		a.active[n] = true
		defer delete(a.active, n)
		return a.node(r)
	}
	a.relink(n)
	return n
}

// stmt relinks an optional statement slot.
func (a *applier) stmt(s ast.Stmt) ast.Stmt {
	if s == nil {
		return nil
	}
	r, _ := a.node(s).(ast.Stmt)
	return r
}

// body relinks a required statement slot; removal leaves an empty block.
func (a *applier) body(s ast.Stmt) ast.Stmt {
	if r := a.stmt(s); r != nil {
		return r
	}
	return a.ctx.NewCompound()
}

func (a *applier) compound(c *ast.CompoundStmt) *ast.CompoundStmt {
	switch r := a.stmt(c).(type) {
	case *ast.CompoundStmt:
		return r
	case nil:
		return a.ctx.NewCompound()
	default:
		return a.ctx.NewCompound(r)
	}
}

// expr relinks an expression slot. Expressions cannot be removed, so a
// nil replacement keeps the original.
func (a *applier) expr(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	if r, ok := a.node(e).(ast.Expr); ok {
		return r
	}
	return e
}

func (a *applier) relink(n ast.Node) {
	switch n := n.(type) {
	case *ast.TranslationUnit:
		decls := make([]ast.Decl, 0, len(n.Decls))
		for _, d := range n.Decls {
			if r, ok := a.node(d).(ast.Decl); ok {
				decls = append(decls, r)
			}
		}
		n.Decls = decls
	case *ast.FunctionDecl:
		for i, p := range n.Params {
			if r, ok := a.node(p).(*ast.VarDecl); ok {
				n.Params[i] = r
			}
		}
		if n.Body != nil {
			n.Body = a.compound(n.Body)
		}
	case *ast.RecordDecl:
		fields := make([]*ast.FieldDecl, 0, len(n.Fields))
		for _, f := range n.Fields {
			if r, ok := a.node(f).(*ast.FieldDecl); ok {
				fields = append(fields, r)
			}
		}
		n.Fields = fields
	case *ast.VarDecl:
		n.Init = a.expr(n.Init)
	case *ast.CompoundStmt:
		body := make([]ast.Stmt, 0, len(n.Body))
		for _, s := range n.Body {
			if r := a.stmt(s); r != nil {
				body = append(body, r)
			}
		}
		n.Body = body
	case *ast.IfStmt:
		n.Cond = a.expr(n.Cond)
		n.Then = a.body(n.Then)
		n.Else = a.stmt(n.Else)
	case *ast.WhileStmt:
		n.Cond = a.expr(n.Cond)
		n.Body = a.body(n.Body)
	case *ast.ReturnStmt:
		n.Value = a.expr(n.Value)
	case *ast.ExprStmt:
		n.X = a.expr(n.X)
	case *ast.DeclStmt:
		if n.Decl == nil {
			return
		}
		if r, ok := a.node(n.Decl).(*ast.VarDecl); ok {
			n.Decl = r
		}
	case *ast.ParenExpr:
		n.X = a.expr(n.X)
	case *ast.UnaryExpr:
		n.X = a.expr(n.X)
	case *ast.BinaryExpr:
		n.X = a.expr(n.X)
		n.Y = a.expr(n.Y)
	case *ast.CallExpr:
		for i, arg := range n.Args {
			n.Args[i] = a.expr(arg)
		}
	}
}
