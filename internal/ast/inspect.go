package ast

// Children returns the direct non-nil children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *TranslationUnit:
		for _, d := range n.Decls {
			add(d)
		}
	case *FunctionDecl:
		for _, p := range n.Params {
			add(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *RecordDecl:
		for _, f := range n.Fields {
			add(f)
		}
	case *VarDecl:
		if n.Init != nil {
			add(n.Init)
		}
	case *CompoundStmt:
		for _, s := range n.Body {
			add(s)
		}
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *WhileStmt:
		add(n.Cond)
		add(n.Body)
	case *ReturnStmt:
		if n.Value != nil {
			add(n.Value)
		}
	case *ExprStmt:
		add(n.X)
	case *DeclStmt:
		if n.Decl != nil {
			add(n.Decl)
		}
	case *ParenExpr:
		add(n.X)
	case *UnaryExpr:
		add(n.X)
	case *BinaryExpr:
		add(n.X)
		add(n.Y)
	case *CallExpr:
		for _, a := range n.Args {
			add(a)
		}
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first pre-order.
// If f returns false the children of the current node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
