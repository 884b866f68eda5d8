package ast

// Context owns every node of one tree. Nodes are never freed
// individually; a rewrite that drops a node simply stops linking it.
type Context struct {
	nodes []Node
}

// NewContext creates an empty arena.
func NewContext() *Context {
	return &Context{}
}

// Len returns the number of nodes allocated so far.
func (c *Context) Len() int {
	return len(c.nodes)
}

func alloc[T Node](c *Context, n T) T {
	c.nodes = append(c.nodes, n)
	return n
}

func (c *Context) NewCompound(body ...Stmt) *CompoundStmt {
	return alloc(c, &CompoundStmt{Body: body})
}

func (c *Context) NewIf(cond Expr, then, els Stmt) *IfStmt {
	return alloc(c, &IfStmt{Cond: cond, Then: then, Else: els})
}

func (c *Context) NewWhile(cond Expr, body Stmt) *WhileStmt {
	return alloc(c, &WhileStmt{Cond: cond, Body: body})
}

func (c *Context) NewBreak() *BreakStmt {
	return alloc(c, &BreakStmt{})
}

func (c *Context) NewContinue() *ContinueStmt {
	return alloc(c, &ContinueStmt{})
}

func (c *Context) NewReturn(value Expr) *ReturnStmt {
	return alloc(c, &ReturnStmt{Value: value})
}

func (c *Context) NewExprStmt(x Expr) *ExprStmt {
	return alloc(c, &ExprStmt{X: x})
}

func (c *Context) NewDeclStmt(d *VarDecl) *DeclStmt {
	return alloc(c, &DeclStmt{Decl: d})
}

func (c *Context) NewNull() *NullStmt {
	return alloc(c, &NullStmt{})
}

func (c *Context) NewInt(v int64) *IntLit {
	return alloc(c, &IntLit{Value: v})
}

func (c *Context) NewIdent(name string) *Ident {
	return alloc(c, &Ident{Name: name})
}

func (c *Context) NewParen(x Expr) *ParenExpr {
	return alloc(c, &ParenExpr{X: x})
}

func (c *Context) NewUnary(op UnaryOp, x Expr) *UnaryExpr {
	return alloc(c, &UnaryExpr{Op: op, X: x})
}

func (c *Context) NewBinary(op BinaryOp, x, y Expr) *BinaryExpr {
	return alloc(c, &BinaryExpr{Op: op, X: x, Y: y})
}

func (c *Context) NewCall(fun string, args ...Expr) *CallExpr {
	return alloc(c, &CallExpr{Fun: fun, Args: args})
}

func (c *Context) NewVar(name, typ string, init Expr) *VarDecl {
	return alloc(c, &VarDecl{Name: name, Type: typ, Init: init})
}

func (c *Context) NewField(name, typ string) *FieldDecl {
	return alloc(c, &FieldDecl{Name: name, Type: typ})
}

func (c *Context) NewRecord(name string, fields ...*FieldDecl) *RecordDecl {
	return alloc(c, &RecordDecl{Name: name, Fields: fields})
}

func (c *Context) NewFunction(name string, params []*VarDecl, body *CompoundStmt) *FunctionDecl {
	return alloc(c, &FunctionDecl{Name: name, Params: params, Body: body})
}

func (c *Context) NewTranslationUnit(decls ...Decl) *TranslationUnit {
	return alloc(c, &TranslationUnit{Decls: decls})
}
