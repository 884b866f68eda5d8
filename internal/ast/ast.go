// Package ast defines the statement tree that the structuring passes
// rewrite. Nodes are allocated by a Context and compared by identity.
package ast

// Node is any element of the tree.
type Node interface {
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Decl is a declaration node.
type Decl interface {
	Node
	declNode()
}

// Statements

// CompoundStmt is a brace-enclosed statement sequence.
type CompoundStmt struct {
	Body []Stmt
}

// IfStmt is a two-armed conditional. Else is nil when absent.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// The padding fields below give otherwise empty nodes a non-zero size
// so that distinct allocations never share an address.

type BreakStmt struct {
	_ byte
}

type ContinueStmt struct {
	_ byte
}

// ReturnStmt returns from the enclosing function. Value may be nil.
type ReturnStmt struct {
	Value Expr
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	X Expr
}

// DeclStmt introduces a local variable.
type DeclStmt struct {
	Decl *VarDecl
}

// NullStmt is the empty statement ";".
type NullStmt struct {
	_ byte
}

func (*CompoundStmt) node() {}
func (*IfStmt) node()       {}
func (*WhileStmt) node()    {}
func (*BreakStmt) node()    {}
func (*ContinueStmt) node() {}
func (*ReturnStmt) node()   {}
func (*ExprStmt) node()     {}
func (*DeclStmt) node()     {}
func (*NullStmt) node()     {}

func (*CompoundStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()     {}
func (*DeclStmt) stmtNode()     {}
func (*NullStmt) stmtNode()     {}

// Expressions

// UnaryOp is a prefix or postfix operator.
type UnaryOp int

const (
	_ UnaryOp = iota
	OpNot
	OpNeg
	OpBitNot
	OpPostInc
	OpPostDec
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	case OpPostInc:
		return "++"
	case OpPostDec:
		return "--"
	default:
		return "?"
	}
}

// BinaryOp is an infix operator, assignments included.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLAnd
	OpLOr
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLAnd:
		return "&&"
	case OpLOr:
		return "||"
	case OpAssign:
		return "="
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	default:
		return "?"
	}
}

// IsComparison reports whether op yields a truth value from two integers.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsAssignment reports whether op writes its left operand.
func (op BinaryOp) IsAssignment() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign:
		return true
	}
	return false
}

type IntLit struct {
	Value int64
}

type Ident struct {
	Name string
}

type ParenExpr struct {
	X Expr
}

type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

type BinaryExpr struct {
	Op BinaryOp
	X  Expr
	Y  Expr
}

// CallExpr calls a named function. Calls are always treated as impure.
type CallExpr struct {
	Fun  string
	Args []Expr
}

func (*IntLit) node()     {}
func (*Ident) node()      {}
func (*ParenExpr) node()  {}
func (*UnaryExpr) node()  {}
func (*BinaryExpr) node() {}
func (*CallExpr) node()   {}

func (*IntLit) exprNode()     {}
func (*Ident) exprNode()      {}
func (*ParenExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}

// Declarations

// VarDecl is a local variable with an optional initializer.
type VarDecl struct {
	Name string
	Type string
	Init Expr
}

// FieldDecl is one member of a RecordDecl.
type FieldDecl struct {
	Name string
	Type string
}

// RecordDecl is an aggregate type with ordered fields.
type RecordDecl struct {
	Name   string
	Fields []*FieldDecl
}

type FunctionDecl struct {
	Name   string
	Params []*VarDecl
	Body   *CompoundStmt
}

// TranslationUnit is the root of a tree.
type TranslationUnit struct {
	Decls []Decl
}

func (*VarDecl) node()         {}
func (*FieldDecl) node()       {}
func (*RecordDecl) node()      {}
func (*FunctionDecl) node()    {}
func (*TranslationUnit) node() {}

func (*VarDecl) declNode()         {}
func (*FieldDecl) declNode()       {}
func (*RecordDecl) declNode()      {}
func (*FunctionDecl) declNode()    {}
func (*TranslationUnit) declNode() {}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

// IsEmptyCompound reports whether s is a compound with no statements.
func IsEmptyCompound(s Stmt) bool {
	c, ok := s.(*CompoundStmt)
	return ok && len(c.Body) == 0
}
