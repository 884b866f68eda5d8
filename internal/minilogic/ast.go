package minilogic

import "sort"

// Expr represents an expression in the MiniLogic system.
type Expr interface {
	isExpr()
	String() string
}

// LiteralExpr represents an integer or boolean literal.
type LiteralExpr struct {
	Val Value
}

func (LiteralExpr) isExpr() {}
func (e LiteralExpr) String() string {
	return e.Val.String()
}

// VarExpr represents an integer variable.
type VarExpr struct {
	Name string
}

func (VarExpr) isExpr() {}
func (e VarExpr) String() string {
	return e.Name
}

// BinaryOp represents binary operators.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
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
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// IsComparison reports whether op relates two terms.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	}
	return false
}

// Negated returns the comparison that holds exactly when op does not.
func (op BinaryOp) Negated() BinaryOp {
	switch op {
	case OpEq:
		return OpNeq
	case OpNeq:
		return OpEq
	case OpLt:
		return OpGte
	case OpLte:
		return OpGt
	case OpGt:
		return OpLte
	case OpGte:
		return OpLt
	default:
		return op
	}
}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}
func (e BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnaryOp represents unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (UnaryExpr) isExpr() {}
func (e UnaryExpr) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// Helper functions to construct expressions

// IntLit creates an integer literal expression.
func IntLit(v int64) Expr {
	return LiteralExpr{Val: IntValue{Val: v}}
}

// BoolLit creates a boolean literal expression.
func BoolLit(v bool) Expr {
	return LiteralExpr{Val: BoolValue{Val: v}}
}

// Var creates a variable reference expression.
func Var(name string) Expr {
	return VarExpr{Name: name}
}

// Binary creates a binary expression.
func Binary(op BinaryOp, left, right Expr) Expr {
	return BinaryExpr{Op: op, Left: left, Right: right}
}

// Unary creates a unary expression.
func Unary(op UnaryOp, operand Expr) Expr {
	return UnaryExpr{Op: op, Operand: operand}
}

// Not creates a logical not expression.
func Not(e Expr) Expr {
	return UnaryExpr{Op: OpNot, Operand: e}
}

// And conjoins its operands. The empty conjunction is true.
func And(es ...Expr) Expr {
	if len(es) == 0 {
		return BoolLit(true)
	}
	result := es[0]
	for _, e := range es[1:] {
		result = BinaryExpr{Op: OpAnd, Left: result, Right: e}
	}
	return result
}

// Or disjoins its operands. The empty disjunction is false.
func Or(es ...Expr) Expr {
	if len(es) == 0 {
		return BoolLit(false)
	}
	result := es[0]
	for _, e := range es[1:] {
		result = BinaryExpr{Op: OpOr, Left: result, Right: e}
	}
	return result
}

// Eq creates an equality expression.
func Eq(left, right Expr) Expr {
	return BinaryExpr{Op: OpEq, Left: left, Right: right}
}

// Neq creates a not-equal expression.
func Neq(left, right Expr) Expr {
	return BinaryExpr{Op: OpNeq, Left: left, Right: right}
}

// Lt creates a less-than expression.
func Lt(left, right Expr) Expr {
	return BinaryExpr{Op: OpLt, Left: left, Right: right}
}

// Gt creates a greater-than expression.
func Gt(left, right Expr) Expr {
	return BinaryExpr{Op: OpGt, Left: left, Right: right}
}

// IsBool reports whether e denotes a truth value rather than an integer.
func IsBool(e Expr) bool {
	switch e := e.(type) {
	case LiteralExpr:
		_, ok := e.Val.(BoolValue)
		return ok
	case UnaryExpr:
		return e.Op == OpNot
	case BinaryExpr:
		return e.Op.IsComparison() || e.Op == OpAnd || e.Op == OpOr
	default:
		return false
	}
}

// Vars returns the variable names occurring in e, sorted and unique.
func Vars(e Expr) []string {
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case VarExpr:
			seen[e.Name] = true
		case BinaryExpr:
			walk(e.Left)
			walk(e.Right)
		case UnaryExpr:
			walk(e.Operand)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
