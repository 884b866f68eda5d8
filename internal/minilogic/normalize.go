package minilogic

// Normalizer rewrites expressions into a simpler, equivalent form.
type Normalizer struct {
	config Config
}

// NewNormalizer creates a new normalizer.
func NewNormalizer(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Simplify folds constants, applies the boolean identities and pushes
// negation into comparisons. The result is equivalent to expr under
// every assignment.
func (n *Normalizer) Simplify(expr Expr) Expr {
	switch e := expr.(type) {
	case LiteralExpr, VarExpr:
		return e

	case BinaryExpr:
		left := n.Simplify(e.Left)
		right := n.Simplify(e.Right)

		// Constant folding
		if llit, lok := left.(LiteralExpr); lok {
			if rlit, rok := right.(LiteralExpr); rok {
				if result := evalConstBinary(e.Op, llit.Val, rlit.Val); result != nil {
					return LiteralExpr{Val: result}
				}
			}
		}

		switch e.Op {
		case OpAnd:
			// false && x => false, x && false => false
			if isBoolLit(left, false) || isBoolLit(right, false) {
				return BoolLit(false)
			}
			// true && x => x
			if isBoolLit(left, true) {
				return right
			}
			// x && true => x
			if isBoolLit(right, true) {
				return left
			}
			if exprEqual(left, right) {
				return left
			}

		case OpOr:
			// true || x => true, x || true => true
			if isBoolLit(left, true) || isBoolLit(right, true) {
				return BoolLit(true)
			}
			// false || x => x
			if isBoolLit(left, false) {
				return right
			}
			// x || false => x
			if isBoolLit(right, false) {
				return left
			}
			if exprEqual(left, right) {
				return left
			}

		case OpEq, OpLte, OpGte:
			// x == x => true
			if exprEqual(left, right) {
				return BoolLit(true)
			}

		case OpNeq, OpLt, OpGt:
			// x < x => false
			if exprEqual(left, right) {
				return BoolLit(false)
			}

		case OpAdd:
			if isIntLit(right, 0) {
				return left
			}
			if isIntLit(left, 0) {
				return right
			}

		case OpSub:
			if isIntLit(right, 0) {
				return left
			}

		case OpMul:
			if isIntLit(right, 1) {
				return left
			}
			if isIntLit(left, 1) {
				return right
			}
		}

		return BinaryExpr{Op: e.Op, Left: left, Right: right}

	case UnaryExpr:
		operand := n.Simplify(e.Operand)

		// Constant folding
		if lit, ok := operand.(LiteralExpr); ok {
			if result := evalConstUnary(e.Op, lit.Val); result != nil {
				return LiteralExpr{Val: result}
			}
		}

		if e.Op == OpNot {
			switch inner := operand.(type) {
			case UnaryExpr:
				// Double negation elimination
				if inner.Op == OpNot {
					return inner.Operand
				}
			case BinaryExpr:
				// !(a < b) => a >= b
				if inner.Op.IsComparison() {
					return BinaryExpr{Op: inner.Op.Negated(), Left: inner.Left, Right: inner.Right}
				}
			}
		}
		if e.Op == OpNeg {
			if inner, ok := operand.(UnaryExpr); ok && inner.Op == OpNeg {
				return inner.Operand
			}
		}

		return UnaryExpr{Op: e.Op, Operand: operand}

	default:
		return expr
	}
}

func isBoolLit(e Expr, want bool) bool {
	lit, ok := e.(LiteralExpr)
	if !ok {
		return false
	}
	b, ok := lit.Val.(BoolValue)
	return ok && b.Val == want
}

func isIntLit(e Expr, want int64) bool {
	lit, ok := e.(LiteralExpr)
	if !ok {
		return false
	}
	i, ok := lit.Val.(IntValue)
	return ok && i.Val == want
}

func evalConstBinary(op BinaryOp, left, right Value) Value {
	l, lInt := left.(IntValue)
	r, rInt := right.(IntValue)
	if lInt && rInt {
		switch op {
		case OpAdd:
			return IntValue{Val: l.Val + r.Val}
		case OpSub:
			return IntValue{Val: l.Val - r.Val}
		case OpMul:
			return IntValue{Val: l.Val * r.Val}
		case OpDiv:
			if r.Val != 0 {
				return IntValue{Val: l.Val / r.Val}
			}
		case OpMod:
			if r.Val != 0 {
				return IntValue{Val: l.Val % r.Val}
			}
		case OpEq:
			return BoolValue{Val: l.Val == r.Val}
		case OpNeq:
			return BoolValue{Val: l.Val != r.Val}
		case OpLt:
			return BoolValue{Val: l.Val < r.Val}
		case OpLte:
			return BoolValue{Val: l.Val <= r.Val}
		case OpGt:
			return BoolValue{Val: l.Val > r.Val}
		case OpGte:
			return BoolValue{Val: l.Val >= r.Val}
		}
		return nil
	}

	lb, lBool := left.(BoolValue)
	rb, rBool := right.(BoolValue)
	if lBool && rBool {
		switch op {
		case OpAnd:
			return BoolValue{Val: lb.Val && rb.Val}
		case OpOr:
			return BoolValue{Val: lb.Val || rb.Val}
		case OpEq:
			return BoolValue{Val: lb.Val == rb.Val}
		case OpNeq:
			return BoolValue{Val: lb.Val != rb.Val}
		}
	}
	return nil
}

func evalConstUnary(op UnaryOp, operand Value) Value {
	switch op {
	case OpNot:
		if b, ok := operand.(BoolValue); ok {
			return BoolValue{Val: !b.Val}
		}
	case OpNeg:
		if i, ok := operand.(IntValue); ok {
			return IntValue{Val: -i.Val}
		}
	}
	return nil
}
