package minilogic

// Evaluator computes the value of an expression under an assignment.
type Evaluator struct{}

// NewEvaluator creates a new evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvalExpr evaluates an expression in the given environment. Unbound
// variables and undefined operations yield UndefValue.
func (ev *Evaluator) EvalExpr(expr Expr, env *Env) Value {
	switch e := expr.(type) {
	case LiteralExpr:
		return e.Val

	case VarExpr:
		if val := env.Get(e.Name); val != nil {
			return val
		}
		return UndefValue{}

	case BinaryExpr:
		left := ev.EvalExpr(e.Left, env)
		logical := e.Op == OpAnd || e.Op == OpOr
		if logical {
			left = truth(left)
		}
		// && and || short-circuit like their source counterparts
		if e.Op == OpAnd && IsKnownFalse(left) {
			return BoolValue{Val: false}
		}
		if e.Op == OpOr && IsKnownTrue(left) {
			return BoolValue{Val: true}
		}
		right := ev.EvalExpr(e.Right, env)
		if logical {
			right = truth(right)
		}
		if v := evalConstBinary(e.Op, left, right); v != nil {
			return v
		}
		return UndefValue{}

	case UnaryExpr:
		operand := ev.EvalExpr(e.Operand, env)
		if e.Op == OpNot {
			operand = truth(operand)
		}
		if v := evalConstUnary(e.Op, operand); v != nil {
			return v
		}
		return UndefValue{}

	default:
		return UndefValue{}
	}
}

// truth converts an integer used as a condition into a truth value.
func truth(v Value) Value {
	if i, ok := v.(IntValue); ok {
		return BoolValue{Val: i.Val != 0}
	}
	return v
}

// IsKnownTrue returns true if the value is definitively true.
func IsKnownTrue(v Value) bool {
	if b, ok := v.(BoolValue); ok {
		return b.Val
	}
	return false
}

// IsKnownFalse returns true if the value is definitively false.
func IsKnownFalse(v Value) bool {
	if b, ok := v.(BoolValue); ok {
		return !b.Val
	}
	return false
}
