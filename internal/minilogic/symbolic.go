package minilogic

// CondSolver attempts to resolve a condition to a concrete boolean
// without search.
type CondSolver interface {
	Solve(cond Expr, env *Env) (BoolValue, bool)
}

// BasicCondSolver provides simple, sound condition deductions: it
// succeeds when the condition evaluates to a constant under env.
type BasicCondSolver struct{}

func (BasicCondSolver) Solve(cond Expr, env *Env) (BoolValue, bool) {
	switch c := cond.(type) {
	case LiteralExpr:
		if b, ok := c.Val.(BoolValue); ok {
			return b, true
		}
	case UnaryExpr:
		if c.Op == OpNot {
			if v, ok := (BasicCondSolver{}).Solve(c.Operand, env); ok {
				return BoolValue{Val: !v.Val}, true
			}
		}
	case BinaryExpr:
		switch c.Op {
		case OpEq, OpNeq:
			if exprEqual(c.Left, c.Right) {
				return BoolValue{Val: c.Op == OpEq}, true
			}
		}
	}

	if env != nil && len(env.vars) > 0 {
		ev := NewEvaluator()
		if b, ok := ev.EvalExpr(cond, env).(BoolValue); ok {
			return b, true
		}
	}
	return BoolValue{}, false
}

func exprEqual(a, b Expr) bool {
	switch left := a.(type) {
	case LiteralExpr:
		right, ok := b.(LiteralExpr)
		if !ok {
			return false
		}
		return left.Val.Equal(right.Val)
	case VarExpr:
		right, ok := b.(VarExpr)
		if !ok {
			return false
		}
		return left.Name == right.Name
	case BinaryExpr:
		right, ok := b.(BinaryExpr)
		if !ok {
			return false
		}
		if left.Op != right.Op {
			return false
		}
		return exprEqual(left.Left, right.Left) && exprEqual(left.Right, right.Right)
	case UnaryExpr:
		right, ok := b.(UnaryExpr)
		if !ok {
			return false
		}
		if left.Op != right.Op {
			return false
		}
		return exprEqual(left.Operand, right.Operand)
	default:
		return false
	}
}
