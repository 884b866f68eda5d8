package ast

var inverseComparison = map[BinaryOp]BinaryOp{
	OpEq: OpNe,
	OpNe: OpEq,
	OpLt: OpGe,
	OpLe: OpGt,
	OpGt: OpLe,
	OpGe: OpLt,
}

// Negate builds the logical negation of e in ctx. Comparisons are
// inverted, a leading "!" is removed and integer literals are folded;
// anything else is wrapped in "!". The operands of e are shared.
func Negate(ctx *Context, e Expr) Expr {
	switch x := Unparen(e).(type) {
	case *BinaryExpr:
		if inv, ok := inverseComparison[x.Op]; ok {
			return ctx.NewBinary(inv, x.X, x.Y)
		}
	case *UnaryExpr:
		if x.Op == OpNot {
			return Unparen(x.X)
		}
	case *IntLit:
		if x.Value == 0 {
			return ctx.NewInt(1)
		}
		return ctx.NewInt(0)
	}
	return ctx.NewUnary(OpNot, e)
}
