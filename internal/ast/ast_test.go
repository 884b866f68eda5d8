package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStatements(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	x := ctx.NewIdent("x")
	y := ctx.NewIdent("y")

	chain := ctx.NewIf(
		ctx.NewBinary(OpGt, x, ctx.NewInt(0)),
		ctx.NewCompound(ctx.NewExprStmt(ctx.NewBinary(OpAssign, y, ctx.NewInt(1)))),
		ctx.NewIf(
			ctx.NewBinary(OpLt, x, ctx.NewInt(0)),
			ctx.NewCompound(ctx.NewExprStmt(ctx.NewBinary(OpAssign, y, ctx.NewInt(2)))),
			ctx.NewCompound(ctx.NewReturn(nil)),
		),
	)
	loop := ctx.NewWhile(
		ctx.NewBinary(OpNe, x, ctx.NewInt(0)),
		ctx.NewCompound(
			ctx.NewExprStmt(ctx.NewUnary(OpPostDec, x)),
			ctx.NewBreak(),
		),
	)
	fn := ctx.NewFunction("f", []*VarDecl{ctx.NewVar("x", "", nil)}, ctx.NewCompound(
		ctx.NewDeclStmt(ctx.NewVar("y", "", ctx.NewInt(0))),
		chain,
		loop,
		ctx.NewNull(),
	))

	want := `void f(int x) {
  int y = 0;
  if (x > 0) {
    y = 1;
  } else if (x < 0) {
    y = 2;
  } else {
    return;
  }
  while (x != 0) {
    x--;
    break;
  }
  ;
}`
	assert.Equal(t, want, Print(fn))
}

func TestPrintExprPrecedence(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	a, b, c := ctx.NewIdent("a"), ctx.NewIdent("b"), ctx.NewIdent("c")

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "sum times",
			expr: ctx.NewBinary(OpMul, ctx.NewBinary(OpAdd, a, b), c),
			want: "(a + b) * c",
		},
		{
			name: "left assoc sub",
			expr: ctx.NewBinary(OpSub, a, ctx.NewBinary(OpSub, b, c)),
			want: "a - (b - c)",
		},
		{
			name: "or inside and",
			expr: ctx.NewBinary(OpLAnd, ctx.NewBinary(OpLOr, a, b), c),
			want: "(a || b) && c",
		},
		{
			name: "not of comparison",
			expr: ctx.NewUnary(OpNot, ctx.NewBinary(OpLt, a, b)),
			want: "!(a < b)",
		},
		{
			name: "call args",
			expr: ctx.NewCall("g", a, ctx.NewBinary(OpAdd, b, ctx.NewInt(1))),
			want: "g(a, b + 1)",
		},
		{
			name: "explicit paren",
			expr: ctx.NewParen(ctx.NewBinary(OpEq, a, b)),
			want: "(a == b)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(tt.expr))
		})
	}
}

func TestPrintRecord(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	rec := ctx.NewRecord("point", ctx.NewField("x", "int"), ctx.NewField("y", "long"))
	assert.Equal(t, "struct point {\n  int x;\n  long y;\n};", Print(rec))
}

func TestNegate(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	x := ctx.NewIdent("x")

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"eq", ctx.NewBinary(OpEq, x, ctx.NewInt(0)), "x != 0"},
		{"lt", ctx.NewBinary(OpLt, x, ctx.NewInt(3)), "x >= 3"},
		{"ge in parens", ctx.NewParen(ctx.NewBinary(OpGe, x, ctx.NewInt(3))), "x < 3"},
		{"double negation", ctx.NewUnary(OpNot, ctx.NewParen(x)), "x"},
		{"zero", ctx.NewInt(0), "1"},
		{"nonzero", ctx.NewInt(7), "0"},
		{"conjunction", ctx.NewBinary(OpLAnd, x, x), "!(x && x)"},
		{"call", ctx.NewCall("f"), "!f()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(Negate(ctx, tt.expr)))
		})
	}
}

func TestHasSideEffects(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	x := ctx.NewIdent("x")

	assert.False(t, HasSideEffects(ctx.NewBinary(OpAdd, x, ctx.NewInt(1))))
	assert.False(t, HasSideEffects(ctx.NewUnary(OpNot, x)))
	assert.True(t, HasSideEffects(ctx.NewBinary(OpAssign, x, ctx.NewInt(1))))
	assert.True(t, HasSideEffects(ctx.NewUnary(OpPostInc, x)))
	assert.True(t, HasSideEffects(ctx.NewBinary(OpLt, ctx.NewCall("f"), x)))

	pc := NewPurityContext("abs")
	assert.False(t, pc.HasSideEffects(ctx.NewCall("abs", x)))
	assert.True(t, pc.HasSideEffects(ctx.NewCall("abs", ctx.NewCall("g"))))
}

func TestContextAllocates(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	require.Equal(t, 0, ctx.Len())

	b1 := ctx.NewBreak()
	b2 := ctx.NewBreak()
	assert.NotSame(t, b1, b2)
	assert.Equal(t, 2, ctx.Len())
}

func TestInspectOrder(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	x := ctx.NewIdent("x")
	body := ctx.NewCompound(ctx.NewBreak())
	w := ctx.NewWhile(x, body)

	var seen []Node
	Inspect(w, func(n Node) bool {
		seen = append(seen, n)
		return true
	})
	require.Len(t, seen, 4)
	assert.Same(t, w, seen[0])
	assert.Same(t, x, seen[1])
	assert.Same(t, body, seen[2])
}
