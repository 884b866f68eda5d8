package branch

import (
	"testing"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/stretchr/testify/assert"
)

func TestStmtBranch(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()

	tests := []struct {
		name string
		stmt ast.Stmt
		want Kind
	}{
		{"return", ctx.NewReturn(nil), Return},
		{"break", ctx.NewBreak(), Break},
		{"continue", ctx.NewContinue(), Continue},
		{"exit call", ctx.NewExprStmt(ctx.NewCall("exit", ctx.NewInt(1))), Exit},
		{"plain call", ctx.NewExprStmt(ctx.NewCall("puts")), Regular},
		{"null", ctx.NewNull(), Empty},
		{"empty block", ctx.NewCompound(), Empty},
		{"block ending in break", ctx.NewCompound(ctx.NewNull(), ctx.NewBreak()), Break},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StmtBranch(tt.stmt)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.want != Empty && tt.want != Regular, got.Deviates())
		})
	}
}

func TestSole(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()

	assert.Equal(t, Break, Sole(ctx.NewBreak()))
	assert.Equal(t, Break, Sole(ctx.NewCompound(ctx.NewCompound(ctx.NewBreak()))))
	assert.Equal(t, Regular, Sole(ctx.NewCompound(ctx.NewNull(), ctx.NewBreak())))
	assert.Equal(t, Regular, Sole(ctx.NewCompound()))
	assert.Equal(t, Continue, Sole(ctx.NewCompound(ctx.NewContinue())))
}

func TestHasDecls(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()

	withDecl := ctx.NewCompound(ctx.NewDeclStmt(ctx.NewVar("x", "", nil)), ctx.NewBreak())
	assert.True(t, HasDecls(withDecl))
	assert.True(t, BlockBranch(withDecl).HasDecls)
	assert.False(t, HasDecls(ctx.NewCompound(ctx.NewBreak())))
}
