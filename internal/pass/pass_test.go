package pass

import (
	"errors"
	"testing"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRelinksSlots(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	x := ctx.NewIdent("x")
	null := ctx.NewNull()
	brk := ctx.NewBreak()
	then := ctx.NewCompound(brk)
	els := ctx.NewCompound(ctx.NewReturn(nil))
	ifs := ctx.NewIf(x, then, els)
	loopBody := ctx.NewCompound(ctx.NewContinue())
	loop := ctx.NewWhile(x, loopBody)
	body := ctx.NewCompound(null, ifs, loop)
	fn := ctx.NewFunction("f", nil, body)
	tu := ctx.NewTranslationUnit(fn)

	subs := NewSubstitutions()
	subs.Set(null, nil)
	subs.Set(then, nil)
	subs.Set(els, nil)
	subs.Set(loopBody, nil)

	root, applied := subs.Apply(ctx, tu)
	assert.Same(t, tu, root)
	assert.Equal(t, 4, applied)

	require.Len(t, body.Body, 2)
	assert.Same(t, ifs, body.Body[0])
	assert.True(t, ast.IsEmptyCompound(ifs.Then), "required slot gets an empty block")
	assert.Nil(t, ifs.Else, "optional slot is cleared")
	assert.True(t, ast.IsEmptyCompound(loop.Body))
}

func TestApplyFollowsChains(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	a := ctx.NewExprStmt(ctx.NewIdent("a"))
	b := ctx.NewExprStmt(ctx.NewIdent("b"))
	c := ctx.NewExprStmt(ctx.NewIdent("c"))
	body := ctx.NewCompound(a)

	subs := NewSubstitutions()
	subs.Set(a, b)
	subs.Set(b, c)
	assert.Same(t, c, subs.Current(a))

	_, applied := subs.Apply(ctx, body)
	assert.Equal(t, 2, applied)
	require.Len(t, body.Body, 1)
	assert.Same(t, c, body.Body[0])

	subs.Set(c, nil)
	assert.Nil(t, subs.Current(a))
}

func TestApplyUnreachableCountsNothing(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	body := ctx.NewCompound(ctx.NewBreak())

	subs := NewSubstitutions()
	subs.Set(ctx.NewNull(), nil)
	_, applied := subs.Apply(ctx, body)
	assert.Zero(t, applied)
	assert.Len(t, body.Body, 1)
}

func TestApplyFunctionBodyReplacement(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	body := ctx.NewCompound(ctx.NewNull())
	fn := ctx.NewFunction("f", nil, body)

	subs := NewSubstitutions()
	ret := ctx.NewReturn(nil)
	subs.Set(body, ret)
	subs.Apply(ctx, fn)

	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Body, 1)
	assert.Same(t, ret, fn.Body.Body[0])
}

type recorder struct {
	seen  []ast.Node
	abort ast.Node
}

func (r *recorder) VisitCompound(c *ast.CompoundStmt) bool {
	r.seen = append(r.seen, c)
	return c != r.abort
}

func (r *recorder) VisitIf(s *ast.IfStmt) bool {
	r.seen = append(r.seen, s)
	return s != r.abort
}

func TestWalkPostOrderAndCapabilities(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	inner := ctx.NewCompound(ctx.NewBreak())
	ifs := ctx.NewIf(ctx.NewIdent("c"), inner, nil)
	loop := ctx.NewWhile(ctx.NewInt(1), ctx.NewCompound(ifs))
	outer := ctx.NewCompound(loop)

	r := &recorder{}
	require.NoError(t, Walk(outer, r, nil))
	require.Len(t, r.seen, 4)
	assert.Same(t, inner, r.seen[0])
	assert.Same(t, ifs, r.seen[1])
	assert.Same(t, outer, r.seen[3], "parent after children, while loops passed through")

	r = &recorder{abort: ifs}
	require.NoError(t, Walk(outer, r, nil))
	assert.Len(t, r.seen, 2)
}

type failingRecords struct{}

func (failingRecords) VisitRecord(*ast.RecordDecl) error { return errors.New("boom") }

func TestWalkRecordError(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	tu := ctx.NewTranslationUnit(ctx.NewRecord("r"))
	assert.EqualError(t, Walk(tu, failingRecords{}, nil), "boom")
}

type removeNulls struct {
	Base
}

func (p *removeNulls) VisitCompound(c *ast.CompoundStmt) bool {
	for _, s := range c.Body {
		if _, ok := s.(*ast.NullStmt); ok {
			p.Substitute(s, nil)
		}
	}
	return true
}

func (p *removeNulls) Run(tu *ast.TranslationUnit) (bool, error) {
	return p.Transform(tu, p)
}

func TestBaseTransformAndStop(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	body := ctx.NewCompound(ctx.NewNull(), ctx.NewBreak())
	tu := ctx.NewTranslationUnit(ctx.NewFunction("f", nil, body))

	env := NewEnv(ctx, nil)
	p := &removeNulls{Base: NewBase("remove-nulls", env)}
	var _ Pass = p

	changed, err := p.Run(tu)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, body.Body, 1)

	changed, err = p.Run(tu)
	require.NoError(t, err)
	assert.False(t, changed, "second run finds nothing")

	body.Body = append(body.Body, ctx.NewNull())
	p.Stop()
	assert.True(t, p.Stopped())
	assert.True(t, env.Stop.Requested())
	changed, err = p.Run(tu)
	require.NoError(t, err)
	assert.False(t, changed, "no progress after stop")
	assert.Len(t, body.Body, 2)
}

func TestWalkPollsStop(t *testing.T) {
	t.Parallel()
	ctx := ast.NewContext()
	first := ctx.NewCompound()
	second := ctx.NewCompound()
	outer := ctx.NewCompound(first, second)

	r := &recorder{}
	calls := 0
	err := Walk(outer, r, func() bool {
		calls++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []ast.Node{first}, r.seen)
	assert.Equal(t, 1, calls)
}
