package passes

import (
	"testing"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/frontend"
	"github.com/konchunas/rellic/internal/pass"
	"github.com/stretchr/testify/require"
)

type newPass func(*pass.Env) (pass.Pass, error)

func reachBasedRefine(env *pass.Env) (pass.Pass, error) { return NewReachBasedRefine(env) }
func loopRefine(env *pass.Env) (pass.Pass, error)       { return NewLoopRefine(env) }
func deadStmtElim(env *pass.Env) (pass.Pass, error)     { return NewDeadStmtElim(env) }

type fixture struct {
	env  *pass.Env
	unit *ast.TranslationUnit
	fn   *ast.FunctionDecl
}

func parse(t *testing.T, snippet string) *fixture {
	t.Helper()
	res, err := frontend.ParseSnippet(snippet)
	require.NoError(t, err)
	fn := res.Function(frontend.SnippetFunc)
	require.NotNil(t, fn)
	env := pass.NewEnv(res.Ctx, res.Provenance)
	env.Directives = res.Directives
	return &fixture{
		env:  env,
		unit: res.Unit,
		fn:   fn,
	}
}

// run applies one pass once and returns whether it changed anything.
func (f *fixture) run(t *testing.T, np newPass) bool {
	t.Helper()
	p, err := np(f.env)
	require.NoError(t, err)
	changed, err := p.Run(f.unit)
	require.NoError(t, err)
	return changed
}

func (f *fixture) body() string {
	return ast.Print(f.fn.Body)
}
