package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/debuginfo"
	"github.com/konchunas/rellic/internal/fields"
	"github.com/konchunas/rellic/internal/frontend"
	"github.com/konchunas/rellic/internal/pass"
	"github.com/konchunas/rellic/internal/passes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const loopWithChain = `
	for {
		if x == 0 {
			break
		}
		if y > 0 {
			z = 1
		}
		if y < 0 {
			z = 2
		}
		if y == 0 {
			z = 3
		}
		;
		{
		}
	}
`

func setup(t *testing.T, snippet string) (*pass.Env, *frontend.Result) {
	t.Helper()
	res, err := frontend.ParseSnippet(snippet)
	require.NoError(t, err)
	env := pass.NewEnv(res.Ctx, res.Provenance)
	env.Directives = res.Directives
	return env, res
}

func TestDriverReachesFixpoint(t *testing.T) {
	t.Parallel()
	env, res := setup(t, loopWithChain)
	d, err := New(env, Options{})
	require.NoError(t, err)
	defer d.Close()

	result, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.False(t, result.Stopped)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, map[string]int{
		passes.DeadStmtElimName:     1,
		passes.ReachBasedRefineName: 1,
		passes.LoopRefineName:       1,
	}, result.Progress)

	want := `{
  while (x != 0) {
    if (y > 0) {
      z = 1;
    } else if (y < 0) {
      z = 2;
    } else {
      z = 3;
    }
  }
}`
	assert.Equal(t, want, ast.Print(res.Function(frontend.SnippetFunc).Body))

	again, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.True(t, again.Converged)
	assert.Equal(t, 1, again.Iterations)
	assert.Empty(t, again.Progress)
}

func TestDriverIterationCap(t *testing.T) {
	t.Parallel()
	env, res := setup(t, loopWithChain)
	d, err := New(env, Options{MaxIterations: 1})
	require.NoError(t, err)

	result, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.False(t, result.Converged)
}

func TestDriverSelectedPasses(t *testing.T) {
	t.Parallel()
	env, res := setup(t, loopWithChain)
	d, err := New(env, Options{Passes: []string{passes.LoopRefineName}})
	require.NoError(t, err)

	result, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{passes.LoopRefineName: 1}, result.Progress)
}

func TestDriverUnknownPass(t *testing.T) {
	t.Parallel()
	env, _ := setup(t, "")
	_, err := New(env, Options{Passes: []string{"goto-elim"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPass))
}

func TestDriverCanceled(t *testing.T) {
	t.Parallel()
	env, res := setup(t, loopWithChain)
	before := ast.Print(res.Unit)
	d, err := New(env, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := d.Run(ctx, res.Unit)
	require.NoError(t, err)
	assert.True(t, result.Stopped)
	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, before, ast.Print(res.Unit))

	result, err = d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.False(t, result.Stopped, "stop does not outlive a run")
	assert.True(t, result.Converged)
}

func TestDriverFieldReconciliation(t *testing.T) {
	t.Parallel()
	src := "package p\n\ntype point struct {\n\ta, b, c int\n}\n"
	res, err := frontend.Parse("point.go", src, frontend.Options{KeepFieldNames: true})
	require.NoError(t, err)

	table, err := debuginfo.Parse([]byte("types:\n  - name: point\n    members: [{name: x}, {name: x}, {name: y}]\n"))
	require.NoError(t, err)
	d, err := New(pass.NewEnv(res.Ctx, res.Provenance), Options{DebugInfo: table})
	require.NoError(t, err)

	result, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress[fields.RenamerName])
	assert.Equal(t, "struct point {\n  int x;\n  int x_b;\n  int y;\n};", ast.Print(res.Record("point")))

	table, err = debuginfo.Parse([]byte("types:\n  - name: point\n    members: [{name: x}]\n"))
	require.NoError(t, err)
	d, err = New(pass.NewEnv(res.Ctx, res.Provenance), Options{DebugInfo: table})
	require.NoError(t, err)
	_, err = d.Run(context.Background(), res.Unit)
	assert.True(t, errors.Is(err, fields.ErrFieldCountMismatch))
}

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.spans = append(r.spans, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func TestDriverTracesPassRuns(t *testing.T) {
	t.Parallel()
	env, res := setup(t, "y = 1")
	tracer := &recordingTracer{}
	d, err := New(env, Options{Tracer: tracer})
	require.NoError(t, err)

	result, err := d.Run(context.Background(), res.Unit)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, DefaultOrder, tracer.spans)
}
