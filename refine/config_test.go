package refine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/konchunas/rellic/internal/passes"
	"github.com/konchunas/rellic/internal/pipeline"
	"github.com/konchunas/rellic/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, "rellic", config.Name)
	assert.Equal(t, solver.DefaultBackend, config.Solver.Backend)
	assert.Equal(t, pipeline.DefaultMaxIterations, config.Pipeline.MaxIterations)
	assert.Equal(t, pipeline.DefaultOrder, config.EnabledPasses())
}

func TestParseConfig(t *testing.T) {
	t.Parallel()
	config, err := ParseConfig(strings.NewReader(`
name: custom
solver:
  max-assignments: 128
pipeline:
  max-iterations: 3
passes:
  reach-based-refine: {enabled: false}
`))
	require.NoError(t, err)
	assert.Equal(t, "custom", config.Name)
	assert.Equal(t, 128, config.Solver.MaxAssignments)
	assert.Equal(t, solver.DefaultBackend, config.Solver.Backend, "unset values keep their defaults")
	assert.Equal(t, 3, config.Pipeline.MaxIterations)
	assert.Equal(t, []string{passes.DeadStmtElimName, passes.LoopRefineName}, config.EnabledPasses())
}

func TestParseConfigEmpty(t *testing.T) {
	t.Parallel()
	config, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestParseConfigInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{name: "unknown pass", data: "passes:\n  goto-elim: {enabled: true}\n", invalid: true},
		{name: "zero iterations", data: "pipeline:\n  max-iterations: 0\n", invalid: true},
		{name: "negative budget", data: "solver:\n  max-assignments: -1\n", invalid: true},
		{name: "unknown backend", data: "solver:\n  backend: cvc5\n", invalid: true},
		{name: "unknown key", data: "rules: {}\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestWriteAndLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigPath)
	require.NoError(t, WriteConfig(path, DefaultConfig()))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}
