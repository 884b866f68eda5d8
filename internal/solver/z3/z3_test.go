//go:build z3

package z3

import (
	"testing"

	"github.com/konchunas/rellic/internal/minilogic"
	"github.com/konchunas/rellic/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZ3Backend(t *testing.T) {
	s, err := solver.Open(solver.Config{Backend: Name, TimeoutMillis: 1000})
	require.NoError(t, err)
	defer s.Close()

	x := minilogic.Var("x")
	gt := minilogic.Gt(x, minilogic.IntLit(0))
	eq := minilogic.Eq(x, minilogic.IntLit(0))
	lt := minilogic.Lt(x, minilogic.IntLit(0))

	assert.True(t, s.ProveValid(solver.Or(gt, eq, lt)))
	assert.False(t, s.ProveValid(solver.Or(gt, lt)))
	assert.True(t, s.ProveUnsat(solver.And(eq, solver.Or(gt, lt))))

	y := minilogic.Var("y")
	assert.True(t, s.ProveUnsat(solver.And(minilogic.Lt(x, y), minilogic.Lt(y, x))))
}
