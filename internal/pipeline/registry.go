package pipeline

import (
	"errors"
	"fmt"

	"github.com/konchunas/rellic/internal/pass"
	"github.com/konchunas/rellic/internal/passes"
)

var ErrUnknownPass = errors.New("unknown pass")

// Constructor builds a pass bound to env.
type Constructor func(env *pass.Env) (pass.Pass, error)

var constructors = map[string]Constructor{
	passes.DeadStmtElimName: func(env *pass.Env) (pass.Pass, error) {
		return passes.NewDeadStmtElim(env)
	},
	passes.ReachBasedRefineName: func(env *pass.Env) (pass.Pass, error) {
		return passes.NewReachBasedRefine(env)
	},
	passes.LoopRefineName: func(env *pass.Env) (pass.Pass, error) {
		return passes.NewLoopRefine(env)
	},
}

// DefaultOrder is the order passes run in within one iteration.
var DefaultOrder = []string{
	passes.DeadStmtElimName,
	passes.ReachBasedRefineName,
	passes.LoopRefineName,
}

// Passes returns the names of all known passes in DefaultOrder.
func Passes() []string {
	names := make([]string, len(DefaultOrder))
	copy(names, DefaultOrder)
	return names
}

func construct(name string, env *pass.Env) (pass.Pass, error) {
	newPass, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPass, name)
	}
	return newPass(env)
}
