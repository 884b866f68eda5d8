package solver

import "github.com/konchunas/rellic/internal/minilogic"

func init() {
	RegisterBackend(DefaultBackend, newMiniLogicBackend)
}

// miniLogicBackend answers queries with the built-in decision procedure.
type miniLogicBackend struct {
	ml *minilogic.MiniLogic
}

func newMiniLogicBackend(cfg Config) (Backend, error) {
	mc := minilogic.DefaultConfig()
	if cfg.MaxAssignments > 0 {
		mc.MaxAssignments = cfg.MaxAssignments
	}
	return &miniLogicBackend{ml: minilogic.NewWithConfig(mc)}, nil
}

func (b *miniLogicBackend) Check(f minilogic.Expr) Status {
	switch b.ml.Check(f).Result {
	case minilogic.Satisfiable:
		return Sat
	case minilogic.Unsatisfiable:
		return Unsat
	default:
		return Unknown
	}
}

func (b *miniLogicBackend) Close() error {
	return nil
}
