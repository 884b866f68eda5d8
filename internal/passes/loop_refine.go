package passes

import (
	"fmt"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/branch"
	"github.com/konchunas/rellic/internal/pass"
	"github.com/konchunas/rellic/internal/solver"
	"go.uber.org/zap"
)

// LoopRefine recovers loop conditions:
//
//	while (1) { if (c) break; rest }  =>  while (!c) { rest }
//
// The loop guard must be provably true and the break guard must be the
// first statement of the body.
type LoopRefine struct {
	pass.Base
	solver *solver.Solver
}

func NewLoopRefine(env *pass.Env) (*LoopRefine, error) {
	p := &LoopRefine{Base: pass.NewBase(LoopRefineName, env)}
	s, err := p.OpenSolver()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LoopRefineName, err)
	}
	p.solver = s
	return p, nil
}

func (p *LoopRefine) Run(tu *ast.TranslationUnit) (bool, error) {
	return p.Transform(tu, p)
}

func (p *LoopRefine) VisitWhile(loop *ast.WhileStmt) bool {
	if p.Excluded(loop) {
		return true
	}
	body, ok := loop.Body.(*ast.CompoundStmt)
	if !ok || len(body.Body) == 0 {
		return true
	}
	guard, ok := body.Body[0].(*ast.IfStmt)
	if !ok || guard.Else != nil || branch.Sole(guard.Then) != branch.Break {
		return true
	}
	if p.Stopped() {
		return false
	}
	if !p.solver.ProveValid(p.solver.Simplified(loop.Cond)) {
		return true
	}

	ctx := p.Env().Ctx
	rest := make([]ast.Stmt, len(body.Body)-1)
	copy(rest, body.Body[1:])
	p.Substitute(loop, ctx.NewWhile(ast.Negate(ctx, guard.Cond), ctx.NewCompound(rest...)))

	p.Logger().Debug("recovered loop condition",
		zap.String("cond", ast.Print(guard.Cond)),
		zap.Stringer("origin", p.Env().Provenance.Describe(loop)),
	)
	return true
}

func (p *LoopRefine) Close() error {
	return p.solver.Close()
}
