package passes

import (
	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/branch"
	"github.com/konchunas/rellic/internal/pass"
	"go.uber.org/zap"
)

// DeadStmtElim removes statements that cannot affect execution: empty
// statements, expression statements without side effects and
// conditionals with nothing to do. Blocks nested in a block are spliced
// into it unless they declare variables.
type DeadStmtElim struct {
	pass.Base
}

func NewDeadStmtElim(env *pass.Env) (*DeadStmtElim, error) {
	return &DeadStmtElim{Base: pass.NewBase(DeadStmtElimName, env)}, nil
}

func (p *DeadStmtElim) Run(tu *ast.TranslationUnit) (bool, error) {
	return p.Transform(tu, p)
}

func (p *DeadStmtElim) VisitIf(s *ast.IfStmt) bool {
	if p.Excluded(s) {
		return true
	}
	if !p.isEmpty(s.Then) {
		return true
	}
	if s.Else != nil && !p.isEmpty(s.Else) {
		return true
	}

	if p.Env().Purity.HasSideEffects(s.Cond) {
		p.Substitute(s, p.Env().Ctx.NewExprStmt(s.Cond))
	} else {
		p.Substitute(s, nil)
	}
	p.Logger().Debug("removed empty conditional",
		zap.Stringer("origin", p.Env().Provenance.Describe(s)),
	)
	return true
}

func (p *DeadStmtElim) VisitCompound(c *ast.CompoundStmt) bool {
	changed := false
	body := make([]ast.Stmt, 0, len(c.Body))
	for _, stmt := range c.Body {
		cur, _ := p.Current(stmt).(ast.Stmt)
		if cur != stmt {
			changed = true
		}
		if p.Excluded(stmt) {
			if cur != nil {
				body = append(body, cur)
			}
			continue
		}
		switch s := cur.(type) {
		case nil:
			continue
		case *ast.NullStmt:
			changed = true
			continue
		case *ast.ExprStmt:
			if !p.Env().Purity.HasSideEffects(s.X) {
				changed = true
				continue
			}
		case *ast.CompoundStmt:
			if !branch.HasDecls(s) {
				changed = true
				body = append(body, s.Body...)
				continue
			}
		}
		body = append(body, cur)
	}

	if changed {
		p.Substitute(c, p.Env().Ctx.NewCompound(body...))
	}
	return true
}

// isEmpty reports whether s, as it will look after this run, does nothing.
func (p *DeadStmtElim) isEmpty(s ast.Stmt) bool {
	switch cur := p.Current(s).(type) {
	case nil, *ast.NullStmt:
		return true
	case *ast.CompoundStmt:
		return len(cur.Body) == 0
	}
	return false
}
