package passes

import (
	"fmt"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/minilogic"
	"github.com/konchunas/rellic/internal/pass"
	"github.com/konchunas/rellic/internal/solver"
	"go.uber.org/zap"
)

// minChainLength is the shortest run of conditionals worth merging.
const minChainLength = 3

// ReachBasedRefine merges a run of sibling conditionals whose conditions
// are pairwise exclusive and jointly exhaustive into one if/else-if
// chain. The body of the last conditional becomes the final else.
type ReachBasedRefine struct {
	pass.Base
	solver *solver.Solver
	locals map[*ast.CompoundStmt]map[string]bool
}

func NewReachBasedRefine(env *pass.Env) (*ReachBasedRefine, error) {
	p := &ReachBasedRefine{Base: pass.NewBase(ReachBasedRefineName, env)}
	s, err := p.OpenSolver()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ReachBasedRefineName, err)
	}
	p.solver = s
	return p, nil
}

func (p *ReachBasedRefine) Run(tu *ast.TranslationUnit) (bool, error) {
	p.locals = localNames(tu)
	return p.Transform(tu, p)
}

// localNames maps every block to the parameters and local variables of
// its function. Calls cannot change those.
func localNames(tu *ast.TranslationUnit) map[*ast.CompoundStmt]map[string]bool {
	out := make(map[*ast.CompoundStmt]map[string]bool)
	for _, d := range tu.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		names := make(map[string]bool)
		for _, param := range fn.Params {
			names[param.Name] = true
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.VarDecl:
				names[n.Name] = true
			case *ast.CompoundStmt:
				out[n] = names
			}
			return true
		})
	}
	return out
}

func (p *ReachBasedRefine) VisitCompound(c *ast.CompoundStmt) bool {
	purity := p.Env().Purity
	var (
		ifs    []*ast.IfStmt
		conds  []minilogic.Expr
		writes *effects
		start  int
	)
	reset := func() {
		ifs, conds, writes = nil, nil, newEffects(p.locals[c])
	}
	reset()

	for i, stmt := range c.Body {
		ifStmt, ok := stmt.(*ast.IfStmt)
		if !ok || ifStmt.Else != nil || p.Excluded(ifStmt) || purity.HasSideEffects(ifStmt.Cond) {
			reset()
			continue
		}
		if p.Stopped() {
			return false
		}

		// A guard that overlaps the candidate, or reads what an earlier
		// body writes, starts a new candidate of its own.
		cond := p.solver.Simplified(ifStmt.Cond)
		if writes.observedBy(ifStmt.Cond) || !p.solver.ProveUnsat(solver.And(cond, solver.Or(conds...))) {
			reset()
		}
		if len(ifs) == 0 {
			start = i
		}
		ifs = append(ifs, ifStmt)
		conds = append(conds, cond)
		writes.collect(ifStmt.Then, purity)

		if len(ifs) < minChainLength {
			continue
		}
		if p.Stopped() {
			return false
		}
		if !p.solver.ProveValid(solver.Or(conds...)) {
			continue
		}

		p.merge(c, start, i, ifs)
		return true
	}
	return true
}

// effects is what the bodies of a candidate may change before the next
// guard is evaluated. An impure call may change call results and any
// variable that is not local.
type effects struct {
	names  map[string]bool
	locals map[string]bool
	opaque bool
}

func newEffects(locals map[string]bool) *effects {
	return &effects{names: make(map[string]bool), locals: locals}
}

func (e *effects) collect(s ast.Stmt, purity *ast.PurityContext) {
	ast.Inspect(s, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BinaryExpr:
			if n.Op.IsAssignment() {
				e.write(n.X)
			}
		case *ast.UnaryExpr:
			if n.Op == ast.OpPostInc || n.Op == ast.OpPostDec {
				e.write(n.X)
			}
		case *ast.CallExpr:
			if purity.HasSideEffects(n) {
				e.opaque = true
			}
		}
		return true
	})
}

func (e *effects) write(target ast.Expr) {
	if id, ok := ast.Unparen(target).(*ast.Ident); ok {
		e.names[id.Name] = true
		return
	}
	e.opaque = true
}

// observedBy reports whether evaluating cond may see one of the effects.
func (e *effects) observedBy(cond ast.Expr) bool {
	seen := false
	ast.Inspect(cond, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			seen = seen || e.names[n.Name] || (e.opaque && !e.locals[n.Name])
		case *ast.CallExpr:
			seen = seen || e.opaque
		}
		return !seen
	})
	return seen
}

// merge replaces c.Body[first..last] by a single chain built from ifs.
func (p *ReachBasedRefine) merge(c *ast.CompoundStmt, first, last int, ifs []*ast.IfStmt) {
	ctx := p.Env().Ctx

	chain := ifs[len(ifs)-1].Then
	for k := len(ifs) - 2; k >= 0; k-- {
		chain = ctx.NewIf(ifs[k].Cond, ifs[k].Then, chain)
	}

	body := make([]ast.Stmt, 0, len(c.Body)-len(ifs)+1)
	body = append(body, c.Body[:first]...)
	body = append(body, chain)
	body = append(body, c.Body[last+1:]...)
	p.Substitute(c, ctx.NewCompound(body...))

	p.Logger().Debug("merged conditional chain",
		zap.Int("length", len(ifs)),
		zap.Stringer("origin", p.Env().Provenance.Describe(ifs[0])),
	)
}

func (p *ReachBasedRefine) Close() error {
	return p.solver.Close()
}
