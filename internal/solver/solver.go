// Package solver adapts branch conditions of the statement tree to a
// satisfiability backend and answers the two questions the structuring
// passes ask: is a formula valid, and is it unsatisfiable.
package solver

import (
	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/minilogic"
)

// Solver is owned by a single pass. Conditions are translated on
// demand and never cached across runs.
type Solver struct {
	backend    Backend
	normalizer *minilogic.Normalizer
}

// New wraps an existing backend.
func New(b Backend) *Solver {
	return &Solver{
		backend:    b,
		normalizer: minilogic.NewNormalizer(minilogic.DefaultConfig()),
	}
}

// Open creates a solver on a fresh backend instance.
func Open(cfg Config) (*Solver, error) {
	b, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

// Condition returns the boolean formula for e. Integer-valued
// expressions used as conditions are compared against zero.
func (s *Solver) Condition(e ast.Expr) minilogic.Expr {
	return boolean(e)
}

// Simplified returns the simplified boolean formula for e.
func (s *Solver) Simplified(e ast.Expr) minilogic.Expr {
	return s.normalizer.Simplify(boolean(e))
}

// ProveValid reports whether f holds under every assignment. Any answer
// other than unsat for its negation counts as not proved.
func (s *Solver) ProveValid(f minilogic.Expr) bool {
	return s.backend.Check(minilogic.Not(f)) == Unsat
}

// ProveUnsat reports whether no assignment satisfies f.
func (s *Solver) ProveUnsat(f minilogic.Expr) bool {
	return s.backend.Check(f) == Unsat
}

// Close releases the backend.
func (s *Solver) Close() error {
	return s.backend.Close()
}

// Or returns the disjunction of fs; false when fs is empty.
func Or(fs ...minilogic.Expr) minilogic.Expr {
	return minilogic.Or(fs...)
}

// And returns the conjunction of fs; true when fs is empty.
func And(fs ...minilogic.Expr) minilogic.Expr {
	return minilogic.And(fs...)
}

func boolean(e ast.Expr) minilogic.Expr {
	switch x := ast.Unparen(e).(type) {
	case *ast.UnaryExpr:
		if x.Op == ast.OpNot {
			return minilogic.Not(boolean(x.X))
		}
	case *ast.BinaryExpr:
		switch {
		case x.Op == ast.OpLAnd:
			return minilogic.And(boolean(x.X), boolean(x.Y))
		case x.Op == ast.OpLOr:
			return minilogic.Or(boolean(x.X), boolean(x.Y))
		case x.Op.IsComparison():
			return minilogic.Binary(comparisonOps[x.Op], integer(x.X), integer(x.Y))
		}
	}
	return minilogic.Neq(integer(e), minilogic.IntLit(0))
}

var comparisonOps = map[ast.BinaryOp]minilogic.BinaryOp{
	ast.OpEq: minilogic.OpEq,
	ast.OpNe: minilogic.OpNeq,
	ast.OpLt: minilogic.OpLt,
	ast.OpLe: minilogic.OpLte,
	ast.OpGt: minilogic.OpGt,
	ast.OpGe: minilogic.OpGte,
}

var arithmeticOps = map[ast.BinaryOp]minilogic.BinaryOp{
	ast.OpAdd: minilogic.OpAdd,
	ast.OpSub: minilogic.OpSub,
	ast.OpMul: minilogic.OpMul,
	ast.OpDiv: minilogic.OpDiv,
	ast.OpRem: minilogic.OpMod,
}

// integer translates an integer-valued expression. Anything without an
// arithmetic meaning becomes an opaque variable named after its text, so
// identical subexpressions share a variable.
func integer(e ast.Expr) minilogic.Expr {
	switch x := ast.Unparen(e).(type) {
	case *ast.IntLit:
		return minilogic.IntLit(x.Value)
	case *ast.Ident:
		return minilogic.Var(x.Name)
	case *ast.UnaryExpr:
		if x.Op == ast.OpNeg {
			return minilogic.Unary(minilogic.OpNeg, integer(x.X))
		}
	case *ast.BinaryExpr:
		if op, ok := arithmeticOps[x.Op]; ok {
			return minilogic.Binary(op, integer(x.X), integer(x.Y))
		}
	}
	return minilogic.Var(ast.Print(ast.Unparen(e)))
}
