//go:build z3

// Package z3 registers a solver backend on top of the Z3 SMT solver.
// Build with -tags z3 and link against libz3.
package z3

import (
	"strconv"

	"github.com/konchunas/rellic/internal/minilogic"
	"github.com/konchunas/rellic/internal/solver"
	"github.com/mitchellh/go-z3"
)

// Name is the backend name used in configuration.
const Name = "z3"

func init() {
	solver.RegisterBackend(Name, New)
}

type backend struct {
	ctx  *z3.Context
	vars map[string]*z3.AST
}

// New creates a Z3 context configured from cfg.
func New(cfg solver.Config) (solver.Backend, error) {
	config := z3.NewConfig()
	defer config.Close()
	if cfg.TimeoutMillis > 0 {
		config.SetParamValue("timeout", strconv.Itoa(cfg.TimeoutMillis))
	}
	return &backend{
		ctx:  z3.NewContext(config),
		vars: make(map[string]*z3.AST),
	}, nil
}

func (b *backend) Check(f minilogic.Expr) solver.Status {
	s := b.ctx.NewSolver()
	defer s.Close()

	s.Assert(b.boolean(f))
	switch s.Check() {
	case z3.True:
		return solver.Sat
	case z3.False:
		return solver.Unsat
	default:
		return solver.Unknown
	}
}

func (b *backend) Close() error {
	b.ctx.Close()
	return nil
}

func (b *backend) constant(name string) *z3.AST {
	if v, ok := b.vars[name]; ok {
		return v
	}
	v := b.ctx.Const(b.ctx.Symbol(name), b.ctx.IntSort())
	b.vars[name] = v
	return v
}

func (b *backend) boolean(e minilogic.Expr) *z3.AST {
	switch e := e.(type) {
	case minilogic.LiteralExpr:
		switch v := e.Val.(type) {
		case minilogic.BoolValue:
			if v.Val {
				return b.ctx.True()
			}
			return b.ctx.False()
		case minilogic.IntValue:
			if v.Val != 0 {
				return b.ctx.True()
			}
			return b.ctx.False()
		}
	case minilogic.UnaryExpr:
		if e.Op == minilogic.OpNot {
			return b.boolean(e.Operand).Not()
		}
	case minilogic.BinaryExpr:
		switch {
		case e.Op == minilogic.OpAnd:
			return b.boolean(e.Left).And(b.boolean(e.Right))
		case e.Op == minilogic.OpOr:
			return b.boolean(e.Left).Or(b.boolean(e.Right))
		case (e.Op == minilogic.OpEq || e.Op == minilogic.OpNeq) && minilogic.IsBool(e.Left) && minilogic.IsBool(e.Right):
			iff := b.boolean(e.Left).Iff(b.boolean(e.Right))
			if e.Op == minilogic.OpNeq {
				return iff.Not()
			}
			return iff
		case e.Op.IsComparison():
			return b.compare(e.Op, b.integer(e.Left), b.integer(e.Right))
		}
	}
	return b.integer(e).Eq(b.ctx.Int(0, b.ctx.IntSort())).Not()
}

func (b *backend) compare(op minilogic.BinaryOp, x, y *z3.AST) *z3.AST {
	switch op {
	case minilogic.OpEq:
		return x.Eq(y)
	case minilogic.OpNeq:
		return x.Eq(y).Not()
	case minilogic.OpLt:
		return x.Lt(y)
	case minilogic.OpLte:
		return x.Le(y)
	case minilogic.OpGt:
		return x.Gt(y)
	default:
		return x.Ge(y)
	}
}

// integer translates an integer term. Division and remainder are left
// uninterpreted, matching the built-in backend.
func (b *backend) integer(e minilogic.Expr) *z3.AST {
	switch e := e.(type) {
	case minilogic.LiteralExpr:
		switch v := e.Val.(type) {
		case minilogic.IntValue:
			return b.ctx.Int(int(v.Val), b.ctx.IntSort())
		case minilogic.BoolValue:
			if v.Val {
				return b.ctx.Int(1, b.ctx.IntSort())
			}
			return b.ctx.Int(0, b.ctx.IntSort())
		}
	case minilogic.VarExpr:
		return b.constant(e.Name)
	case minilogic.UnaryExpr:
		if e.Op == minilogic.OpNeg {
			return b.ctx.Int(0, b.ctx.IntSort()).Sub(b.integer(e.Operand))
		}
	case minilogic.BinaryExpr:
		switch e.Op {
		case minilogic.OpAdd:
			return b.integer(e.Left).Add(b.integer(e.Right))
		case minilogic.OpSub:
			return b.integer(e.Left).Sub(b.integer(e.Right))
		case minilogic.OpMul:
			return b.integer(e.Left).Mul(b.integer(e.Right))
		}
	}
	return b.constant("@" + e.String())
}
