// Package pass provides the substitution-based rewrite primitive shared
// by all structuring passes: a post-order traversal that records node
// replacements and applies them by relinking parents once it is done.
package pass

import (
	"sync/atomic"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/norefine"
	"github.com/konchunas/rellic/internal/provenance"
	"github.com/konchunas/rellic/internal/solver"
	"go.uber.org/zap"
)

// Pass is one rewrite over a translation unit.
type Pass interface {
	Name() string
	// Run performs one full traversal and reports whether any
	// substitution was applied.
	Run(tu *ast.TranslationUnit) (bool, error)
	// Stop requests cooperative cancellation.
	Stop()
	Stopped() bool
}

// StopFlag is owned by the driver and shared by every pass of a run.
// It may be raised from another goroutine.
type StopFlag struct {
	requested atomic.Bool
}

func (f *StopFlag) Request() {
	f.requested.Store(true)
}

func (f *StopFlag) Requested() bool {
	return f != nil && f.requested.Load()
}

func (f *StopFlag) Reset() {
	f.requested.Store(false)
}

// Env is what the driver hands to every pass.
type Env struct {
	Ctx        *ast.Context
	Provenance *provenance.Map
	Logger     *zap.Logger
	Stop       *StopFlag
	Solver     solver.Config
	Purity     *ast.PurityContext
	// Directives excludes source ranges from individual passes.
	Directives *norefine.Manager
}

// NewEnv returns an Env with a fresh stop flag, the built-in solver and
// a no-op logger.
func NewEnv(ctx *ast.Context, prov *provenance.Map) *Env {
	if prov == nil {
		prov = provenance.NewMap()
	}
	return &Env{
		Ctx:        ctx,
		Provenance: prov,
		Logger:     zap.NewNop(),
		Stop:       &StopFlag{},
		Solver:     solver.DefaultConfig(),
		Purity:     ast.NewPurityContext(),
	}
}

// Base implements the parts of Pass that every rewrite shares.
// Embed it and call Transform from Run.
type Base struct {
	name string
	env  *Env
	subs *Substitutions
}

func NewBase(name string, env *Env) Base {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Stop == nil {
		env.Stop = &StopFlag{}
	}
	return Base{name: name, env: env, subs: NewSubstitutions()}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Env() *Env { return b.env }

func (b *Base) Logger() *zap.Logger { return b.env.Logger.Named(b.name) }

func (b *Base) Stop() { b.env.Stop.Request() }

func (b *Base) Stopped() bool { return b.env.Stop.Requested() }

// Excluded reports whether a directive keeps n out of this pass. Nodes
// created by rewrites have no origin and are never excluded.
func (b *Base) Excluded(n ast.Node) bool {
	if b.env.Directives == nil {
		return false
	}
	origin, ok := b.env.Provenance.Lookup(n)
	return ok && b.env.Directives.Excluded(origin.Pos, b.name)
}

// OpenSolver gives the pass its own solver instance.
func (b *Base) OpenSolver() (*solver.Solver, error) {
	return solver.Open(b.env.Solver)
}

// Substitute registers a replacement for the current run. Pass nil to
// remove from.
func (b *Base) Substitute(from, to ast.Node) {
	b.subs.Set(from, to)
}

// Current resolves n through the replacements registered so far.
func (b *Base) Current(n ast.Node) ast.Node {
	return b.subs.Current(n)
}

// Transform walks tu with v, then applies the recorded substitutions.
// Once a stop was requested it does nothing and reports no progress.
func (b *Base) Transform(tu *ast.TranslationUnit, v any) (bool, error) {
	if b.Stopped() {
		return false, nil
	}
	b.subs = NewSubstitutions()
	err := Walk(tu, v, b.Stopped)
	if err != nil {
		return false, err
	}
	_, applied := b.subs.Apply(b.env.Ctx, tu)
	if applied > 0 {
		b.Logger().Debug("applied substitutions", zap.Int("count", applied))
	}
	return applied > 0, nil
}
