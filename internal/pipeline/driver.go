// Package pipeline runs the structuring passes to a fixpoint.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/debuginfo"
	"github.com/konchunas/rellic/internal/fields"
	"github.com/konchunas/rellic/internal/pass"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const DefaultMaxIterations = 64

const tracerName = "github.com/konchunas/rellic/internal/pipeline"

// Options configures a Driver.
type Options struct {
	// Passes lists the passes to run, in order. Empty means DefaultOrder.
	Passes []string
	// MaxIterations caps the number of iterations. Zero means
	// DefaultMaxIterations.
	MaxIterations int
	// DebugInfo enables field reconciliation before structuring.
	DebugInfo *debuginfo.Table
	// Tracer defaults to the global otel tracer.
	Tracer trace.Tracer
}

// Result summarizes one Run.
type Result struct {
	Iterations int
	// Converged is set when the last iteration made no progress.
	Converged bool
	// Stopped is set when a stop was requested during the run.
	Stopped bool
	// Progress counts, per pass, the runs that changed the tree.
	Progress map[string]int
}

// Driver owns the stop flag of its environment for the duration of a Run.
type Driver struct {
	env           *pass.Env
	passes        []pass.Pass
	renamer       *fields.Renamer
	maxIterations int
	tracer        trace.Tracer
}

func New(env *pass.Env, opts Options) (*Driver, error) {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	if env.Stop == nil {
		env.Stop = &pass.StopFlag{}
	}

	names := opts.Passes
	if len(names) == 0 {
		names = DefaultOrder
	}
	d := &Driver{
		env:           env,
		maxIterations: opts.MaxIterations,
		tracer:        opts.Tracer,
	}
	if d.maxIterations <= 0 {
		d.maxIterations = DefaultMaxIterations
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer(tracerName)
	}
	if opts.DebugInfo != nil {
		d.renamer = fields.NewRenamer(env, opts.DebugInfo)
	}

	for _, name := range names {
		p, err := construct(name, env)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.passes = append(d.passes, p)
	}
	return d, nil
}

// Stop requests every pass to finish early. It is safe to call from
// another goroutine.
func (d *Driver) Stop() {
	d.env.Stop.Request()
}

// Run reconciles field names once, then runs the passes in order until
// an iteration makes no progress, the iteration cap is hit or ctx is
// done. Cancellation is reported in Result.Stopped, not as an error.
func (d *Driver) Run(ctx context.Context, tu *ast.TranslationUnit) (Result, error) {
	d.env.Stop.Reset()
	if ctx.Err() != nil {
		d.env.Stop.Request()
	} else {
		stop := context.AfterFunc(ctx, d.env.Stop.Request)
		defer stop()
	}

	logger := d.env.Logger.Named("pipeline")
	res := Result{Progress: make(map[string]int)}

	if d.renamer != nil {
		if err := d.runPass(ctx, d.renamer, tu, 0, &res); err != nil {
			return res, err
		}
	}

	for res.Iterations < d.maxIterations && !d.env.Stop.Requested() {
		res.Iterations++
		changed := false
		for _, p := range d.passes {
			progress := res.Progress[p.Name()]
			if err := d.runPass(ctx, p, tu, res.Iterations, &res); err != nil {
				return res, err
			}
			if res.Progress[p.Name()] > progress {
				changed = true
			}
			if p.Stopped() {
				break
			}
		}
		logger.Debug("iteration done",
			zap.Int("iteration", res.Iterations),
			zap.Bool("changed", changed),
		)
		if !changed {
			res.Converged = true
			break
		}
	}
	res.Stopped = d.env.Stop.Requested()

	logger.Info("pipeline finished",
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Bool("stopped", res.Stopped),
		zap.Any("progress", res.Progress),
	)
	return res, nil
}

func (d *Driver) runPass(ctx context.Context, p pass.Pass, tu *ast.TranslationUnit, iteration int, res *Result) error {
	_, span := d.tracer.Start(ctx, p.Name(), trace.WithAttributes(
		attribute.String("rellic.pass", p.Name()),
		attribute.Int("rellic.iteration", iteration),
	))
	defer span.End()

	changed, err := p.Run(tu)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", p.Name(), err)
	}
	span.SetAttributes(attribute.Bool("rellic.changed", changed))
	if changed {
		res.Progress[p.Name()]++
	}
	return nil
}

// Close releases the solvers held by the passes.
func (d *Driver) Close() error {
	var errs *multierror.Error
	for _, p := range d.passes {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			}
		}
	}
	return errs.ErrorOrNil()
}
