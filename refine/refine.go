// Package refine is the entry point for structuring whole files: it
// lowers source through the frontend, runs the pass pipeline and
// reports every function and record before and after.
package refine

import (
	"context"
	"fmt"
	"os"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/debuginfo"
	"github.com/konchunas/rellic/internal/frontend"
	"github.com/konchunas/rellic/internal/pass"
	"github.com/konchunas/rellic/internal/pipeline"
	"github.com/konchunas/rellic/internal/provenance"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RefineEngine is what the file processors drive.
type RefineEngine interface {
	Run(ctx context.Context, filename string) (*FileResult, error)
	RunSource(ctx context.Context, filename string, source []byte) (*FileResult, error)
}

// DeclResult is one function or record before and after structuring.
type DeclResult struct {
	Name   string
	Origin provenance.Origin
	Before string
	After  string
}

func (d DeclResult) Changed() bool {
	return d.Before != d.After
}

type FileResult struct {
	Filename  string
	Functions []DeclResult
	Records   []DeclResult
	Pipeline  pipeline.Result
}

// Changed reports whether any declaration of the file was rewritten.
func (r *FileResult) Changed() bool {
	for _, d := range r.Functions {
		if d.Changed() {
			return true
		}
	}
	for _, d := range r.Records {
		if d.Changed() {
			return true
		}
	}
	return false
}

type Engine struct {
	config    Config
	logger    *zap.Logger
	debugInfo *debuginfo.Table
	frontend  frontend.Options
	cache     *Cache
}

// New creates an engine. A nil logger discards all output.
func New(config Config, logger *zap.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{config: config, logger: logger}, nil
}

// NewFromFile creates an engine configured by the file at
// configurationPath, or by DefaultConfig when the path is empty.
func NewFromFile(configurationPath string, logger *zap.Logger) (*Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return New(config, logger)
}

// SetDebugInfo enables field reconciliation against table. Records keep
// their source field names only when table is nil.
func (e *Engine) SetDebugInfo(table *debuginfo.Table) {
	e.debugInfo = table
}

// KeepFieldNames makes the frontend keep source field names instead of
// numbering them.
func (e *Engine) KeepFieldNames(keep bool) {
	e.frontend.KeepFieldNames = keep
}

// SetCache makes RunSource reuse results for unchanged sources.
func (e *Engine) SetCache(c *Cache) {
	e.cache = c
}

// fingerprint identifies everything besides the source that affects a
// result.
func (e *Engine) fingerprint() (string, error) {
	d, err := yaml.Marshal(struct {
		Config         Config                `yaml:"config"`
		DebugInfo      []debuginfo.Composite `yaml:"debug-info"`
		KeepFieldNames bool                  `yaml:"keep-field-names"`
	}{e.config, e.debugInfo.Composites(), e.frontend.KeepFieldNames})
	if err != nil {
		return "", err
	}
	return hashBytes(d), nil
}

func (e *Engine) Config() Config {
	return e.config
}

// Run structures the file at filename.
func (e *Engine) Run(ctx context.Context, filename string) (*FileResult, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return e.RunSource(ctx, filename, source)
}

// RunSource structures source, reporting positions against filename.
func (e *Engine) RunSource(ctx context.Context, filename string, source []byte) (*FileResult, error) {
	var fingerprint string
	if e.cache != nil {
		fp, err := e.fingerprint()
		if err != nil {
			return nil, err
		}
		if res, ok := e.cache.Get(filename, source, fp); ok {
			e.logger.Debug("using cached result", zap.String("file", filename))
			return res, nil
		}
		fingerprint = fp
	}

	parsed, err := frontend.Parse(filename, source, e.frontend)
	if err != nil {
		return nil, err
	}

	env := pass.NewEnv(parsed.Ctx, parsed.Provenance)
	env.Logger = e.logger.With(zap.String("file", filename))
	env.Solver = e.config.Solver
	env.Directives = parsed.Directives

	driver, err := pipeline.New(env, pipeline.Options{
		Passes:        e.config.EnabledPasses(),
		MaxIterations: e.config.Pipeline.MaxIterations,
		DebugInfo:     e.debugInfo,
	})
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	result := &FileResult{Filename: filename}
	before := snapshot(parsed)

	res, err := driver.Run(ctx, parsed.Unit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	result.Pipeline = res

	for _, d := range parsed.Unit.Decls {
		var out *[]DeclResult
		var name string
		switch d := d.(type) {
		case *ast.FunctionDecl:
			out, name = &result.Functions, d.Name
		case *ast.RecordDecl:
			out, name = &result.Records, d.Name
		default:
			continue
		}
		origin, _ := parsed.Provenance.Lookup(d)
		*out = append(*out, DeclResult{
			Name:   name,
			Origin: origin,
			Before: before[d],
			After:  ast.Print(d),
		})
	}

	if e.cache != nil && !res.Stopped {
		if err := e.cache.Set(filename, source, fingerprint, result); err != nil {
			e.logger.Warn("failed to update cache", zap.String("file", filename), zap.Error(err))
		}
	}
	return result, nil
}

// snapshot prints every declaration before the pipeline mutates it.
func snapshot(parsed *frontend.Result) map[ast.Decl]string {
	texts := make(map[ast.Decl]string, len(parsed.Unit.Decls))
	for _, d := range parsed.Unit.Decls {
		texts[d] = ast.Print(d)
	}
	return texts
}
