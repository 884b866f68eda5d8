// Package frontend builds statement trees from Go source. It stands in
// for a lowering stage: every function body becomes a FunctionDecl and
// every struct type a RecordDecl, with provenance pointing back at the
// source.
package frontend

import (
	"errors"
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/norefine"
	"github.com/konchunas/rellic/internal/provenance"
)

// ErrUnsupported is wrapped by every error about a construct that has no
// counterpart in the statement tree.
var ErrUnsupported = errors.New("unsupported construct")

// UnsupportedError reports one construct the frontend cannot lower.
type UnsupportedError struct {
	Pos  token.Position
	What string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, ErrUnsupported, e.What)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// Options controls lowering.
type Options struct {
	// KeepFieldNames keeps the source field names of struct types.
	// By default fields are named field0, field1, ... the way a
	// decompiler would see them before debug info is applied.
	KeepFieldNames bool
}

// Result is a lowered file.
type Result struct {
	Ctx        *ast.Context
	Unit       *ast.TranslationUnit
	Provenance *provenance.Map
	Directives *norefine.Manager
	Fset       *token.FileSet
}

// Function returns the function called name, or nil.
func (r *Result) Function(name string) *ast.FunctionDecl {
	for _, d := range r.Unit.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

// Record returns the record called name, or nil.
func (r *Result) Record(name string) *ast.RecordDecl {
	for _, d := range r.Unit.Decls {
		if rec, ok := d.(*ast.RecordDecl); ok && rec.Name == name {
			return rec
		}
	}
	return nil
}

// Parse lowers a Go source file. src follows the conventions of
// parser.ParseFile. Every unsupported construct of the file is reported
// in a single aggregated error.
func Parse(filename string, src any, opts Options) (*Result, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	l := &lowerer{
		fset: fset,
		ctx:  ast.NewContext(),
		prov: provenance.NewMap(),
		opts: opts,
	}
	unit := l.file(file)
	if err := l.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Result{
		Ctx:        l.ctx,
		Unit:       unit,
		Provenance: l.prov,
		Directives: norefine.ParseComments(file, fset),
		Fset:       fset,
	}, nil
}

// SnippetFunc is the name of the function ParseSnippet wraps its input in.
const SnippetFunc = "f"

// ParseSnippet lowers a sequence of Go statements as the body of a
// function named SnippetFunc.
func ParseSnippet(snippet string) (*Result, error) {
	src := "package p\n\nfunc " + SnippetFunc + "() {\n" + snippet + "\n}\n"
	return Parse("snippet.go", src, Options{})
}

type lowerer struct {
	fset *token.FileSet
	ctx  *ast.Context
	prov *provenance.Map
	opts Options
	errs *multierror.Error
}

func (l *lowerer) unsupported(n goast.Node, format string, args ...any) {
	l.errs = multierror.Append(l.errs, &UnsupportedError{
		Pos:  l.fset.Position(n.Pos()),
		What: fmt.Sprintf(format, args...),
	})
}

func (l *lowerer) origin(n ast.Node, src goast.Node, kind provenance.Kind, name string) {
	l.prov.Set(n, provenance.Origin{Kind: kind, Name: name, Pos: l.fset.Position(src.Pos())})
}

func (l *lowerer) file(f *goast.File) *ast.TranslationUnit {
	var decls []ast.Decl
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *goast.FuncDecl:
			if fn := l.function(d); fn != nil {
				decls = append(decls, fn)
			}
		case *goast.GenDecl:
			decls = append(decls, l.genDecl(d)...)
		}
	}
	return l.ctx.NewTranslationUnit(decls...)
}

func (l *lowerer) function(d *goast.FuncDecl) *ast.FunctionDecl {
	if d.Recv != nil {
		l.unsupported(d, "method %s", d.Name.Name)
		return nil
	}
	if d.Body == nil {
		return nil
	}
	var params []*ast.VarDecl
	for _, field := range d.Type.Params.List {
		typ := types.ExprString(field.Type)
		for _, name := range field.Names {
			params = append(params, l.ctx.NewVar(name.Name, typ, nil))
		}
	}
	fn := l.ctx.NewFunction(d.Name.Name, params, l.block(d.Body))
	l.origin(fn, d, provenance.KindFunction, d.Name.Name)
	return fn
}

func (l *lowerer) genDecl(d *goast.GenDecl) []ast.Decl {
	if d.Tok == token.IMPORT {
		return nil
	}
	if d.Tok != token.TYPE {
		l.unsupported(d, "top-level %s declaration", d.Tok)
		return nil
	}
	var decls []ast.Decl
	for _, spec := range d.Specs {
		ts := spec.(*goast.TypeSpec)
		st, ok := ts.Type.(*goast.StructType)
		if !ok {
			l.unsupported(ts, "type %s is not a struct", ts.Name.Name)
			continue
		}
		decls = append(decls, l.record(ts.Name.Name, st))
	}
	return decls
}

func (l *lowerer) record(name string, st *goast.StructType) *ast.RecordDecl {
	var fields []*ast.FieldDecl
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		names := f.Names
		if len(names) == 0 {
			// embedded field
			names = []*goast.Ident{{Name: typ}}
		}
		for _, n := range names {
			fieldName := n.Name
			if !l.opts.KeepFieldNames {
				fieldName = "field" + strconv.Itoa(len(fields))
			}
			fields = append(fields, l.ctx.NewField(fieldName, typ))
		}
	}
	rec := l.ctx.NewRecord(name, fields...)
	l.origin(rec, st, provenance.KindType, name)
	return rec
}
