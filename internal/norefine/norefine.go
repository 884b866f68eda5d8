// Package norefine reads //norefine directives. A directive keeps the
// statements it covers out of the named passes, or out of every pass
// when no pass is named:
//
//	//norefine
//	//norefine:loop-refine,dead-stmt-elim
//
// Placed before the package clause it covers the file; at the end of a
// line it covers the statement on that line; on a line of its own it
// covers the statement or function that follows.
package norefine

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"
)

const prefix = "//norefine"

var errNotDirective = errors.New("not a norefine directive")

// Manager answers whether a position is excluded from a pass.
type Manager struct {
	// scopes maps filename to the scopes declared in it.
	scopes map[string][]scope
}

type scope struct {
	passes map[string]struct{}
	start  token.Position
	end    token.Position
}

// ParseComments collects the directives of f. Malformed directives are
// ignored.
func ParseComments(f *ast.File, fset *token.FileSet) *Manager {
	m := &Manager{scopes: make(map[string][]scope)}
	stmts := indexStatementsByLine(f, fset)
	packageLine := fset.Position(f.Package).Line

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			s, err := parseComment(c, f, fset, stmts, packageLine)
			if err != nil {
				continue
			}
			m.scopes[s.start.Filename] = append(m.scopes[s.start.Filename], s)
		}
	}
	return m
}

func parseComment(c *ast.Comment, f *ast.File, fset *token.FileSet, stmts map[int]ast.Stmt, packageLine int) (scope, error) {
	var s scope
	if !strings.HasPrefix(c.Text, prefix) {
		return s, errNotDirective
	}
	rest := c.Text[len(prefix):]
	switch {
	case rest == "":
	case rest[0] == ':':
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return s, errNotDirective
		}
	default:
		return s, errNotDirective
	}
	s.passes = parsePassNames(rest)
	pos := fset.Position(c.Slash)

	if pos.Line < packageLine {
		s.start = fset.Position(f.Pos())
		s.end = fset.Position(f.End())
		return s, nil
	}

	if stmt, ok := stmts[pos.Line]; ok && pos.Offset > fset.Position(stmt.Pos()).Offset {
		s.start = fset.Position(stmt.Pos())
		s.end = fset.Position(stmt.End())
		return s, nil
	}

	if stmt, ok := stmts[pos.Line+1]; ok {
		s.start = pos
		s.end = fset.Position(stmt.End())
		return s, nil
	}

	if fn := functionAt(fset, f, pos.Line+1); fn != nil {
		s.start = pos
		s.end = fset.Position(fn.End())
		return s, nil
	}

	s.start = pos
	s.end = pos
	return s, nil
}

func parsePassNames(text string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, name := range strings.Split(text, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}

// indexStatementsByLine maps each line to the first statement starting on it.
func indexStatementsByLine(f *ast.File, fset *token.FileSet) map[int]ast.Stmt {
	stmts := make(map[int]ast.Stmt)
	ast.Inspect(f, func(n ast.Node) bool {
		if stmt, ok := n.(ast.Stmt); ok {
			line := fset.Position(stmt.Pos()).Line
			if _, exists := stmts[line]; !exists {
				stmts[line] = stmt
			}
		}
		return true
	})
	return stmts
}

func functionAt(fset *token.FileSet, f *ast.File, line int) *ast.FuncDecl {
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fset.Position(fn.Pos()).Line == line {
			return fn
		}
	}
	return nil
}

// Excluded reports whether pos lies in a scope that names pass, or in
// one that names no pass at all. A nil Manager excludes nothing.
func (m *Manager) Excluded(pos token.Position, pass string) bool {
	if m == nil || !pos.IsValid() {
		return false
	}
	for _, s := range m.scopes[pos.Filename] {
		if pos.Line < s.start.Line || pos.Line > s.end.Line {
			continue
		}
		if len(s.passes) == 0 {
			return true
		}
		if _, ok := s.passes[pass]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of directives recorded.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, scopes := range m.scopes {
		n += len(scopes)
	}
	return n
}
