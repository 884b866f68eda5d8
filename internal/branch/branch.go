// Package branch classifies how a statement leaves the surrounding
// control flow.
package branch

import "github.com/konchunas/rellic/internal/ast"

// Branch stores how a statement or block ends.
type Branch struct {
	Kind
	Call     string
	HasDecls bool
}

// BlockBranch classifies a block by its last statement.
func BlockBranch(block *ast.CompoundStmt) Branch {
	blockLen := len(block.Body)
	if blockLen == 0 {
		return Empty.Branch()
	}

	branch := StmtBranch(block.Body[blockLen-1])
	branch.HasDecls = hasDecls(block)

	return branch
}

func StmtBranch(stmt ast.Stmt) Branch {
	switch stmt := stmt.(type) {
	case *ast.ReturnStmt:
		return Return.Branch()
	case *ast.CompoundStmt:
		return BlockBranch(stmt)
	case *ast.BreakStmt:
		return Break.Branch()
	case *ast.ContinueStmt:
		return Continue.Branch()
	case *ast.ExprStmt:
		fn, ok := ExprCall(stmt)
		if !ok {
			break
		}
		if kind, ok := DeviatingFuncs[fn]; ok {
			return Branch{Kind: kind, Call: fn}
		}
	case *ast.NullStmt:
		return Empty.Branch()
	}

	return Regular.Branch()
}

// Sole reports the kind of s when s consists of exactly one branching
// statement, possibly wrapped in blocks. Anything else is Regular.
func Sole(s ast.Stmt) Kind {
	for {
		c, ok := s.(*ast.CompoundStmt)
		if !ok {
			break
		}
		if len(c.Body) != 1 {
			return Regular
		}
		s = c.Body[0]
	}
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return StmtBranch(s).Kind
	}
	return Regular
}

func hasDecls(block *ast.CompoundStmt) bool {
	for _, stmt := range block.Body {
		if _, ok := stmt.(*ast.DeclStmt); ok {
			return true
		}
	}

	return false
}

// HasDecls reports whether block declares variables at its top level.
func HasDecls(block *ast.CompoundStmt) bool {
	return hasDecls(block)
}
