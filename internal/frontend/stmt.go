package frontend

import (
	goast "go/ast"
	"go/token"
	"go/types"

	"github.com/konchunas/rellic/internal/ast"
	"github.com/konchunas/rellic/internal/provenance"
)

func (l *lowerer) block(b *goast.BlockStmt) *ast.CompoundStmt {
	body := make([]ast.Stmt, 0, len(b.List))
	for _, s := range b.List {
		if st := l.stmt(s); st != nil {
			body = append(body, st)
		}
	}
	c := l.ctx.NewCompound(body...)
	l.origin(c, b, provenance.KindStmt, "")
	return c
}

func (l *lowerer) stmt(s goast.Stmt) ast.Stmt {
	st := l.lowerStmt(s)
	if st != nil {
		l.origin(st, s, provenance.KindStmt, "")
	}
	return st
}

func (l *lowerer) lowerStmt(s goast.Stmt) ast.Stmt {
	switch s := s.(type) {
	case *goast.BlockStmt:
		return l.block(s)

	case *goast.IfStmt:
		if s.Init != nil {
			l.unsupported(s, "if with init statement")
			return nil
		}
		var els ast.Stmt
		if s.Else != nil {
			els = l.stmt(s.Else)
		}
		return l.ctx.NewIf(l.expr(s.Cond), l.block(s.Body), els)

	case *goast.ForStmt:
		if s.Init != nil || s.Post != nil {
			l.unsupported(s, "three-clause for loop")
			return nil
		}
		var cond ast.Expr
		if s.Cond == nil {
			cond = l.ctx.NewInt(1)
		} else {
			cond = l.expr(s.Cond)
		}
		return l.ctx.NewWhile(cond, l.block(s.Body))

	case *goast.BranchStmt:
		if s.Label != nil {
			l.unsupported(s, "labeled %s", s.Tok)
			return nil
		}
		switch s.Tok {
		case token.BREAK:
			return l.ctx.NewBreak()
		case token.CONTINUE:
			return l.ctx.NewContinue()
		}
		l.unsupported(s, "%s statement", s.Tok)
		return nil

	case *goast.ReturnStmt:
		switch len(s.Results) {
		case 0:
			return l.ctx.NewReturn(nil)
		case 1:
			return l.ctx.NewReturn(l.expr(s.Results[0]))
		}
		l.unsupported(s, "return of %d values", len(s.Results))
		return nil

	case *goast.ExprStmt:
		return l.ctx.NewExprStmt(l.expr(s.X))

	case *goast.IncDecStmt:
		op := ast.OpPostInc
		if s.Tok == token.DEC {
			op = ast.OpPostDec
		}
		return l.ctx.NewExprStmt(l.ctx.NewUnary(op, l.expr(s.X)))

	case *goast.AssignStmt:
		return l.assign(s)

	case *goast.DeclStmt:
		return l.varDecl(s)

	case *goast.EmptyStmt:
		return l.ctx.NewNull()
	}

	l.unsupported(s, "statement %T", s)
	return nil
}

var assignOps = map[token.Token]ast.BinaryOp{
	token.ASSIGN:     ast.OpAssign,
	token.ADD_ASSIGN: ast.OpAddAssign,
	token.SUB_ASSIGN: ast.OpSubAssign,
	token.MUL_ASSIGN: ast.OpMulAssign,
}

func (l *lowerer) assign(s *goast.AssignStmt) ast.Stmt {
	if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
		l.unsupported(s, "multiple assignment")
		return nil
	}
	if s.Tok == token.DEFINE {
		id, ok := s.Lhs[0].(*goast.Ident)
		if !ok {
			l.unsupported(s, "definition of non-identifier")
			return nil
		}
		return l.ctx.NewDeclStmt(l.ctx.NewVar(id.Name, "", l.expr(s.Rhs[0])))
	}
	op, ok := assignOps[s.Tok]
	if !ok {
		l.unsupported(s, "assignment operator %s", s.Tok)
		return nil
	}
	return l.ctx.NewExprStmt(l.ctx.NewBinary(op, l.expr(s.Lhs[0]), l.expr(s.Rhs[0])))
}

func (l *lowerer) varDecl(s *goast.DeclStmt) ast.Stmt {
	gd, ok := s.Decl.(*goast.GenDecl)
	if !ok || gd.Tok != token.VAR || len(gd.Specs) != 1 {
		l.unsupported(s, "local declaration")
		return nil
	}
	vs := gd.Specs[0].(*goast.ValueSpec)
	if len(vs.Names) != 1 || len(vs.Values) > 1 {
		l.unsupported(s, "multiple variable declaration")
		return nil
	}
	var typ string
	if vs.Type != nil {
		typ = types.ExprString(vs.Type)
	}
	var init ast.Expr
	if len(vs.Values) == 1 {
		init = l.expr(vs.Values[0])
	}
	return l.ctx.NewDeclStmt(l.ctx.NewVar(vs.Names[0].Name, typ, init))
}
