package frontend

import (
	goast "go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/konchunas/rellic/internal/ast"
	"golang.org/x/tools/go/ast/astutil"
)

var binaryOps = map[token.Token]ast.BinaryOp{
	token.ADD:  ast.OpAdd,
	token.SUB:  ast.OpSub,
	token.MUL:  ast.OpMul,
	token.QUO:  ast.OpDiv,
	token.REM:  ast.OpRem,
	token.EQL:  ast.OpEq,
	token.NEQ:  ast.OpNe,
	token.LSS:  ast.OpLt,
	token.LEQ:  ast.OpLe,
	token.GTR:  ast.OpGt,
	token.GEQ:  ast.OpGe,
	token.LAND: ast.OpLAnd,
	token.LOR:  ast.OpLOr,
}

// expr lowers an expression. Source parentheses are dropped; the
// printer reintroduces them from precedence.
func (l *lowerer) expr(e goast.Expr) ast.Expr {
	switch e := astutil.Unparen(e).(type) {
	case *goast.BasicLit:
		if e.Kind == token.INT {
			v, err := strconv.ParseInt(e.Value, 0, 64)
			if err == nil {
				return l.ctx.NewInt(v)
			}
		}
		l.unsupported(e, "literal %s", e.Value)

	case *goast.Ident:
		switch e.Name {
		case "true":
			return l.ctx.NewInt(1)
		case "false":
			return l.ctx.NewInt(0)
		}
		return l.ctx.NewIdent(e.Name)

	case *goast.UnaryExpr:
		switch e.Op {
		case token.NOT:
			return l.ctx.NewUnary(ast.OpNot, l.expr(e.X))
		case token.SUB:
			return l.ctx.NewUnary(ast.OpNeg, l.expr(e.X))
		case token.XOR:
			return l.ctx.NewUnary(ast.OpBitNot, l.expr(e.X))
		case token.ADD:
			return l.expr(e.X)
		}
		l.unsupported(e, "unary operator %s", e.Op)

	case *goast.BinaryExpr:
		if op, ok := binaryOps[e.Op]; ok {
			return l.ctx.NewBinary(op, l.expr(e.X), l.expr(e.Y))
		}
		l.unsupported(e, "binary operator %s", e.Op)

	case *goast.CallExpr:
		args := make([]ast.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = l.expr(a)
		}
		return l.ctx.NewCall(types.ExprString(e.Fun), args...)

	default:
		l.unsupported(e, "expression %T", e)
	}
	// keep the tree well formed while errors are collected
	return l.ctx.NewInt(0)
}
