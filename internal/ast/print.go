package ast

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Print renders n as C-like text. It is meant for diagnostics and tests,
// not as a faithful source emitter.
func Print(n Node) string {
	var p printer
	switch n := n.(type) {
	case Stmt:
		p.stmt(n, 0)
	case Expr:
		p.buf.WriteString(exprString(n, 0))
	default:
		p.decl(n, 0)
	}
	return strings.TrimRight(p.buf.String(), "\n")
}

type printer struct {
	buf strings.Builder
}

func (p *printer) line(level int, format string, args ...any) {
	p.buf.WriteString(strings.Repeat(indentUnit, level))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) decl(n Node, level int) {
	switch n := n.(type) {
	case *TranslationUnit:
		for i, d := range n.Decls {
			if i > 0 {
				p.buf.WriteByte('\n')
			}
			p.decl(d, level)
		}
	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, v := range n.Params {
			params[i] = typeName(v.Type) + " " + v.Name
		}
		p.line(level, "void %s(%s) {", n.Name, strings.Join(params, ", "))
		if n.Body != nil {
			p.inner(n.Body, level+1)
		}
		p.line(level, "}")
	case *RecordDecl:
		p.line(level, "struct %s {", n.Name)
		for _, f := range n.Fields {
			p.decl(f, level+1)
		}
		p.line(level, "};")
	case *FieldDecl:
		p.line(level, "%s %s;", typeName(n.Type), n.Name)
	case *VarDecl:
		p.line(level, "%s;", varDeclString(n))
	}
}

func varDeclString(v *VarDecl) string {
	if v.Init == nil {
		return typeName(v.Type) + " " + v.Name
	}
	return typeName(v.Type) + " " + v.Name + " = " + exprString(v.Init, precAssign+1)
}

func typeName(t string) string {
	if t == "" {
		return "int"
	}
	return t
}

// inner prints the statements of a body one level deeper. A compound
// body contributes its statements, any other statement itself.
func (p *printer) inner(s Stmt, level int) {
	if c, ok := s.(*CompoundStmt); ok {
		for _, st := range c.Body {
			p.stmt(st, level)
		}
		return
	}
	if s != nil {
		p.stmt(s, level)
	}
}

func (p *printer) stmt(s Stmt, level int) {
	switch s := s.(type) {
	case *CompoundStmt:
		p.line(level, "{")
		p.inner(s, level+1)
		p.line(level, "}")
	case *IfStmt:
		p.ifChain(s, level, "")
	case *WhileStmt:
		p.line(level, "while (%s) {", exprString(s.Cond, 0))
		p.inner(s.Body, level+1)
		p.line(level, "}")
	case *BreakStmt:
		p.line(level, "break;")
	case *ContinueStmt:
		p.line(level, "continue;")
	case *ReturnStmt:
		if s.Value == nil {
			p.line(level, "return;")
		} else {
			p.line(level, "return %s;", exprString(s.Value, 0))
		}
	case *ExprStmt:
		p.line(level, "%s;", exprString(s.X, 0))
	case *DeclStmt:
		p.line(level, "%s;", varDeclString(s.Decl))
	case *NullStmt:
		p.line(level, ";")
	}
}

// ifChain prints an if statement, folding "else if" onto one line.
func (p *printer) ifChain(s *IfStmt, level int, prefix string) {
	p.line(level, "%sif (%s) {", prefix, exprString(s.Cond, 0))
	p.inner(s.Then, level+1)
	switch e := s.Else.(type) {
	case nil:
		p.line(level, "}")
	case *IfStmt:
		p.ifChain(e, level, "} else ")
	default:
		p.line(level, "} else {")
		p.inner(e, level+1)
		p.line(level, "}")
	}
}

const (
	precAssign = iota + 1
	precLOr
	precLAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPrefix
	precPostfix
	precPrimary
)

func binaryPrec(op BinaryOp) int {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign:
		return precAssign
	case OpLOr:
		return precLOr
	case OpLAnd:
		return precLAnd
	case OpEq, OpNe:
		return precEquality
	case OpLt, OpLe, OpGt, OpGe:
		return precRelational
	case OpAdd, OpSub:
		return precAdditive
	default:
		return precMultiplicative
	}
}

func exprPrec(e Expr) int {
	switch e := e.(type) {
	case *BinaryExpr:
		return binaryPrec(e.Op)
	case *UnaryExpr:
		if e.Op == OpPostInc || e.Op == OpPostDec {
			return precPostfix
		}
		return precPrefix
	default:
		return precPrimary
	}
}

// exprString renders e, parenthesizing it when it binds looser than minPrec.
func exprString(e Expr, minPrec int) string {
	var s string
	switch e := e.(type) {
	case *IntLit:
		s = fmt.Sprintf("%d", e.Value)
	case *Ident:
		s = e.Name
	case *ParenExpr:
		s = "(" + exprString(e.X, 0) + ")"
	case *UnaryExpr:
		if e.Op == OpPostInc || e.Op == OpPostDec {
			s = exprString(e.X, precPostfix) + e.Op.String()
		} else {
			s = e.Op.String() + exprString(e.X, precPrefix)
		}
	case *BinaryExpr:
		p := binaryPrec(e.Op)
		if p == precAssign {
			s = exprString(e.X, p+1) + " " + e.Op.String() + " " + exprString(e.Y, p)
		} else {
			s = exprString(e.X, p) + " " + e.Op.String() + " " + exprString(e.Y, p+1)
		}
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprString(a, precAssign+1)
		}
		s = e.Fun + "(" + strings.Join(args, ", ") + ")"
	default:
		s = "<nil>"
	}
	if exprPrec(e) < minPrec {
		return "(" + s + ")"
	}
	return s
}
