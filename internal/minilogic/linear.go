package minilogic

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// opaquePrefix marks variables that stand for a non-linear subterm.
	opaquePrefix = "@"
	// derivedPrefix marks variables that stand for a sum of variables.
	derivedPrefix = "%"
)

// linear is the term sum(coef[v] * v) + c.
type linear struct {
	coef map[string]int64
	c    int64
}

func constLinear(c int64) linear {
	return linear{coef: map[string]int64{}, c: c}
}

func varLinear(name string) linear {
	return linear{coef: map[string]int64{name: 1}}
}

func (l linear) isConst() bool {
	return len(l.vars()) == 0
}

func (l linear) add(o linear, sign int64) linear {
	out := linear{coef: make(map[string]int64, len(l.coef)+len(o.coef)), c: l.c + sign*o.c}
	for v, k := range l.coef {
		out.coef[v] += k
	}
	for v, k := range o.coef {
		out.coef[v] += sign * k
	}
	return out
}

func (l linear) scale(k int64) linear {
	out := linear{coef: make(map[string]int64, len(l.coef)), c: l.c * k}
	for v, kv := range l.coef {
		out.coef[v] = kv * k
	}
	return out
}

// vars returns the variables with a non-zero coefficient, sorted.
func (l linear) vars() []string {
	out := make([]string, 0, len(l.coef))
	for v, k := range l.coef {
		if k != 0 {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (l linear) String() string {
	if l.isConst() {
		return fmt.Sprintf("%d", l.c)
	}
	return fmt.Sprintf("%s + %d", l.terms(), l.c)
}

// terms renders the variable part only.
func (l linear) terms() string {
	var parts []string
	for _, v := range l.vars() {
		parts = append(parts, fmt.Sprintf("%d*%s", l.coef[v], v))
	}
	return strings.Join(parts, " + ")
}

// linearizer turns integer terms into linear form. Subterms it cannot
// express are replaced by fresh variables named after their text.
type linearizer struct {
	opaque map[string]Expr
}

func newLinearizer() *linearizer {
	return &linearizer{opaque: make(map[string]Expr)}
}

func (lz *linearizer) term(e Expr) linear {
	switch e := e.(type) {
	case LiteralExpr:
		switch v := e.Val.(type) {
		case IntValue:
			return constLinear(v.Val)
		case BoolValue:
			if v.Val {
				return constLinear(1)
			}
			return constLinear(0)
		}
	case VarExpr:
		return varLinear(e.Name)
	case UnaryExpr:
		if e.Op == OpNeg {
			return lz.term(e.Operand).scale(-1)
		}
	case BinaryExpr:
		switch e.Op {
		case OpAdd:
			return lz.term(e.Left).add(lz.term(e.Right), 1)
		case OpSub:
			return lz.term(e.Left).add(lz.term(e.Right), -1)
		case OpMul:
			l, r := lz.term(e.Left), lz.term(e.Right)
			if l.isConst() {
				return r.scale(l.c)
			}
			if r.isConst() {
				return l.scale(r.c)
			}
		}
	}
	name := opaquePrefix + e.String()
	lz.opaque[name] = e
	return varLinear(name)
}

// gcd is always non-negative; gcd(0, b) is |b|.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func compareZero(op BinaryOp, v int64) bool {
	switch op {
	case OpEq:
		return v == 0
	case OpNeq:
		return v != 0
	case OpLt:
		return v < 0
	case OpLte:
		return v <= 0
	case OpGt:
		return v > 0
	case OpGte:
		return v >= 0
	}
	return false
}
