package minilogic

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// atom is a comparison "lin op 0" over the single variable v. A
// comparison over several variables is rewritten over a derived variable
// that stands for its variable part.
type atom struct {
	op  BinaryOp
	lin linear
	v   string
}

func (a atom) String() string {
	return a.lin.String() + " " + a.op.String() + " 0"
}

// skeleton is the boolean structure of a formula over atoms.
type skeleton interface{}

type (
	constNode bool
	atomNode  int
	notNode   struct{ x skeleton }
	andNode   struct{ l, r skeleton }
	orNode    struct{ l, r skeleton }
	iffNode   struct{ l, r skeleton }
)

type abstraction struct {
	lz      *linearizer
	atoms   []atom
	index   map[string]int
	derived map[string]bool
}

func newAbstraction() *abstraction {
	return &abstraction{
		lz:      newLinearizer(),
		index:   make(map[string]int),
		derived: make(map[string]bool),
	}
}

// boolean builds the skeleton of e. Integers in a boolean position are
// compared against zero.
func (ab *abstraction) boolean(e Expr) skeleton {
	switch e := e.(type) {
	case LiteralExpr:
		switch v := e.Val.(type) {
		case BoolValue:
			return constNode(v.Val)
		case IntValue:
			return constNode(v.Val != 0)
		}
	case UnaryExpr:
		if e.Op == OpNot {
			return notNode{ab.boolean(e.Operand)}
		}
	case BinaryExpr:
		switch {
		case e.Op == OpAnd:
			return andNode{ab.boolean(e.Left), ab.boolean(e.Right)}
		case e.Op == OpOr:
			return orNode{ab.boolean(e.Left), ab.boolean(e.Right)}
		case (e.Op == OpEq || e.Op == OpNeq) && IsBool(e.Left) && IsBool(e.Right):
			n := skeleton(iffNode{ab.boolean(e.Left), ab.boolean(e.Right)})
			if e.Op == OpNeq {
				n = notNode{n}
			}
			return n
		case e.Op.IsComparison():
			return ab.atom(e.Op, e.Left, e.Right)
		}
	}
	return ab.atom(OpNeq, e, IntLit(0))
}

func (ab *abstraction) atom(op BinaryOp, left, right Expr) skeleton {
	lin := ab.lz.term(left).add(ab.lz.term(right), -1)
	vars := lin.vars()
	if len(vars) == 0 {
		return constNode(compareZero(op, lin.c))
	}

	if len(vars) > 1 {
		lin = ab.derive(lin, vars)
		vars = lin.vars()
	}

	a := atom{op: op, lin: lin, v: vars[0]}
	key := a.String()
	if i, ok := ab.index[key]; ok {
		return atomNode(i)
	}
	ab.atoms = append(ab.atoms, a)
	ab.index[key] = len(ab.atoms) - 1
	return atomNode(len(ab.atoms) - 1)
}

// derive rewrites lin as k*d + c, where d is the variable part divided
// by the gcd of its coefficients and signed so that its first coefficient
// is positive. x-y > 0 and y-x > 0 both end up over d = x-y.
func (ab *abstraction) derive(lin linear, vars []string) linear {
	var g int64
	for _, v := range vars {
		g = gcd(g, lin.coef[v])
	}
	if lin.coef[vars[0]] < 0 {
		g = -g
	}
	part := constLinear(0)
	for _, v := range vars {
		part.coef[v] = lin.coef[v] / g
	}
	name := derivedPrefix + "(" + part.terms() + ")"
	ab.derived[name] = true
	return linear{coef: map[string]int64{name: g}, c: lin.c}
}

// candidates returns, per variable, a set of values that meets every
// region in which the single-variable atoms keep their truth value.
func (ab *abstraction) candidates(names []string) map[string][]int64 {
	sets := make(map[string]map[int64]bool, len(names))
	for _, n := range names {
		sets[n] = map[int64]bool{}
	}
	for _, a := range ab.atoms {
		if a.v == "" {
			continue
		}
		k := a.lin.coef[a.v]
		lo, hi := floorDiv(-a.lin.c, k), ceilDiv(-a.lin.c, k)
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, x := range []int64{lo - 1, lo, hi, hi + 1} {
			sets[a.v][x] = true
		}
	}

	out := make(map[string][]int64, len(sets))
	for n, set := range sets {
		if len(set) == 0 {
			set = map[int64]bool{-1: true, 0: true, 1: true}
		}
		vals := make([]int64, 0, len(set))
		for x := range set {
			vals = append(vals, x)
		}
		sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
		out[n] = vals
	}
	return out
}

func (ab *abstraction) eval(s skeleton, values map[string]int64) bool {
	switch s := s.(type) {
	case constNode:
		return bool(s)
	case atomNode:
		a := ab.atoms[s]
		return compareZero(a.op, a.lin.coef[a.v]*values[a.v]+a.lin.c)
	case notNode:
		return !ab.eval(s.x, values)
	case andNode:
		return ab.eval(s.l, values) && ab.eval(s.r, values)
	case orNode:
		return ab.eval(s.l, values) || ab.eval(s.r, values)
	case iffNode:
		return ab.eval(s.l, values) == ab.eval(s.r, values)
	}
	return false
}

// Checker decides satisfiability of formulas.
type Checker struct {
	config     Config
	normalizer *Normalizer
	evaluator  *Evaluator
}

// NewChecker creates a new checker with the given configuration.
func NewChecker(config Config) *Checker {
	return &Checker{
		config:     config,
		normalizer: NewNormalizer(config),
		evaluator:  NewEvaluator(),
	}
}

// Check decides whether some integer assignment makes f true.
//
// Integers are mathematical integers within int64: arithmetic never
// wraps, so x+1 > x holds for every x. Formulas that are only valid
// because of this are also reported valid; fixed-width wraparound is
// not modelled.
func (c *Checker) Check(f Expr) Report {
	if f == nil {
		return Report{Result: Unknown, Reason: ReasonUnsupported, Detail: "nil formula"}
	}
	f = c.normalizer.Simplify(f)

	if v, ok := (BasicCondSolver{}).Solve(f, nil); ok {
		if v.Val {
			return Report{Result: Satisfiable, Reason: ReasonConstant, Model: NewEnv()}
		}
		return Report{Result: Unsatisfiable, Reason: ReasonConstant}
	}

	ab := newAbstraction()
	sk := ab.boolean(f)

	names := Vars(f)
	for n := range ab.lz.opaque {
		names = append(names, n)
	}
	for n := range ab.derived {
		names = append(names, n)
	}
	sort.Strings(names)
	cands := ab.candidates(names)

	total, ok := c.assignments(names, cands)
	if !ok {
		return c.withDebugIR(Report{
			Result: Unknown,
			Reason: ReasonBudgetExceeded,
			Detail: fmt.Sprintf("more than %d assignments", c.config.MaxAssignments),
		}, ab, names, cands)
	}

	spurious := 0
	idx := make([]int, len(names))
	values := make(map[string]int64, len(names))
	for step := 0; step < total; step++ {
		rest := step
		for i, n := range names {
			idx[i] = rest % len(cands[n])
			rest /= len(cands[n])
			values[n] = cands[n][idx[i]]
		}

		if !ab.eval(sk, values) {
			continue
		}
		model := NewEnv()
		for _, n := range names {
			if !strings.HasPrefix(n, opaquePrefix) && !strings.HasPrefix(n, derivedPrefix) {
				model.Set(n, IntValue{Val: values[n]})
			}
		}
		if IsKnownTrue(truth(c.evaluator.EvalExpr(f, model))) {
			return c.withDebugIR(Report{Result: Satisfiable, Reason: ReasonModelFound, Model: model}, ab, names, cands)
		}
		spurious++
	}

	if spurious > 0 {
		return c.withDebugIR(Report{
			Result: Unknown,
			Reason: ReasonSpuriousModel,
			Detail: fmt.Sprintf("%d abstract models rejected", spurious),
		}, ab, names, cands)
	}
	return c.withDebugIR(Report{Result: Unsatisfiable, Reason: ReasonExhausted}, ab, names, cands)
}

// assignments returns the size of the search space, or false when it
// exceeds the configured budget.
func (c *Checker) assignments(names []string, cands map[string][]int64) (int, bool) {
	limit := c.config.MaxAssignments
	if limit <= 0 {
		limit = DefaultMaxAssignments
	}
	total := 1
	for _, n := range names {
		size := len(cands[n])
		if total > math.MaxInt/size || total*size > limit {
			return 0, false
		}
		total *= size
	}
	return total, true
}
