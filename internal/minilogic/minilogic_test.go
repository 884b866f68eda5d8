package minilogic

import (
	"strings"
	"testing"
)

var (
	x = Var("x")
	y = Var("y")
)

// =======================
// Simplification Tests
// =======================

func TestSimplify(t *testing.T) {
	ml := New()

	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"constant comparison", Lt(IntLit(1), IntLit(2)), "true"},
		{"and true", And(BoolLit(true), Gt(x, IntLit(0))), "(x > 0)"},
		{"and false", And(Gt(x, IntLit(0)), BoolLit(false)), "false"},
		{"or true", Or(Gt(x, IntLit(0)), BoolLit(true)), "true"},
		{"double negation", Not(Not(x)), "x"},
		{"negated comparison", Not(Lt(x, IntLit(3))), "(x >= 3)"},
		{"self equality", Eq(x, x), "true"},
		{"self less", Lt(x, x), "false"},
		{"add zero", Binary(OpAdd, x, IntLit(0)), "x"},
		{"nested fold", Binary(OpMul, Binary(OpAdd, IntLit(1), IntLit(2)), x), "(3 * x)"},
		{"division by zero kept", Binary(OpDiv, IntLit(1), IntLit(0)), "(1 / 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ml.Simplify(tt.in).String()
			if got != tt.want {
				t.Errorf("Simplify(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

// =======================
// Satisfiability Tests
// =======================

func TestCheckSingleVariable(t *testing.T) {
	ml := New()

	tests := []struct {
		name string
		f    Expr
		want SatResult
	}{
		{"empty range", And(Gt(x, IntLit(0)), Lt(x, IntLit(0))), Unsatisfiable},
		{"point range", And(Gt(x, IntLit(0)), Lt(x, IntLit(2))), Satisfiable},
		{"excluded middle", Not(Or(Eq(x, IntLit(3)), Neq(x, IntLit(3)))), Unsatisfiable},
		{"fractional root", Eq(Binary(OpMul, IntLit(2), x), IntLit(3)), Unsatisfiable},
		{"scaled bound", And(Gt(Binary(OpMul, IntLit(2), x), IntLit(3)), Lt(x, IntLit(2))), Unsatisfiable},
		{"negative coefficient", And(Gt(Unary(OpNeg, x), IntLit(4)), Gt(x, IntLit(-6))), Satisfiable},
		{"integer as condition", x, Satisfiable},
		{"constant false", BoolLit(false), Unsatisfiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ml.Check(tt.f)
			if report.Result != tt.want {
				t.Errorf("Check(%s) = %v, want %v (%s)", tt.f, report.Result, tt.want, report)
			}
		})
	}
}

func TestCheckModelSatisfiesFormula(t *testing.T) {
	ml := New()
	f := And(Gt(x, IntLit(0)), Lt(x, IntLit(2)), Neq(y, IntLit(0)))

	report := ml.Check(f)
	if report.Result != Satisfiable {
		t.Fatalf("expected Satisfiable, got %s", report)
	}
	if got := report.Model.Get("x"); !got.Equal(IntValue{Val: 1}) {
		t.Errorf("expected x = 1, got %v", got)
	}
	if !IsKnownTrue(ml.Evaluate(f, report.Model)) {
		t.Errorf("model %s does not satisfy %s", report.Model, f)
	}
}

func TestProveValidChains(t *testing.T) {
	ml := New()

	complete := Or(Gt(x, IntLit(0)), Eq(x, IntLit(0)), Lt(x, IntLit(0)))
	if !ml.ProveValid(complete) {
		t.Errorf("expected %s to be valid", complete)
	}

	gap := Or(Gt(x, IntLit(0)), Lt(x, IntLit(-1)))
	if ml.ProveValid(gap) {
		t.Errorf("expected %s not to be valid", gap)
	}

	disjoint := And(Eq(x, IntLit(0)), Or(Gt(x, IntLit(0)), Lt(x, IntLit(0))))
	if !ml.ProveUnsat(disjoint) {
		t.Errorf("expected %s to be unsatisfiable", disjoint)
	}

	if !ml.ProveValid(And()) {
		t.Error("empty conjunction must be valid")
	}
	if !ml.ProveUnsat(Or()) {
		t.Error("empty disjunction must be unsatisfiable")
	}
}

func TestCheckAbstractedAtoms(t *testing.T) {
	ml := New()

	// Relations over two variables share a derived variable for x-y; a
	// checked model is still found when one exists.
	if r := ml.Check(Lt(x, y)); r.Result != Satisfiable {
		t.Errorf("x < y: expected Satisfiable, got %s", r)
	}
	if r := ml.Check(And(Lt(x, y), Lt(y, x))); r.Result != Unsatisfiable {
		t.Errorf("x < y && y < x: expected Unsatisfiable, got %s", r)
	}

	// Different variable parts stay unrelated, so this is not refuted.
	z := Var("z")
	if r := ml.Check(And(Lt(x, y), Lt(y, z), Lt(z, x))); r.Result != Unknown {
		t.Errorf("x < y < z < x: expected Unknown, got %s", r)
	}

	// Non-linear terms become opaque variables.
	r := ml.Check(Lt(Binary(OpMul, x, x), IntLit(0)))
	if r.Result != Unknown || r.Reason != ReasonSpuriousModel {
		t.Errorf("x*x < 0: expected Unknown/spurious, got %s", r)
	}
}

func TestCheckRelationsBetweenVariables(t *testing.T) {
	ml := New()

	split := Or(Gt(x, y), Lt(x, y), Eq(x, y))
	if !ml.ProveValid(split) {
		t.Errorf("expected %s to be valid", split)
	}

	// 2x - 2y and y - x share the variable part x - y.
	scaled := And(Gt(Binary(OpSub, Binary(OpMul, IntLit(2), x), Binary(OpMul, IntLit(2), y)), IntLit(0)), Binary(OpGte, Binary(OpSub, y, x), IntLit(0)))
	if !ml.ProveUnsat(scaled) {
		t.Errorf("expected %s to be unsatisfiable", scaled)
	}

	offset := Or(Gt(x, Binary(OpAdd, y, IntLit(1))), Binary(OpLte, Binary(OpSub, x, y), IntLit(1)))
	if !ml.ProveValid(offset) {
		t.Errorf("expected %s to be valid", offset)
	}
}

func TestCheckBudget(t *testing.T) {
	ml := NewWithConfig(Config{MaxAssignments: 4})
	f := And(Eq(Var("a"), IntLit(1)), Eq(Var("b"), IntLit(1)), Eq(Var("c"), IntLit(1)))

	r := ml.Check(f)
	if r.Result != Unknown || r.Reason != ReasonBudgetExceeded {
		t.Errorf("expected budget Unknown, got %s", r)
	}
	if ml.ProveUnsat(f) || ml.ProveValid(f) {
		t.Error("Unknown must not prove anything")
	}
}

func TestCheckDebugIR(t *testing.T) {
	ml := NewWithConfig(Config{MaxAssignments: DefaultMaxAssignments, DebugIR: true})
	r := ml.Check(And(Gt(x, IntLit(0)), Lt(x, y)))
	if r.IR == nil {
		t.Fatal("expected IR report")
	}
	if !strings.Contains(r.Detail, "IR(atoms):") || !strings.Contains(r.Detail, "x in {") {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
	if len(r.IR.Atoms) != 2 {
		t.Errorf("expected 2 atoms, got %v", r.IR.Atoms)
	}
}

// =======================
// Evaluation Tests
// =======================

func TestEvaluate(t *testing.T) {
	ml := New()
	env := NewEnv()
	env.Set("x", IntValue{Val: 10})

	if v := ml.Evaluate(Binary(OpAdd, x, IntLit(5)), env); !v.Equal(IntValue{Val: 15}) {
		t.Errorf("x + 5 = %v, want 15", v)
	}
	if v := ml.Evaluate(And(x, Gt(x, IntLit(3))), env); !IsKnownTrue(v) {
		t.Errorf("x && x > 3 = %v, want true", v)
	}
	if v := ml.Evaluate(Binary(OpDiv, x, IntLit(0)), env); v.Equal(v) {
		t.Errorf("x / 0 should be undefined, got %v", v)
	}
	if v := ml.Evaluate(y, env); v.String() != "undef" {
		t.Errorf("unbound y = %v, want undef", v)
	}
	if got := env.String(); got != "{x: 10}" {
		t.Errorf("env = %s", got)
	}
}
