package minilogic

// DefaultMaxAssignments bounds the search of a single check.
const DefaultMaxAssignments = 1 << 16

// Config holds configuration for the decision procedure.
type Config struct {
	// MaxAssignments caps the number of assignments a check may try.
	// Larger problems are answered with Unknown.
	MaxAssignments int
	// DebugIR attaches the abstraction to every report.
	DebugIR bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxAssignments: DefaultMaxAssignments}
}

// MiniLogic is the main entry point of the decision procedure.
type MiniLogic struct {
	checker    *Checker
	normalizer *Normalizer
	config     Config
}

// New creates a new MiniLogic instance with default configuration.
func New() *MiniLogic {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new MiniLogic instance with the given configuration.
func NewWithConfig(config Config) *MiniLogic {
	return &MiniLogic{
		checker:    NewChecker(config),
		normalizer: NewNormalizer(config),
		config:     config,
	}
}

// Check decides the satisfiability of f.
func (m *MiniLogic) Check(f Expr) Report {
	return m.checker.Check(f)
}

// ProveValid reports whether f holds under every assignment, that is
// whether its negation is unsatisfiable. Unknown counts as not proved.
func (m *MiniLogic) ProveValid(f Expr) bool {
	return m.checker.Check(Not(f)).Result == Unsatisfiable
}

// ProveUnsat reports whether f holds under no assignment.
func (m *MiniLogic) ProveUnsat(f Expr) bool {
	return m.checker.Check(f).Result == Unsatisfiable
}

// Simplify returns an equivalent, simplified form of e.
func (m *MiniLogic) Simplify(e Expr) Expr {
	return m.normalizer.Simplify(e)
}

// Evaluate evaluates an expression under env.
func (m *MiniLogic) Evaluate(e Expr, env *Env) Value {
	return NewEvaluator().EvalExpr(e, env)
}
