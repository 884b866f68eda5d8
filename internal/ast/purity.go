package ast

// PurityContext decides whether expressions may be dropped without
// changing observable behavior.
type PurityContext struct {
	PureCalls map[string]bool // functions known to have no effects
}

// NewPurityContext creates a context that trusts the given function names.
func NewPurityContext(pureCalls ...string) *PurityContext {
	pc := &PurityContext{PureCalls: make(map[string]bool, len(pureCalls))}
	for _, fn := range pureCalls {
		pc.PureCalls[fn] = true
	}
	return pc
}

// HasSideEffects reports whether evaluating e may write memory or call
// an unknown function.
func (pc *PurityContext) HasSideEffects(e Expr) bool {
	impure := false
	Inspect(e, func(n Node) bool {
		if impure {
			return false
		}
		switch n := n.(type) {
		case *CallExpr:
			if pc == nil || !pc.PureCalls[n.Fun] {
				impure = true
			}
		case *BinaryExpr:
			if n.Op.IsAssignment() {
				impure = true
			}
		case *UnaryExpr:
			if n.Op == OpPostInc || n.Op == OpPostDec {
				impure = true
			}
		}
		return !impure
	})
	return impure
}

// HasSideEffects is PurityContext.HasSideEffects with no trusted calls.
func HasSideEffects(e Expr) bool {
	var pc *PurityContext
	return pc.HasSideEffects(e)
}
