package minilogic

import "fmt"

// SatResult is the answer of a satisfiability check.
type SatResult int

const (
	_ SatResult = iota
	// Satisfiable indicates a checked model exists.
	Satisfiable
	// Unsatisfiable indicates no assignment satisfies the formula.
	Unsatisfiable
	// Unknown indicates the procedure could not decide.
	Unknown
)

func (r SatResult) String() string {
	switch r {
	case Satisfiable:
		return "Satisfiable"
	case Unsatisfiable:
		return "Unsatisfiable"
	case Unknown:
		return "Unknown"
	default:
		return "?"
	}
}

// ReasonCode provides a reason for the check result.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	ReasonConstant
	ReasonModelFound
	ReasonExhausted
	ReasonBudgetExceeded
	ReasonSpuriousModel
	ReasonUnsupported
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonConstant:
		return "formula simplifies to a constant"
	case ReasonModelFound:
		return "model found and checked"
	case ReasonExhausted:
		return "no assignment satisfies the formula"
	case ReasonBudgetExceeded:
		return "assignment budget exceeded"
	case ReasonSpuriousModel:
		return "only models of the abstraction were found"
	case ReasonUnsupported:
		return "formula outside MiniLogic scope"
	default:
		return "unknown"
	}
}

// Report provides detailed information about a check.
type Report struct {
	Result SatResult
	Reason ReasonCode
	Detail string
	Model  *Env // valid for Satisfiable
	IR     *IRReport
}

func (r Report) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s (%s)", r.Result, r.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", r.Result, r.Reason, r.Detail)
}
