// Package minilogic implements a small decision procedure for the
// quantifier-free formulas that arise from branch conditions.
//
// Formulas combine integer comparisons with the boolean connectives.
// Integer terms are linearized; a comparison over a single variable is
// decided exactly by enumerating the values around its root, while
// comparisons over several variables and non-linear terms are abstracted
// into free propositions. The abstraction only ever adds models, so an
// Unsatisfiable answer is always sound. A Satisfiable answer is reported
// only after the model has been checked against the original formula.
//
// Supported:
//   - integer literals, variables, +, -, * by a constant, unary minus
//   - ==, !=, <, <=, >, >= between integer terms
//   - !, &&, || and == / != between truth values
//
// Out of scope (abstracted, may lead to Unknown):
//   - multiplication of two variables, division and remainder
//   - relations between two or more variables
//   - fixed-width overflow; integers are unbounded within int64
package minilogic
