// Package passes contains the control-flow structuring rewrites. Each
// pass embeds pass.Base, records substitutions while it walks the tree
// and leaves the relinking to Base.Transform.
package passes

const (
	DeadStmtElimName     = "dead-stmt-elim"
	ReachBasedRefineName = "reach-based-refine"
	LoopRefineName       = "loop-refine"
)
