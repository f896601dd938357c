package pipeline

import (
	"github.com/funvibe/hmcoerce/internal/cgraph"
	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
)

// SolveContext carries state between stages. Each stage reads the fields
// left by its predecessors and writes its own; Err, once set, short-
// circuits the remaining stages (Pipeline.Run).
type SolveContext struct {
	// Oracle answers the variance/lattice questions every stage after
	// WeakUnify needs; supplied by the caller, never mutated.
	Oracle oracle.Oracle

	// Alloc mints fresh variables; seeded by the caller from every
	// variable free in the input constraints.
	Alloc *hmtype.Allocator

	// Constraints is the input constraint set (stage 0, before
	// WeakUnify); stages read it but never rewrite it, keeping their
	// substitutions in the Theta fields below.
	Constraints []hmconstraint.Constraint

	// ThetaWeak is stage 1's witness substitution (unused downstream
	// beyond the structural-solvability it proves).
	ThetaWeak hmtype.Subst

	// ThetaSimp is stage 2's accumulated equality substitution.
	ThetaSimp hmtype.Subst
	// Atomics is stage 2's output: the simplified subtype pairs.
	Atomics []hmconstraint.Atomic

	// Graph is stage 3's constraint graph over Atomics.
	Graph *cgraph.ConstraintGraph

	// ThetaCyc is stage 4's accumulated cycle-collapse substitution.
	ThetaCyc hmtype.Subst
	// CondensedGraph is stage 4's output: Graph with every non-trivial
	// SCC collapsed to its representative node.
	CondensedGraph *cgraph.ConstraintGraph

	// ThetaSol is stage 5's bound-resolution substitution over atoms.
	ThetaSol hmtype.Subst

	// ThetaWCC is stage 6's weakly-connected-component collapse
	// substitution — the pipeline's final output substitution is the
	// composition of every theta produced so far.
	ThetaWCC hmtype.Subst

	// Err is the first error raised by any stage, if any.
	Err error
}

// NewSolveContext builds the initial context for a solve run. alloc should
// already be seeded with every variable free in cs (hmtype.NewAllocatorFrom).
func NewSolveContext(cs []hmconstraint.Constraint, o oracle.Oracle, alloc *hmtype.Allocator) *SolveContext {
	return &SolveContext{
		Oracle:      o,
		Alloc:       alloc,
		Constraints: cs,
	}
}

// FinalSubst composes every stage's substitution in application order:
// ThetaSimp first, then ThetaCyc, then ThetaSol, then ThetaWCC. ThetaWeak
// is excluded — it only witnesses solvability.
func (ctx *SolveContext) FinalSubst() hmtype.Subst {
	result := hmtype.Subst{}
	result = result.Compose(ctx.ThetaSimp)
	result = result.Compose(ctx.ThetaCyc)
	result = result.Compose(ctx.ThetaSol)
	result = result.Compose(ctx.ThetaWCC)
	return result
}
