// Package solver is the in-process public API: build a constraint list
// against an Oracle, call Solve, get back a substitution or one of
// solveerr's two error kinds. There is no wire protocol: a caller embeds
// this module and calls Solve directly.
package solver

import (
	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
	"github.com/funvibe/hmcoerce/internal/pipeline"
)

// Type mirrors internal/hmtype.Type at the package boundary so callers
// never need to import an internal package to build a constraint.
type (
	Type     = hmtype.Type
	Var      = hmtype.Var
	VarID    = hmtype.VarID
	BaseAtom = hmtype.BaseAtom
	Cons     = hmtype.Cons
	Subst    = hmtype.Subst
)

// Constraint mirrors internal/hmconstraint.Constraint.
type Constraint = hmconstraint.Constraint

// Oracle mirrors internal/oracle.Oracle, the external collaborator every
// Solve call requires.
type Oracle = oracle.Oracle

// Eq builds an equality constraint t1 = t2.
func Eq(t1, t2 Type) Constraint { return hmconstraint.NewEq(t1, t2) }

// Sub builds a subtype constraint t1 <: t2.
func Sub(t1, t2 Type) Constraint { return hmconstraint.NewSub(t1, t2) }

// NewAllocator returns a fresh-variable source seeded past every VarID
// already used in seed; callers building constraints by hand use this to
// avoid colliding with variables the solver introduces internally.
func NewAllocator(seed ...Type) *hmtype.Allocator {
	return hmtype.NewAllocatorFrom(hmtype.CollectFreeVars(seed...))
}

// Solve runs the full WeakUnify -> Simplify -> BuildGraph -> ElimCycles ->
// SolveGraph -> UnifyWCC pipeline over cs against o and returns the
// substitution that solves every constraint. On failure the error is
// either a *solveerr.NoWeakUnifier (no structural unifier exists at all)
// or a *solveerr.NoUnify (a later stage found a specific obstruction);
// use errors.As to distinguish them.
func Solve(cs []Constraint, o Oracle) (Subst, error) {
	return pipeline.Solve(cs, o)
}
