package pipeline

import (
	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
)

// Standard is the fixed six-stage pipeline, in the only order the
// algorithm is defined for.
func Standard() *Pipeline {
	return New(
		WeakUnifyStage{},
		SimplifyStage{},
		BuildGraphStage{},
		ElimCyclesStage{},
		SolveGraphStage{},
		UnifyWCCStage{},
	)
}

// Solve runs the standard pipeline over cs against o and returns the
// composed substitution solving every constraint, or the first stage
// error (a *solveerr.NoWeakUnifier or *solveerr.NoUnify).
func Solve(cs []hmconstraint.Constraint, o oracle.Oracle) (hmtype.Subst, error) {
	seed := make([]hmtype.Type, 0, len(cs)*2)
	for _, c := range cs {
		seed = append(seed, c.Left, c.Right)
	}
	alloc := hmtype.NewAllocatorFrom(hmtype.CollectFreeVars(seed...))

	ctx := NewSolveContext(cs, o, alloc)
	ctx = Standard().Run(ctx)
	if ctx.Err != nil {
		return nil, ctx.Err
	}
	return ctx.FinalSubst(), nil
}
