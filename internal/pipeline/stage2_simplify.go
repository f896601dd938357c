package pipeline

import "github.com/funvibe/hmcoerce/internal/hmconstraint"

// SimplifyStage is stage 2: reduce the constraint set to a list of atomic
// subtype pairs plus an accumulated equality substitution.
type SimplifyStage struct{}

func (SimplifyStage) Process(ctx *SolveContext) *SolveContext {
	res, err := hmconstraint.Simplify(ctx.Constraints, ctx.Oracle, ctx.Alloc)
	if err != nil {
		return Fail(ctx, err)
	}
	ctx.ThetaSimp = res.Subst
	ctx.Atomics = res.Atomics
	return ctx
}
