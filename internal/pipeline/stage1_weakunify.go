package pipeline

import (
	"github.com/funvibe/hmcoerce/internal/solveerr"
	"github.com/funvibe/hmcoerce/internal/unify"
)

// WeakUnifyStage is stage 1: erase every constraint's subtype/equality
// distinction and check the resulting equational problem has a unifier at
// all. This proves structural solvability before Simplify starts
// reasoning about variance and bounds; failure here means no amount of
// coercion can ever make the constraints hold.
type WeakUnifyStage struct{}

func (WeakUnifyStage) Process(ctx *SolveContext) *SolveContext {
	eqs := make([]unify.Equation, len(ctx.Constraints))
	for i, c := range ctx.Constraints {
		eqs[i] = unify.Equation{Left: c.Left, Right: c.Right}
	}
	s, err := unify.WeakUnify(eqs)
	if err != nil {
		return Fail(ctx, solveerr.NewNoWeakUnifier("constraints have no common structural unifier", err))
	}
	ctx.ThetaWeak = s
	return ctx
}
