package pipeline

import (
	"fmt"

	"github.com/funvibe/hmcoerce/internal/cgraph"
	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/solveerr"
	"github.com/funvibe/hmcoerce/internal/unify"
)

// UnifyWCCStage is stage 6, the final pass: any variable SolveGraph left
// unresolved (no base bound reachable on either side) is
// still related, via the original subtype edges, to every atom in its
// weakly connected component. Those components are unified outright —
// full equality, not a bound — collapsing each remaining chain of
// variables to one representative so the answer never leaves a variable
// split across unrelated names.
type UnifyWCCStage struct{}

func (UnifyWCCStage) Process(ctx *SolveContext) *SolveContext {
	wccs := cgraph.WeaklyConnectedComponents(ctx.CondensedGraph)
	prior := ctx.ThetaSimp.Compose(ctx.ThetaCyc).Compose(ctx.ThetaSol)

	theta := hmtype.Subst{}
	for _, wcc := range wccs {
		if len(wcc.Nodes) < 2 {
			continue
		}
		ts := make([]hmtype.Type, len(wcc.Nodes))
		for i, id := range wcc.Nodes {
			ts[i] = ctx.CondensedGraph.Atom(id).Apply(prior).Apply(theta)
		}
		s, err := unify.Equate(ts)
		if err != nil {
			return Fail(ctx, solveerr.NewNoUnify("UnifyWCC", fmt.Sprintf("component %v has no common unifier", wcc.Nodes), err))
		}
		theta = theta.Compose(s)
	}

	ctx.ThetaWCC = theta
	return ctx
}
