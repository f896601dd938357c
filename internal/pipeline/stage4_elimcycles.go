package pipeline

import (
	"fmt"

	"github.com/funvibe/hmcoerce/internal/cgraph"
	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/solveerr"
	"github.com/funvibe/hmcoerce/internal/unify"
)

// ElimCyclesStage is stage 4: every strongly connected component of the
// constraint graph names atoms that must be equal (a cycle a1 <: a2 <:
// ... <: a1 forces a1 = a2 = ... by antisymmetry), so each is collapsed to
// one representative via Equate, and the accumulated substitution is
// threaded through every remaining atom.
type ElimCyclesStage struct{}

func (ElimCyclesStage) Process(ctx *SolveContext) *SolveContext {
	sccs := cgraph.StronglyConnectedComponents(ctx.Graph)
	nontrivial := cgraph.NonTrivial(ctx.Graph, sccs)

	theta := hmtype.Subst{}
	groups := make([][]string, 0, len(nontrivial))
	reps := make(map[string]hmtype.Atom, len(nontrivial))

	for _, scc := range nontrivial {
		ts := make([]hmtype.Type, len(scc.Nodes))
		for i, id := range scc.Nodes {
			ts[i] = ctx.Graph.Atom(id).Apply(theta)
		}
		s, err := unify.Equate(ts)
		if err != nil {
			return Fail(ctx, solveerr.NewNoUnify("ElimCycles", fmt.Sprintf("cycle atoms are not simultaneously unifiable: %v", scc.Nodes), err))
		}
		theta = theta.Compose(s)

		repType := ts[0].Apply(s)
		rep, ok := hmtype.AsAtom(repType)
		if !ok {
			return Fail(ctx, solveerr.NewNoUnify("ElimCycles", fmt.Sprintf("cycle representative %s is not an atom after collapse", repType), nil))
		}
		groups = append(groups, scc.Nodes)
		reps[groupKey(scc.Nodes)] = rep
	}

	ctx.ThetaCyc = theta
	ctx.CondensedGraph = cgraph.Collapse(ctx.Graph, groups, func(group []string) hmtype.Atom {
		return reps[groupKey(group)]
	})
	return ctx
}

// groupKey gives each SCC node slice a stable map key; node order within a
// component is fixed by StronglyConnectedComponents for a given run.
func groupKey(nodes []string) string {
	key := ""
	for _, n := range nodes {
		key += n + "\x00"
	}
	return key
}
