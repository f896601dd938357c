package cgraph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
)

func atomic(lower, upper hmtype.Atom) hmconstraint.Atomic {
	return hmconstraint.Atomic{Lower: lower, Upper: upper}
}

func sortedNodes(nodes []string) []string {
	out := append([]string{}, nodes...)
	sort.Strings(out)
	return out
}

func TestBuildGraphCreatesNodesAndEdges(t *testing.T) {
	a, b := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b)})
	require.Len(t, g.NodeIDs(), 2)
	assert.Equal(t, []string{"t2"}, g.Succ("t1"))
	assert.Equal(t, []string{"t1"}, g.Pred("t2"))
}

func TestStronglyConnectedComponentsFindsCycle(t *testing.T) {
	a, b, c := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}, hmtype.Var{ID: 3}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b), atomic(b, c), atomic(c, a)})
	sccs := StronglyConnectedComponents(g)
	require.Len(t, sccs, 1)
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, sccs[0].Nodes)
}

func TestStronglyConnectedComponentsOnDAGAreSingletons(t *testing.T) {
	a, b, c := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}, hmtype.Var{ID: 3}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b), atomic(b, c)})
	sccs := StronglyConnectedComponents(g)
	assert.Len(t, sccs, 3)
	nontrivial := NonTrivial(g, sccs)
	assert.Empty(t, nontrivial)
}

func TestNonTrivialDetectsSelfLoop(t *testing.T) {
	a := hmtype.Var{ID: 1}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, a)})
	sccs := StronglyConnectedComponents(g)
	nontrivial := NonTrivial(g, sccs)
	require.Len(t, nontrivial, 1)
	assert.Equal(t, []string{"t1"}, nontrivial[0].Nodes)
}

func TestCollapseMergesGroupAndDropsSelfLoops(t *testing.T) {
	a, b, c := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}, hmtype.Var{ID: 3}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b), atomic(b, c), atomic(c, a)})
	collapsed := Collapse(g, [][]string{{"t1", "t2", "t3"}}, func(group []string) hmtype.Atom {
		return hmtype.BaseAtom{Base: "Int"}
	})
	require.Len(t, collapsed.NodeIDs(), 1)
	assert.Empty(t, collapsed.Edges())
}
