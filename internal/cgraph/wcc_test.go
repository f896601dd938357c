package cgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
)

func TestWeaklyConnectedComponentsMergesChain(t *testing.T) {
	a, b, c := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}, hmtype.Var{ID: 3}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b), atomic(b, c)})
	wccs := WeaklyConnectedComponents(g)
	require.Len(t, wccs, 1)
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, wccs[0].Nodes)
}

func TestWeaklyConnectedComponentsKeepsDisjointPartsSeparate(t *testing.T) {
	a, b := hmtype.Var{ID: 1}, hmtype.Var{ID: 2}
	c, d := hmtype.Var{ID: 3}, hmtype.Var{ID: 4}
	g := BuildGraph([]hmconstraint.Atomic{atomic(a, b), atomic(c, d)})
	wccs := WeaklyConnectedComponents(g)
	require.Len(t, wccs, 2)
}
