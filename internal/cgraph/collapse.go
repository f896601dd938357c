package cgraph

import (
	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/funvibe/hmcoerce/internal/hmtype"
)

// Collapse rebuilds cg with every group in groups merged into one node:
// each node's replacement atom is chosen by repAtom, self-loops created
// by the merge are dropped, and every
// remaining edge is remapped through the merge. Nodes outside every group
// pass through unchanged. Used by stage 4 (ElimCycles) after collapsing
// each non-trivial SCC to a representative via unify.Equate.
func Collapse(cg *ConstraintGraph, groups [][]string, repAtom func(group []string) hmtype.Atom) *ConstraintGraph {
	replacement := make(map[string]string, len(cg.atoms))
	newAtoms := make(map[string]hmtype.Atom, len(cg.atoms))

	grouped := make(map[string]bool)
	for _, group := range groups {
		rep := repAtom(group)
		repID := rep.String()
		newAtoms[repID] = rep
		for _, id := range group {
			replacement[id] = repID
			grouped[id] = true
		}
	}
	for id, a := range cg.atoms {
		if grouped[id] {
			continue
		}
		replacement[id] = id
		newAtoms[id] = a
	}

	out := &ConstraintGraph{g: core.NewGraph(true, false), atoms: newAtoms}
	for id, a := range newAtoms {
		out.g.AddVertex(&core.Vertex{ID: id, Metadata: map[string]interface{}{nodeMetaKey: a}})
	}
	for _, e := range cg.Edges() {
		u, v := replacement[e[0]], replacement[e[1]]
		if u == v {
			continue
		}
		out.g.AddEdge(u, v, 0)
	}
	return out
}
