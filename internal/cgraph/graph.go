// Package cgraph builds the directed constraint graph on top of
// github.com/katalvlaran/lvlath's core.Graph, and implements the two
// graph-theoretic passes the solver needs on it: strongly connected
// component collapse (internal/cgraph/scc.go) and weakly connected
// component collapse (internal/cgraph/wcc.go). lvlath ships neither
// algorithm (it is a general-purpose graph library, not a type-solver
// one), so both are hand-written here in the doc/style conventions of its
// graph/algorithms package.
package cgraph

import (
	"sort"

	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/funvibe/hmcoerce/internal/hmconstraint"
	"github.com/funvibe/hmcoerce/internal/hmtype"
)

// nodeMetaKey is the core.Vertex.Metadata key under which the original
// typed Atom is stashed; core.Graph only knows string vertex IDs.
const nodeMetaKey = "atom"

// ConstraintGraph is the constraint graph over simplified atomic pairs:
// one node per atom, one directed edge lower -> upper per pair. It wraps
// a *core.Graph for storage and traversal, keyed by Atom.String(), and
// keeps a side table to recover the typed Atom for a node ID (core.Graph's
// Metadata is an untyped map[string]interface{}).
type ConstraintGraph struct {
	g     *core.Graph
	atoms map[string]hmtype.Atom
}

// BuildGraph constructs the constraint graph from stage 2's atomic pairs:
// a node per distinct atom, a directed edge lower -> upper per pair.
func BuildGraph(atomics []hmconstraint.Atomic) *ConstraintGraph {
	cg := &ConstraintGraph{
		g:     core.NewGraph(true, false),
		atoms: make(map[string]hmtype.Atom),
	}
	for _, a := range atomics {
		cg.addNode(a.Lower)
		cg.addNode(a.Upper)
		cg.g.AddEdge(a.Lower.String(), a.Upper.String(), 0)
	}
	return cg
}

func (cg *ConstraintGraph) addNode(a hmtype.Atom) {
	id := a.String()
	if _, ok := cg.atoms[id]; ok {
		return
	}
	cg.atoms[id] = a
	cg.g.AddVertex(&core.Vertex{ID: id, Metadata: map[string]interface{}{nodeMetaKey: a}})
}

// NodeIDs returns every node ID (Atom.String()) in the graph, sorted so
// that callers iterating it (SolveGraph's bound-resolution pass in
// particular) get a stable, reproducible order across runs over the same
// input regardless of Go's randomized map iteration.
func (cg *ConstraintGraph) NodeIDs() []string {
	out := make([]string, 0, len(cg.atoms))
	for id := range cg.atoms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Atom recovers the typed Atom behind a node ID.
func (cg *ConstraintGraph) Atom(id string) hmtype.Atom {
	return cg.atoms[id]
}

// Succ returns the node IDs reachable via one outgoing edge from id (i.e.
// the upper bounds directly above id).
func (cg *ConstraintGraph) Succ(id string) []string {
	nbrs := cg.g.Neighbors(id)
	out := make([]string, len(nbrs))
	for i, v := range nbrs {
		out[i] = v.ID
	}
	return out
}

// Pred returns the node IDs with an edge into id (i.e. the lower bounds
// directly below id). core.Graph only exposes forward adjacency, so this
// walks every edge once.
func (cg *ConstraintGraph) Pred(id string) []string {
	var out []string
	for from, nbrs := range cg.g.AdjacencyList() {
		if len(nbrs[id]) > 0 {
			out = append(out, from)
		}
	}
	return out
}

// Edges returns every (lower, upper) node ID pair.
func (cg *ConstraintGraph) Edges() [][2]string {
	var out [][2]string
	for _, e := range cg.g.Edges() {
		out = append(out, [2]string{e.From.ID, e.To.ID})
	}
	return out
}
