package oracle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LatticeSpec is the YAML shape of a base-type lattice and constructor
// variance table, the reference Oracle instance this repository ships. A
// real caller (the parser/elaborator that emits constraints) would
// typically supply a purpose-built Oracle instead; this one exists so the
// pipeline can be exercised end-to-end from a file.
type LatticeSpec struct {
	// Bases lists every base type name in the lattice.
	Bases []string `yaml:"bases"`

	// Edges are direct `a <=_B b` facts; IsSub computes the reflexive-
	// transitive closure of these at load time.
	Edges []LatticeEdge `yaml:"edges"`

	// Constructors maps a constructor name to its positional variance.
	Constructors map[string][]string `yaml:"constructors"`
}

// LatticeEdge is one `Lower <=_B Upper` fact.
type LatticeEdge struct {
	Lower string `yaml:"lower"`
	Upper string `yaml:"upper"`
}

// LatticeOracle is a concrete Oracle backed by an explicit finite lattice
// and variance table, loaded from YAML.
type LatticeOracle struct {
	bases   map[string]bool
	below   map[string]map[string]bool // below[b] = {a : a <=_B b} including b itself
	above   map[string]map[string]bool // above[a] = {b : a <=_B b} including a itself
	variance map[string][]Variance
}

// LoadLatticeFile reads and parses a lattice YAML file from disk.
func LoadLatticeFile(path string) (*LatticeOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lattice %s: %w", path, err)
	}
	return ParseLattice(data)
}

// ParseLattice builds a LatticeOracle from YAML bytes.
func ParseLattice(data []byte) (*LatticeOracle, error) {
	var spec LatticeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing lattice: %w", err)
	}
	return NewLatticeOracle(spec)
}

// NewLatticeOracle builds the reflexive-transitive closure of spec.Edges
// and the variance table from spec.Constructors.
func NewLatticeOracle(spec LatticeSpec) (*LatticeOracle, error) {
	lo := &LatticeOracle{
		bases:    make(map[string]bool, len(spec.Bases)),
		below:    make(map[string]map[string]bool),
		above:    make(map[string]map[string]bool),
		variance: make(map[string][]Variance, len(spec.Constructors)),
	}
	for _, b := range spec.Bases {
		lo.bases[b] = true
		lo.below[b] = map[string]bool{b: true}
		lo.above[b] = map[string]bool{b: true}
	}
	for _, e := range spec.Edges {
		if !lo.bases[e.Lower] || !lo.bases[e.Upper] {
			return nil, fmt.Errorf("lattice edge %s <= %s references an undeclared base type", e.Lower, e.Upper)
		}
		lo.above[e.Lower][e.Upper] = true
		lo.below[e.Upper][e.Lower] = true
	}
	// Reflexive-transitive closure (Floyd–Warshall style; the lattice is
	// expected to be small — base-type universes in practice are dozens,
	// not thousands, of atoms).
	for k := range lo.bases {
		for i := range lo.bases {
			if !lo.above[i][k] {
				continue
			}
			for j := range lo.bases {
				if lo.above[k][j] {
					lo.above[i][j] = true
					lo.below[j][i] = true
				}
			}
		}
	}
	for ctor, names := range spec.Constructors {
		vs := make([]Variance, len(names))
		for i, n := range names {
			switch n {
			case "co", "covariant", "+":
				vs[i] = Co
			case "contra", "contravariant", "-":
				vs[i] = Contra
			default:
				return nil, fmt.Errorf("constructor %s position %d: unknown variance %q", ctor, i, n)
			}
		}
		lo.variance[ctor] = vs
	}
	return lo, nil
}

func (lo *LatticeOracle) Arity(ctor string) ([]Variance, bool) {
	vs, ok := lo.variance[ctor]
	return vs, ok
}

func (lo *LatticeOracle) IsSub(b1, b2 BaseType) bool {
	return lo.above[b1][b2]
}

func (lo *LatticeOracle) Sup(bs []BaseType) (BaseType, bool) {
	return lo.bound(bs, lo.above, true)
}

func (lo *LatticeOracle) Inf(bs []BaseType) (BaseType, bool) {
	return lo.bound(bs, lo.below, false)
}

// bound finds the extremal element of the intersection of dir[b] for every
// b in bs, where dir is `above` (for Sup) or `below` (for Inf). wantLeast
// selects, among the (possibly several) common bounds, the one closest to
// bs itself: the least upper bound when wantLeast is true (Sup), the
// greatest lower bound when false (Inf). If the intersection contains
// incomparable elements with no unique extremum, the bound does not exist
// (the lattice is not required to be total, only to have decidable <=_B).
func (lo *LatticeOracle) bound(bs []BaseType, dir map[string]map[string]bool, wantLeast bool) (BaseType, bool) {
	if len(bs) == 0 {
		return "", false
	}
	candidates := make(map[string]bool)
	for c := range dir[bs[0]] {
		candidates[c] = true
	}
	for _, b := range bs[1:] {
		for c := range candidates {
			if !dir[b][c] {
				delete(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	var best string
	found := false
	for c := range candidates {
		if !found {
			best, found = c, true
			continue
		}
		// Narrow towards the extremal candidate: for Sup (wantLeast) prefer
		// c when c <=_B best (c is lower, i.e. closer to bs); for Inf prefer
		// c when best <=_B c (c is higher, i.e. closer to bs).
		if wantLeast {
			if lo.above[c][best] && best != c {
				best = c
			}
		} else {
			if lo.above[best][c] && best != c {
				best = c
			}
		}
	}
	// Verify best is genuinely extremal: for Sup, best must sit below every
	// other candidate (it's the LEAST upper bound); for Inf, best must sit
	// above every other candidate (it's the GREATEST lower bound). This is
	// the mirror image of the narrowing step above, not a repeat of it.
	for c := range candidates {
		if c == best {
			continue
		}
		if wantLeast && !lo.above[best][c] {
			return "", false
		}
		if !wantLeast && !lo.above[c][best] {
			return "", false
		}
	}
	return best, true
}
