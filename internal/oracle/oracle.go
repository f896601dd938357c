// Package oracle defines the type-structure oracle the solver consumes as
// an external collaborator: constructor arity/variance, the base-type
// partial order, and sup/inf over finite sets of base atoms.
package oracle

import "github.com/funvibe/hmcoerce/internal/hmtype"

// Variance is the per-position polarity controlling whether subtyping
// recurses in the same (Co) or reversed (Contra) direction through a
// constructor argument.
type Variance int

const (
	Co Variance = iota
	Contra
)

func (v Variance) String() string {
	if v == Contra {
		return "contra"
	}
	return "co"
}

// BaseType is a ground atom name from the caller-supplied lattice. The
// solver never interprets these strings; only the Oracle does.
type BaseType = string

// Oracle supplies everything the pipeline needs about the type structure
// that isn't itself a variable: constructor shapes and the base-type
// lattice. Implementations must keep IsSub reflexive and transitive — the
// pipeline's correctness depends on it.
type Oracle interface {
	// Arity returns the positional variance list for a constructor. Its
	// length is the constructor's arity.
	Arity(ctor string) ([]Variance, bool)

	// IsSub reports whether b1 <=_B b2 in the base-type lattice.
	IsSub(b1, b2 BaseType) bool

	// Sup returns the least upper bound of a non-empty set of base atoms,
	// or ok=false if none exists in the lattice.
	Sup(bs []BaseType) (BaseType, bool)

	// Inf returns the greatest lower bound of a non-empty set of base
	// atoms, or ok=false if none exists in the lattice.
	Inf(bs []BaseType) (BaseType, bool)
}

// VarianceAt returns the variance for argument position i of ctor, via the
// Oracle, defaulting to Co when the oracle has no opinion: an unknown
// constructor is treated as fully covariant.
func VarianceAt(o Oracle, ctor string, i int) Variance {
	vs, ok := o.Arity(ctor)
	if !ok || i >= len(vs) {
		return Co
	}
	return vs[i]
}

// AtomBase extracts the BaseType carried by an Atom, if it is a BaseAtom.
func AtomBase(a hmtype.Atom) (BaseType, bool) {
	b, ok := a.(hmtype.BaseAtom)
	if !ok {
		return "", false
	}
	return b.Base, true
}
