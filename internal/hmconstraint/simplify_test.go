package hmconstraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
)

func fnLattice(t *testing.T) *oracle.LatticeOracle {
	t.Helper()
	lo, err := oracle.NewLatticeOracle(oracle.LatticeSpec{
		Bases: []string{"Int", "Num"},
		Edges: []oracle.LatticeEdge{{Lower: "Int", Upper: "Num"}},
		Constructors: map[string][]string{
			"Fn": {"contra", "co"},
		},
	})
	require.NoError(t, err)
	return lo
}

func TestSimplifyEqualityResolvesImmediately(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	cs := []Constraint{NewEq(hmtype.Var{ID: 1}, hmtype.BaseAtom{Base: "Int"})}
	res, err := Simplify(cs, lo, alloc)
	require.NoError(t, err)
	assert.Empty(t, res.Atomics)
	assert.Equal(t, hmtype.BaseAtom{Base: "Int"}, res.Subst[1])
}

func TestSimplifyBaseBaseSatisfiedIsDiscarded(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	cs := []Constraint{NewSub(hmtype.BaseAtom{Base: "Int"}, hmtype.BaseAtom{Base: "Num"})}
	res, err := Simplify(cs, lo, alloc)
	require.NoError(t, err)
	assert.Empty(t, res.Atomics)
}

func TestSimplifyBaseBaseUnsatisfiedFails(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	cs := []Constraint{NewSub(hmtype.BaseAtom{Base: "Num"}, hmtype.BaseAtom{Base: "Int"})}
	_, err := Simplify(cs, lo, alloc)
	assert.Error(t, err)
}

func TestSimplifyConstructorDecomposesWithVariance(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	// Fn<Num, Int> <: Fn<Int, Num>: arg 0 is contravariant (Int <: Num),
	// arg 1 is covariant (Int <: Num) -- both should hold.
	l := hmtype.Cons{Ctor: "Fn", Args: []hmtype.Type{hmtype.BaseAtom{Base: "Num"}, hmtype.BaseAtom{Base: "Int"}}}
	r := hmtype.Cons{Ctor: "Fn", Args: []hmtype.Type{hmtype.BaseAtom{Base: "Int"}, hmtype.BaseAtom{Base: "Num"}}}
	res, err := Simplify([]Constraint{NewSub(l, r)}, lo, alloc)
	require.NoError(t, err)
	assert.Empty(t, res.Atomics)
}

func TestSimplifyConstructorMismatchFails(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	l := hmtype.Cons{Ctor: "Fn", Args: []hmtype.Type{hmtype.BaseAtom{Base: "Int"}, hmtype.BaseAtom{Base: "Int"}}}
	r := hmtype.Cons{Ctor: "List", Args: []hmtype.Type{hmtype.BaseAtom{Base: "Int"}}}
	_, err := Simplify([]Constraint{NewSub(l, r)}, lo, alloc)
	assert.Error(t, err)
}

func TestSimplifyVarConstructorExpandsWithFreshVars(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocatorFrom([]hmtype.VarID{1})
	target := hmtype.Cons{Ctor: "Fn", Args: []hmtype.Type{hmtype.BaseAtom{Base: "Int"}, hmtype.BaseAtom{Base: "Int"}}}
	cs := []Constraint{NewSub(hmtype.Var{ID: 1}, target)}
	res, err := Simplify(cs, lo, alloc)
	require.NoError(t, err)
	// alpha=1 must be bound to Fn<fresh1, fresh2>, and the expansion
	// produces two new atomic pairs (one per arg, direction per variance).
	bound, ok := res.Subst[1].(hmtype.Cons)
	require.True(t, ok)
	assert.Equal(t, "Fn", bound.Ctor)
	assert.Len(t, bound.Args, 2)
	assert.Len(t, res.Atomics, 2)
}

func TestSimplifyVariablePairSurvivesAsAtomic(t *testing.T) {
	lo := fnLattice(t)
	alloc := hmtype.NewAllocator()
	cs := []Constraint{NewSub(hmtype.Var{ID: 1}, hmtype.Var{ID: 2})}
	res, err := Simplify(cs, lo, alloc)
	require.NoError(t, err)
	require.Len(t, res.Atomics, 1)
	assert.Equal(t, hmtype.Var{ID: 1}, res.Atomics[0].Lower)
	assert.Equal(t, hmtype.Var{ID: 2}, res.Atomics[0].Upper)
}
