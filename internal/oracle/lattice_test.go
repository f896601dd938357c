package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numLattice(t *testing.T) *LatticeOracle {
	t.Helper()
	lo, err := NewLatticeOracle(LatticeSpec{
		Bases: []string{"Int", "Float", "Num", "Bool"},
		Edges: []LatticeEdge{
			{Lower: "Int", Upper: "Num"},
			{Lower: "Float", Upper: "Num"},
		},
		Constructors: map[string][]string{
			"Fn":   {"contra", "co"},
			"List": {"co"},
		},
	})
	require.NoError(t, err)
	return lo
}

func TestIsSubReflexiveAndTransitive(t *testing.T) {
	lo := numLattice(t)
	assert.True(t, lo.IsSub("Int", "Int"))
	assert.True(t, lo.IsSub("Int", "Num"))
	assert.False(t, lo.IsSub("Num", "Int"))
	assert.False(t, lo.IsSub("Bool", "Num"))
}

func TestSupOfComparablePair(t *testing.T) {
	lo := numLattice(t)
	got, ok := lo.Sup([]string{"Int", "Float"})
	require.True(t, ok)
	assert.Equal(t, "Num", got)
}

func TestSupOfIncomparablePairWithoutCommonBoundFails(t *testing.T) {
	lo := numLattice(t)
	_, ok := lo.Sup([]string{"Int", "Bool"})
	assert.False(t, ok)
}

func TestInfOfSingleElementIsItself(t *testing.T) {
	lo := numLattice(t)
	got, ok := lo.Inf([]string{"Int"})
	require.True(t, ok)
	assert.Equal(t, "Int", got)
}

func TestArityReturnsDeclaredVariance(t *testing.T) {
	lo := numLattice(t)
	vs, ok := lo.Arity("Fn")
	require.True(t, ok)
	require.Len(t, vs, 2)
	assert.Equal(t, Contra, vs[0])
	assert.Equal(t, Co, vs[1])
}

func TestArityUnknownConstructor(t *testing.T) {
	lo := numLattice(t)
	_, ok := lo.Arity("Nope")
	assert.False(t, ok)
}

func TestParseLatticeFromYAML(t *testing.T) {
	data := []byte(`
bases: [Int, Num]
edges:
  - lower: Int
    upper: Num
constructors:
  List: ["+"]
`)
	lo, err := ParseLattice(data)
	require.NoError(t, err)
	assert.True(t, lo.IsSub("Int", "Num"))
	vs, ok := lo.Arity("List")
	require.True(t, ok)
	assert.Equal(t, []Variance{Co}, vs)
}

func TestNewLatticeOracleRejectsUndeclaredBase(t *testing.T) {
	_, err := NewLatticeOracle(LatticeSpec{
		Bases: []string{"Int"},
		Edges: []LatticeEdge{{Lower: "Int", Upper: "Ghost"}},
	})
	assert.Error(t, err)
}

func TestVarianceAtDefaultsToCovariant(t *testing.T) {
	lo := numLattice(t)
	assert.Equal(t, Co, VarianceAt(lo, "Unknown", 0))
	assert.Equal(t, Contra, VarianceAt(lo, "Fn", 0))
}
