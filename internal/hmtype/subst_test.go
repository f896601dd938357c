package hmtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeAppliesLeftThenRight(t *testing.T) {
	v1, v2 := VarID(1), VarID(2)
	s1 := Subst{v1: Var{ID: v2}}
	s2 := Subst{v2: BaseAtom{Base: "Int"}}

	composed := s1.Compose(s2)
	got := Var{ID: v1}.Apply(composed)
	assert.Equal(t, BaseAtom{Base: "Int"}, got)
}

func TestComposeKeepsUnshadowedRightBindings(t *testing.T) {
	s1 := Subst{1: BaseAtom{Base: "Int"}}
	s2 := Subst{2: BaseAtom{Base: "Bool"}}
	composed := s1.Compose(s2)
	require.Len(t, composed, 2)
	assert.Equal(t, BaseAtom{Base: "Int"}, composed[1])
	assert.Equal(t, BaseAtom{Base: "Bool"}, composed[2])
}

func TestIdempotentDetectsChainedBinding(t *testing.T) {
	// 1 -> Var(2): not idempotent since 2 is itself still bound.
	bad := Subst{1: Var{ID: 2}, 2: BaseAtom{Base: "Int"}}
	assert.False(t, Idempotent(bad))

	good := Subst{1: BaseAtom{Base: "Int"}, 2: BaseAtom{Base: "Bool"}}
	assert.True(t, Idempotent(good))
}

func TestIdempotentDetectsSelfReference(t *testing.T) {
	bad := Subst{1: Cons{Ctor: "List", Args: []Type{Var{ID: 1}}}}
	assert.False(t, Idempotent(bad))
}

func TestApplyCycleSafeOnSelfLoop(t *testing.T) {
	// A substitution that (incorrectly) maps a variable to itself must not
	// infinite-loop; Apply should just return the variable.
	s := Subst{1: Var{ID: 1}}
	got := Var{ID: 1}.Apply(s)
	assert.Equal(t, Var{ID: 1}, got)
}

func TestConsApplyRecursesIntoArgs(t *testing.T) {
	c := Cons{Ctor: "Pair", Args: []Type{Var{ID: 1}, Var{ID: 2}}}
	s := Subst{1: BaseAtom{Base: "Int"}, 2: BaseAtom{Base: "Bool"}}
	got := c.Apply(s)
	assert.Equal(t, Cons{Ctor: "Pair", Args: []Type{BaseAtom{Base: "Int"}, BaseAtom{Base: "Bool"}}}, got)
}

func TestFreeVarsDedupsAndSorts(t *testing.T) {
	c := Cons{Ctor: "Triple", Args: []Type{Var{ID: 3}, Var{ID: 1}, Var{ID: 3}}}
	assert.Equal(t, []VarID{1, 3}, c.FreeVars())
}
