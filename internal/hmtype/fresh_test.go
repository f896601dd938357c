package hmtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatorFreshIsDistinct(t *testing.T) {
	a := NewAllocator()
	seen := make(map[VarID]bool)
	for i := 0; i < 100; i++ {
		v := a.Fresh()
		assert.False(t, seen[v], "Fresh produced a repeat: %d", v)
		seen[v] = true
	}
}

func TestNewAllocatorFromAvoidsCollision(t *testing.T) {
	seed := []VarID{5, 2, 9}
	a := NewAllocatorFrom(seed)
	for i := 0; i < 5; i++ {
		v := a.Fresh()
		assert.Greater(t, int64(v), int64(9))
	}
}

func TestCollectFreeVarsAcrossMultipleTypes(t *testing.T) {
	t1 := Var{ID: 1}
	t2 := Cons{Ctor: "List", Args: []Type{Var{ID: 2}, Var{ID: 1}}}
	got := CollectFreeVars(t1, t2)
	assert.Equal(t, []VarID{1, 2}, got)
}
