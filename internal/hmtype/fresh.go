package hmtype

import "sync/atomic"

// Allocator hands out fresh VarIDs guaranteed distinct from every VarID it
// has already produced, and from any starting watermark supplied by
// NewAllocatorFrom. Each call to pipeline.Solve constructs its own
// Allocator: fresh identities are drawn from a monotonic counter local to
// the invocation, as long as freshness holds against every variable
// visible in the input.
type Allocator struct {
	next int64
}

// NewAllocator returns an Allocator starting from VarID 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// NewAllocatorFrom returns an Allocator guaranteed to never hand out any of
// the VarIDs already present in seen, by starting one past the maximum.
func NewAllocatorFrom(seen []VarID) *Allocator {
	var max int64
	for _, v := range seen {
		if int64(v) > max {
			max = int64(v)
		}
	}
	return &Allocator{next: max + 1}
}

// Fresh returns a new, never-before-issued VarID.
func (a *Allocator) Fresh() VarID {
	return VarID(atomic.AddInt64(&a.next, 1) - 1)
}

// FreshVar is a convenience wrapper returning a Var wrapping a fresh VarID.
func (a *Allocator) FreshVar() Var {
	return Var{ID: a.Fresh()}
}

// CollectFreeVars gathers every VarID mentioned across a set of types,
// used to seed NewAllocatorFrom: the simplifier scans the initial
// constraint set for free variables before entering the worklist loop.
func CollectFreeVars(ts ...Type) []VarID {
	var out []VarID
	for _, t := range ts {
		out = append(out, t.FreeVars()...)
	}
	return uniqueVarIDs(out)
}
