// Package unify implements first-order unification (with occurs check) and
// weak unification over the hmtype algebra, plus Equate, the n-ary unifier
// used to collapse a strongly connected component to one representative.
// Trimmed to the solver's three type shapes (Var, BaseAtom, Cons) rather
// than a full type-expression zoo.
package unify

import (
	"fmt"

	"github.com/funvibe/hmcoerce/internal/hmtype"
)

// Equation is one equality obligation fed to Unify/WeakUnify.
type Equation struct {
	Left, Right hmtype.Type
}

// Unify finds a substitution making t1 and t2 syntactically equal,
// performing the occurs check. It has no notion of subtyping: callers
// wanting the subtype-direction-erased relaxation use WeakUnify instead.
func Unify(t1, t2 hmtype.Type) (hmtype.Subst, error) {
	return unifyInternal(t1, t2, nil)
}

// UnifyAll solves a batch of equations with one accumulated substitution,
// applying each equation's current substitution before unifying (so later
// equations see earlier bindings), matching the accumulation idiom used by
// Simplify's worklist (internal/hmconstraint).
func UnifyAll(eqs []Equation) (hmtype.Subst, error) {
	acc := hmtype.Subst{}
	for _, eq := range eqs {
		l := eq.Left.Apply(acc)
		r := eq.Right.Apply(acc)
		s, err := Unify(l, r)
		if err != nil {
			return nil, err
		}
		acc = acc.Compose(s)
	}
	return acc, nil
}

// WeakUnify treats every equation the same way Unify does: it exists as a
// distinct name because stage 1 calls it on the subtype-direction-erased
// relaxation of the constraint list (every Sub(a,b) treated as Eq(a,b))
// and the distinction matters to callers even though the underlying
// algorithm is identical — structure, not direction, is all that bears on
// whether a unifier exists.
func WeakUnify(eqs []Equation) (hmtype.Subst, error) {
	return UnifyAll(eqs)
}

// Equate unifies an arbitrary list of types against a common
// representative, used by stage 4 to collapse a cycle's atoms. An empty
// list is a programming error (a strongly connected component always has
// at least one node); a singleton list trivially succeeds.
func Equate(ts []hmtype.Type) (hmtype.Subst, error) {
	if len(ts) == 0 {
		panic("unify: Equate called with no types")
	}
	acc := hmtype.Subst{}
	repr := ts[0]
	for _, t := range ts[1:] {
		l := repr.Apply(acc)
		r := t.Apply(acc)
		s, err := Unify(l, r)
		if err != nil {
			return nil, err
		}
		acc = acc.Compose(s)
	}
	return acc, nil
}

// typePair records a (t1, t2) comparison in flight, for the co-inductive
// cycle guard: a constructor can legitimately be recursive (e.g. a type
// alias unfolding to itself), so re-encountering the same pair mid-unify
// is success, not infinite descent.
type typePair struct {
	t1, t2 hmtype.Type
}

func unifyInternal(t1, t2 hmtype.Type, visited []typePair) (hmtype.Subst, error) {
	for _, p := range visited {
		if typesEqual(p.t1, t1) && typesEqual(p.t2, t2) {
			return hmtype.Subst{}, nil
		}
	}
	visited = append(visited, typePair{t1, t2})

	if typesEqual(t1, t2) {
		return hmtype.Subst{}, nil
	}

	switch l := t1.(type) {
	case hmtype.Var:
		return Bind(l, t2)
	case hmtype.BaseAtom:
		switch r := t2.(type) {
		case hmtype.Var:
			return Bind(r, t1)
		case hmtype.BaseAtom:
			if l.Base == r.Base {
				return hmtype.Subst{}, nil
			}
			return nil, fmt.Errorf("base type mismatch: %s vs %s", l.Base, r.Base)
		default:
			return nil, fmt.Errorf("cannot unify base type %s with %s", l, t2)
		}
	case hmtype.Cons:
		switch r := t2.(type) {
		case hmtype.Var:
			return Bind(r, t1)
		case hmtype.Cons:
			if l.Ctor != r.Ctor {
				return nil, fmt.Errorf("constructor mismatch: %s vs %s", l.Ctor, r.Ctor)
			}
			if len(l.Args) != len(r.Args) {
				return nil, fmt.Errorf("constructor %s arity mismatch: %d vs %d", l.Ctor, len(l.Args), len(r.Args))
			}
			acc := hmtype.Subst{}
			for i := range l.Args {
				a1 := l.Args[i].Apply(acc)
				a2 := r.Args[i].Apply(acc)
				s, err := unifyInternal(a1, a2, visited)
				if err != nil {
					return nil, fmt.Errorf("%s argument %d: %w", l.Ctor, i, err)
				}
				acc = acc.Compose(s)
			}
			return acc, nil
		default:
			return nil, fmt.Errorf("cannot unify constructor %s with %s", l.Ctor, t2)
		}
	default:
		return nil, fmt.Errorf("unknown type shape: %T", t1)
	}
}

func typesEqual(t1, t2 hmtype.Type) bool {
	switch a := t1.(type) {
	case hmtype.Var:
		b, ok := t2.(hmtype.Var)
		return ok && a.ID == b.ID
	case hmtype.BaseAtom:
		b, ok := t2.(hmtype.BaseAtom)
		return ok && a.Base == b.Base
	case hmtype.Cons:
		b, ok := t2.(hmtype.Cons)
		if !ok || a.Ctor != b.Ctor || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !typesEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Bind binds a type variable to a type, performing the occurs check.
func Bind(tv hmtype.Var, t hmtype.Type) (hmtype.Subst, error) {
	if rv, ok := t.(hmtype.Var); ok && rv.ID == tv.ID {
		return hmtype.Subst{}, nil
	}
	if OccursCheck(tv, t) {
		return nil, fmt.Errorf("infinite type: %s occurs in %s", tv, t)
	}
	return hmtype.Subst{tv.ID: t}, nil
}

// OccursCheck reports whether tv appears free in t.
func OccursCheck(tv hmtype.Var, t hmtype.Type) bool {
	for _, v := range t.FreeVars() {
		if v == tv.ID {
			return true
		}
	}
	return false
}
