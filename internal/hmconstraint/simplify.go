package hmconstraint

import (
	"fmt"

	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
	"github.com/funvibe/hmcoerce/internal/solveerr"
	"github.com/funvibe/hmcoerce/internal/unify"
)

// SimplifyResult is stage 2's output: the atomic subtype pairs surviving
// reduction, plus the equality substitution accumulated along the way.
type SimplifyResult struct {
	Atomics []Atomic
	Subst   hmtype.Subst
}

// Simplify reduces cs to atomic form by repeatedly applying the
// decomposition/expansion rules below to a worklist until no constraint
// matches any rule. alloc must be seeded (via hmtype.NewAllocatorFrom)
// with every variable free in cs, so constructor-expansion fresh
// variables never collide with a constraint variable.
//
// An atomic pair recorded early in the worklist can be invalidated by an
// equality discovered later (e.g. t1 <: t2 is atomic when t2 is still a
// variable, but a later t2 = Int binding makes it base/base, which needs
// the IsSub check the atomic form skipped). Simplify re-applies each
// round's final substitution to every atomic collected so far and
// requeues any pair that substitution changed, repeating until a round
// changes nothing.
func Simplify(cs []Constraint, o oracle.Oracle, alloc *hmtype.Allocator) (SimplifyResult, error) {
	pending := cs
	thetaTotal := hmtype.Subst{}
	var carried []Atomic

	for {
		atomics, theta, err := reduceOnce(pending, o, alloc)
		if err != nil {
			return SimplifyResult{}, err
		}
		thetaTotal = thetaTotal.Compose(theta)

		// Re-settle every atomic found so far (this round's plus every
		// earlier round's) against the full accumulated substitution: a
		// binding discovered this round can still reach into a pair an
		// earlier round already called atomic (e.g. it names a variable
		// this round just resolved to a base type).
		requeue, stable, err := settleAtomics(append(carried, atomics...), thetaTotal, o)
		if err != nil {
			return SimplifyResult{}, err
		}
		if len(requeue) == 0 {
			return SimplifyResult{Atomics: stable, Subst: thetaTotal}, nil
		}
		carried = stable
		pending = requeue
	}
}

// settleAtomics applies theta to every atomic pair. Pairs still atomic
// (and, if both sides are now base atoms, still satisfying IsSub) are
// returned as settled; everything else is converted back into a Sub
// constraint for another Simplify round.
func settleAtomics(atomics []Atomic, theta hmtype.Subst, o oracle.Oracle) (requeue []Constraint, settled []Atomic, err error) {
	for _, a := range atomics {
		newLower := a.Lower.Apply(theta)
		newUpper := a.Upper.Apply(theta)

		lAtom, lOK := hmtype.AsAtom(newLower)
		rAtom, rOK := hmtype.AsAtom(newUpper)
		if !lOK || !rOK {
			requeue = append(requeue, NewSub(newLower, newUpper))
			continue
		}
		if hmtype.IsBase(lAtom) && hmtype.IsBase(rAtom) {
			b1, _ := oracle.AtomBase(lAtom)
			b2, _ := oracle.AtomBase(rAtom)
			if !o.IsSub(b1, b2) {
				return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("%s is not a subtype of %s", b1, b2), nil)
			}
			continue // satisfied; drop
		}
		settled = append(settled, Atomic{Lower: lAtom, Upper: rAtom})
	}
	return requeue, settled, nil
}

func reduceOnce(cs []Constraint, o oracle.Oracle, alloc *hmtype.Allocator) ([]Atomic, hmtype.Subst, error) {
	worklist := append([]Constraint{}, cs...)
	thetaSimp := hmtype.Subst{}
	var atomics []Atomic

	for len(worklist) > 0 {
		// FIFO: pop the front. Fairness only requires that every
		// simplifiable constraint is eventually picked; FIFO and LIFO both
		// satisfy that over a finite, monotonically-shrinking-or-expanding
		// worklist, since every rule either removes a constraint or
		// replaces it with strictly smaller ones.
		c := worklist[0]
		worklist = worklist[1:]

		switch c.Kind {
		case Eq:
			s, err := unify.Unify(c.Left, c.Right)
			if err != nil {
				return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("cannot unify %s = %s", c.Left, c.Right), err)
			}
			worklist = applyToWorklist(worklist, s)
			thetaSimp = thetaSimp.Compose(s)
			continue
		case Sub:
			// fallthrough to the subtype rules below
		}

		l, lIsAtom := hmtype.AsAtom(c.Left)
		r, rIsAtom := hmtype.AsAtom(c.Right)

		switch {
		case isCons(c.Left) && isCons(c.Right):
			lc, rc := c.Left.(hmtype.Cons), c.Right.(hmtype.Cons)
			if lc.Ctor != rc.Ctor {
				return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("constructor mismatch: %s vs %s", lc.Ctor, rc.Ctor), nil)
			}
			if len(lc.Args) != len(rc.Args) {
				return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("constructor %s arity mismatch: %d vs %d", lc.Ctor, len(lc.Args), len(rc.Args)), nil)
			}
			decomposed := make([]Constraint, len(lc.Args))
			for i := range lc.Args {
				v := oracle.VarianceAt(o, lc.Ctor, i)
				if v == oracle.Contra {
					decomposed[i] = NewSub(rc.Args[i], lc.Args[i])
				} else {
					decomposed[i] = NewSub(lc.Args[i], rc.Args[i])
				}
			}
			worklist = append(decomposed, worklist...)

		case isVarType(c.Left) && isCons(c.Right):
			expanded, binding, err := expandVarToCons(c.Left.(hmtype.Var), c.Right.(hmtype.Cons), o, alloc)
			if err != nil {
				return nil, nil, err
			}
			thetaSimp = thetaSimp.Compose(binding)
			worklist = applyToWorklist(worklist, binding)
			// Re-push the (now Cons<:Cons) constraint so the rule above
			// picks it up: apply the mapping to the current constraint and
			// continue.
			worklist = append([]Constraint{expanded}, worklist...)

		case isCons(c.Left) && isVarType(c.Right):
			expanded, binding, err := expandVarToCons(c.Right.(hmtype.Var), c.Left.(hmtype.Cons), o, alloc)
			if err != nil {
				return nil, nil, err
			}
			thetaSimp = thetaSimp.Compose(binding)
			worklist = applyToWorklist(worklist, binding)
			worklist = append([]Constraint{NewSub(expanded.Right, expanded.Left)}, worklist...)

		case lIsAtom && rIsAtom && hmtype.IsBase(l) && hmtype.IsBase(r):
			b1, _ := oracle.AtomBase(l)
			b2, _ := oracle.AtomBase(r)
			if !o.IsSub(b1, b2) {
				return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("%s is not a subtype of %s", b1, b2), nil)
			}
			// Discard: satisfied.

		case lIsAtom && rIsAtom && (hmtype.IsVar(l) || hmtype.IsVar(r)):
			atomics = append(atomics, Atomic{Lower: l, Upper: r})

		default:
			return nil, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("cannot simplify %s", c), nil)
		}
	}

	return atomics, thetaSimp, nil
}

func isCons(t hmtype.Type) bool {
	_, ok := t.(hmtype.Cons)
	return ok
}

func isVarType(t hmtype.Type) bool {
	_, ok := t.(hmtype.Var)
	return ok
}

func applyToWorklist(worklist []Constraint, s hmtype.Subst) []Constraint {
	if len(s) == 0 {
		return worklist
	}
	out := make([]Constraint, len(worklist))
	for i, c := range worklist {
		out[i] = c.Apply(s)
	}
	return out
}

// expandVarToCons expands a variable constrained against a constructor
// application into a constructor of the same shape built from fresh
// variables: alpha gets bound to Cons(c, [beta_1, ..., beta_n]), and the
// caller substitutes that binding through the constraint being processed
// (returned as `expanded`) and the rest of the worklist.
func expandVarToCons(alpha hmtype.Var, target hmtype.Cons, o oracle.Oracle, alloc *hmtype.Allocator) (Constraint, hmtype.Subst, error) {
	variances, ok := o.Arity(target.Ctor)
	if !ok {
		return Constraint{}, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("unknown constructor %s", target.Ctor), nil)
	}
	arity := len(variances)
	if arity != len(target.Args) {
		return Constraint{}, nil, solveerr.NewNoUnify("Simplify", fmt.Sprintf("constructor %s: oracle arity %d does not match %d arguments", target.Ctor, arity, len(target.Args)), nil)
	}
	args := make([]hmtype.Type, arity)
	for i := 0; i < arity; i++ {
		args[i] = alloc.FreshVar()
	}
	expansion := hmtype.Cons{Ctor: target.Ctor, Args: args}
	binding := hmtype.Subst{alpha.ID: expansion}
	return NewSub(expansion, target), binding, nil
}
