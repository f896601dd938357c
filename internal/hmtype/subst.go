package hmtype

// Subst is a finite mapping from variable identities to types. A Subst
// built exclusively through Bind (internal/unify) and Compose maintains the
// invariant that no variable in its range occurs in its domain (idempotence
// post-composition): Apply(Apply(s, t)) == Apply(s, t) for every t.
type Subst map[VarID]Type

// Compose returns the substitution equivalent to first applying s, then
// applying next. That is, Compose(s, next).Apply(t) == next.Apply(s.Apply(t)).
// Accumulating substitutions forward through the pipeline reads as
// `acc = acc.Compose(step)`.
func (s Subst) Compose(next Subst) Subst {
	out := make(Subst, len(s)+len(next))
	for k, v := range s {
		out[k] = v.Apply(next)
	}
	for k, v := range next {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// ApplyToAll applies s to every type in ts, returning a new slice.
func ApplyToAll(s Subst, ts []Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = t.Apply(s)
	}
	return out
}

// FromAtom embeds a variable-to-atom mapping (as produced by stage 5,
// SolveGraph) into a full Subst by wrapping each Atom as a Type.
func FromAtom(m map[VarID]Atom) Subst {
	out := make(Subst, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Idempotent reports whether applying s to its own range changes nothing,
// i.e. no variable in s's domain occurs free in s's range. Used by tests
// to check the invariant every Subst the pipeline returns must hold.
func Idempotent(s Subst) bool {
	for k, v := range s {
		for _, fv := range v.FreeVars() {
			if fv == k {
				return false
			}
			if _, stillBound := s[fv]; stillBound {
				return false
			}
		}
	}
	return true
}
