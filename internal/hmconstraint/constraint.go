// Package hmconstraint defines the Constraint type fed into the solver and
// implements stage 2 (Simplify), reducing a constraint set to atomic
// subtype pairs via an iterative worklist.
package hmconstraint

import "github.com/funvibe/hmcoerce/internal/hmtype"

// Kind distinguishes an equality obligation from a subtyping one.
type Kind int

const (
	Eq Kind = iota
	Sub
)

func (k Kind) String() string {
	if k == Sub {
		return "<:"
	}
	return "="
}

// Constraint is either Eq(t1, t2) or Sub(t1, t2) (t1 <: t2).
type Constraint struct {
	Kind        Kind
	Left, Right hmtype.Type
}

// NewEq builds an equality constraint t1 = t2.
func NewEq(t1, t2 hmtype.Type) Constraint { return Constraint{Kind: Eq, Left: t1, Right: t2} }

// NewSub builds a subtype constraint t1 <: t2.
func NewSub(t1, t2 hmtype.Type) Constraint { return Constraint{Kind: Sub, Left: t1, Right: t2} }

func (c Constraint) String() string {
	return c.Left.String() + " " + c.Kind.String() + " " + c.Right.String()
}

// Apply substitutes both sides of a constraint.
func (c Constraint) Apply(s hmtype.Subst) Constraint {
	return Constraint{Kind: c.Kind, Left: c.Left.Apply(s), Right: c.Right.Apply(s)}
}

// Atomic is a simplified subtype pair (a1, a2) meaning a1 <: a2, where at
// least one of a1, a2 is a variable, or both are base atoms related by
// IsSub. It is the output shape of Simplify and the input shape of
// BuildGraph (internal/cgraph).
type Atomic struct {
	Lower, Upper hmtype.Atom
}
