// Package hmtype defines the three-shape type algebra the solver operates
// over (variables, base atoms, constructor applications) together with the
// substitution algebra used to eliminate variables.
package hmtype

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/hmcoerce/internal/config"
)

// Type is the interface implemented by every shape in the algebra.
type Type interface {
	String() string
	Apply(s Subst) Type
	FreeVars() []VarID
}

// VarID is a globally unique type-variable identity, allocated by Allocator.
type VarID int64

// Atom is the sum of Var and BaseAtom: the leaves a ConstraintGraph node can
// be. Both Var and BaseAtom implement it; Cons does not.
type Atom interface {
	Type
	isAtom()
}

// Var is a type variable with a globally unique identity.
type Var struct {
	ID VarID
}

func (v Var) isAtom() {}

func (v Var) String() string {
	if config.ShouldNormalizeNames() {
		return "t?"
	}
	return "t" + strconv.FormatInt(int64(v.ID), 10)
}

func (v Var) Apply(s Subst) Type {
	return applyCycleSafe(v, s, make(map[VarID]bool))
}

func (v Var) FreeVars() []VarID { return []VarID{v.ID} }

// BaseAtom is a ground atom drawn from the caller-supplied lattice. Base
// names are opaque strings from the solver's point of view; the Oracle
// attaches the meaning (partial order, sup, inf).
type BaseAtom struct {
	Base string
}

func (b BaseAtom) isAtom() {}

func (b BaseAtom) String() string { return b.Base }

func (b BaseAtom) Apply(s Subst) Type { return b }

func (b BaseAtom) FreeVars() []VarID { return nil }

// Cons is a constructor applied to ordered type arguments.
type Cons struct {
	Ctor string
	Args []Type
}

func (c Cons) String() string {
	if len(c.Args) == 0 {
		return c.Ctor
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", c.Ctor, strings.Join(parts, ", "))
}

func (c Cons) Apply(s Subst) Type {
	return applyCycleSafe(c, s, make(map[VarID]bool))
}

func (c Cons) FreeVars() []VarID {
	vars := []VarID{}
	for _, a := range c.Args {
		vars = append(vars, a.FreeVars()...)
	}
	return uniqueVarIDs(vars)
}

// IsVar reports whether an Atom is a type variable.
func IsVar(a Atom) bool {
	_, ok := a.(Var)
	return ok
}

// IsBase reports whether an Atom is a ground base type.
func IsBase(a Atom) bool {
	_, ok := a.(BaseAtom)
	return ok
}

// AsAtom narrows a Type down to Atom when it is a Var or BaseAtom.
func AsAtom(t Type) (Atom, bool) {
	switch v := t.(type) {
	case Var:
		return v, true
	case BaseAtom:
		return v, true
	default:
		return nil, false
	}
}

// applyCycleSafe applies a substitution, refusing to loop on a substitution
// whose range cyclically mentions a variable already being expanded. Stage
// 4 (ElimCycles) is the only stage expected to introduce such chains
// transiently, and it resolves them to representatives before this would
// ever be exercised on a final answer; this function is the defensive
// backstop for that case.
func applyCycleSafe(t Type, s Subst, visited map[VarID]bool) Type {
	switch typ := t.(type) {
	case Var:
		if visited[typ.ID] {
			return typ
		}
		replacement, ok := s[typ.ID]
		if !ok {
			return typ
		}
		if rv, ok := replacement.(Var); ok && rv.ID == typ.ID {
			return typ
		}
		next := make(map[VarID]bool, len(visited)+1)
		for k, v := range visited {
			next[k] = v
		}
		next[typ.ID] = true
		return applyCycleSafe(replacement, s, next)
	case BaseAtom:
		return typ
	case Cons:
		newArgs := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			newArgs[i] = applyCycleSafe(a, s, visited)
		}
		return Cons{Ctor: typ.Ctor, Args: newArgs}
	default:
		return t.Apply(s)
	}
}

func uniqueVarIDs(vars []VarID) []VarID {
	seen := make(map[VarID]bool, len(vars))
	out := make([]VarID, 0, len(vars))
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
