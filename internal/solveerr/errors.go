// Package solveerr defines the solver's two-kind error taxonomy. Every
// stage failure is one of NoWeakUnifier or NoUnify; the caller tells them
// apart with errors.As rather than sentinel errors.New values.
package solveerr

import "fmt"

// NoWeakUnifier is returned by stage 1 (WeakUnify) when the equational
// relaxation of the input constraints has no unifier at all: a structural
// clash (different head constructors forced equal) or an occurs-check
// violation. No later stage can recover from this.
type NoWeakUnifier struct {
	// Reason is a short description of the clash (e.g. "head constructor
	// mismatch" or "occurs check").
	Reason string
	// Cause, if non-nil, is the underlying unification failure.
	Cause error
}

func (e *NoWeakUnifier) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no weak unifier: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("no weak unifier: %s", e.Reason)
}

func (e *NoWeakUnifier) Unwrap() error { return e.Cause }

// NewNoWeakUnifier builds a NoWeakUnifier carrying a reason and optional
// underlying cause.
func NewNoWeakUnifier(reason string, cause error) *NoWeakUnifier {
	return &NoWeakUnifier{Reason: reason, Cause: cause}
}

// NoUnify is returned by stage 2 (constructor mismatch, equality failure,
// base/base subtype failure), stage 4 (a cycle's atoms are not
// simultaneously unifiable), or stage 5 (missing or incompatible bounds).
type NoUnify struct {
	// Stage names which pipeline stage raised the error, for diagnostics.
	Stage string
	// Reason is a short description of what failed to unify/bound.
	Reason string
	// Cause, if non-nil, is the underlying failure.
	Cause error
}

func (e *NoUnify) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no unifier (%s): %s: %v", e.Stage, e.Reason, e.Cause)
	}
	return fmt.Sprintf("no unifier (%s): %s", e.Stage, e.Reason)
}

func (e *NoUnify) Unwrap() error { return e.Cause }

// NewNoUnify builds a NoUnify carrying the stage that raised it, a reason,
// and an optional underlying cause.
func NewNoUnify(stage, reason string, cause error) *NoUnify {
	return &NoUnify{Stage: stage, Reason: reason, Cause: cause}
}
