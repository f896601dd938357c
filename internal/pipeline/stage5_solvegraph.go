package pipeline

import (
	"fmt"

	"github.com/funvibe/hmcoerce/internal/hmtype"
	"github.com/funvibe/hmcoerce/internal/oracle"
	"github.com/funvibe/hmcoerce/internal/solveerr"
)

// SolveGraphStage is stage 5: assign every remaining type variable a
// concrete base type by combining its lower bounds (the base atoms
// reachable below it) via Oracle.Sup and its upper bounds (the base atoms
// reachable above it) via Oracle.Inf. A variable with no base bound on
// either side is left unresolved — it is genuinely unconstrained and
// stays polymorphic. When both a lower and an upper bound exist and
// disagree, the lower bound wins: the tightest type that still satisfies
// every use, matching ordinary subtyping's intuition.
type SolveGraphStage struct{}

func (SolveGraphStage) Process(ctx *SolveContext) *SolveContext {
	g := ctx.CondensedGraph
	resolved := make(map[string]oracle.BaseType)
	for _, id := range g.NodeIDs() {
		if b, ok := oracle.AtomBase(g.Atom(id)); ok {
			resolved[id] = b
		}
	}

	ids := g.NodeIDs()
	for pass := 0; pass < len(ids)+1; pass++ {
		changed := false
		for _, id := range ids {
			if _, ok := resolved[id]; ok {
				continue
			}
			if !hmtype.IsVar(g.Atom(id)) {
				continue
			}

			lowers := baseBoundsOf(g.Pred(id), resolved)
			uppers := baseBoundsOf(g.Succ(id), resolved)

			var lb, ub oracle.BaseType
			var haveLB, haveUB bool
			if len(lowers) > 0 {
				lb, haveLB = ctx.Oracle.Sup(lowers)
				if !haveLB {
					return Fail(ctx, solveerr.NewNoUnify("SolveGraph", fmt.Sprintf("%s: lower bounds %v have no least upper bound", id, lowers), nil))
				}
			}
			if len(uppers) > 0 {
				ub, haveUB = ctx.Oracle.Inf(uppers)
				if !haveUB {
					return Fail(ctx, solveerr.NewNoUnify("SolveGraph", fmt.Sprintf("%s: upper bounds %v have no greatest lower bound", id, uppers), nil))
				}
			}

			switch {
			case haveLB && haveUB:
				if lb != ub && !ctx.Oracle.IsSub(lb, ub) {
					return Fail(ctx, solveerr.NewNoUnify("SolveGraph", fmt.Sprintf("%s: lower bound %s exceeds upper bound %s", id, lb, ub), nil))
				}
				resolved[id] = lb
				changed = true
			case haveLB:
				resolved[id] = lb
				changed = true
			case haveUB:
				resolved[id] = ub
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	theta := hmtype.Subst{}
	for _, id := range ids {
		v, ok := g.Atom(id).(hmtype.Var)
		if !ok {
			continue
		}
		if b, ok := resolved[id]; ok {
			theta[v.ID] = hmtype.BaseAtom{Base: b}
		}
	}
	ctx.ThetaSol = theta
	return ctx
}

func baseBoundsOf(ids []string, resolved map[string]oracle.BaseType) []oracle.BaseType {
	var out []oracle.BaseType
	seen := make(map[oracle.BaseType]bool)
	for _, id := range ids {
		b, ok := resolved[id]
		if !ok || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
