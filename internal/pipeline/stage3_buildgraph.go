package pipeline

import "github.com/funvibe/hmcoerce/internal/cgraph"

// BuildGraphStage is stage 3: turn the atomic subtype pairs into the
// constraint graph the remaining stages operate on.
type BuildGraphStage struct{}

func (BuildGraphStage) Process(ctx *SolveContext) *SolveContext {
	ctx.Graph = cgraph.BuildGraph(ctx.Atomics)
	return ctx
}
