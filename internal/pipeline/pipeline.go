// Package pipeline runs the six ordered stages (WeakUnify, Simplify,
// BuildGraph, ElimCycles, SolveGraph, UnifyWCC) over a shared SolveContext.
// Run stops at the first stage error instead of continuing to collect
// diagnostics from every stage — the solver's error taxonomy is "the first
// thing that went wrong", not an accumulated diagnostic list.
package pipeline

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *SolveContext) *SolveContext
}

// Pipeline runs a fixed, ordered sequence of stages.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from stages in execution order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes each stage in order, stopping as soon as one reports an
// error on the context.
func (p *Pipeline) Run(initial *SolveContext) *SolveContext {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
		if ctx.Err != nil {
			return ctx
		}
	}
	return ctx
}

// Fail records err on ctx and returns it, the idiom every stage uses to
// bail out of Process early.
func Fail(ctx *SolveContext, err error) *SolveContext {
	ctx.Err = err
	return ctx
}
