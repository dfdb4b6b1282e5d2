// Package pipeline runs the checking stages over one compilation unit:
// seal the table, verify declared conformances, validate generic call
// sites, validate for-loop targets.
package pipeline

import (
	"github.com/tablelang/tablec/internal/conformance"
	"github.com/tablelang/tablec/internal/loader"
	"github.com/tablelang/tablec/internal/symbols"
	"github.com/tablelang/tablec/internal/typesystem"
)

// CallResult is a validated generic instantiation: the substitution is
// what the code generation stage consumes.
type CallResult struct {
	Site  loader.CallSite
	Subst conformance.Subst
}

// LoopResult is a validated for-loop target and its element type.
type LoopResult struct {
	Site loader.LoopSite
	Elem typesystem.TypeRef
}

// Context carries one unit's state through the stages.
type Context struct {
	Table    *symbols.DeclTable
	Resolver *conformance.Resolver

	Calls []loader.CallSite
	Loops []loader.LoopSite

	CallResults []CallResult
	LoopResults []LoopResult
	Diagnostics []error
}

func NewContext(table *symbols.DeclTable) *Context {
	return &Context{Table: table}
}

// Processor is one checking stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default is the full checking pipeline in its canonical order.
func Default() *Pipeline {
	return New(SealStage{}, VerifyImplementsStage{}, CallSiteStage{}, LoopStage{})
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so a consumer gets the diagnostics from
		// every stage, not just the first failing one.
	}
	return ctx
}
