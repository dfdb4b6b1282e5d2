package pipeline

import (
	"sort"

	"github.com/tablelang/tablec/internal/conformance"
)

// SealStage ends the collection phase and attaches the unit's resolver.
type SealStage struct{}

func (SealStage) Process(ctx *Context) *Context {
	ctx.Table.Seal()
	if ctx.Resolver == nil {
		ctx.Resolver = conformance.NewResolver(ctx.Table)
	}
	return ctx
}

// VerifyImplementsStage checks every struct's declared interface list,
// in struct name order so diagnostics are deterministic.
type VerifyImplementsStage struct{}

func (VerifyImplementsStage) Process(ctx *Context) *Context {
	structs := ctx.Table.Structs()
	sort.Slice(structs, func(i, j int) bool { return structs[i].Name < structs[j].Name })
	for _, s := range structs {
		ctx.Diagnostics = append(ctx.Diagnostics, ctx.Resolver.VerifyDeclared(s)...)
	}
	return ctx
}

// CallSiteStage validates every generic instantiation against its bounds.
type CallSiteStage struct{}

func (CallSiteStage) Process(ctx *Context) *Context {
	checker := conformance.NewBoundChecker(ctx.Table, ctx.Resolver)
	for _, site := range ctx.Calls {
		fn, err := ctx.Table.LookupFunction(site.Function)
		if err != nil {
			ctx.Diagnostics = append(ctx.Diagnostics, err)
			continue
		}
		subst, err := checker.CheckInstantiation(fn, site.Args, site.Token)
		if err != nil {
			ctx.Diagnostics = append(ctx.Diagnostics, err)
			continue
		}
		ctx.CallResults = append(ctx.CallResults, CallResult{Site: site, Subst: subst})
	}
	return ctx
}

// LoopStage validates every for-loop target and records its element type.
type LoopStage struct{}

func (LoopStage) Process(ctx *Context) *Context {
	checker := conformance.NewIterChecker(ctx.Table, ctx.Resolver)
	for _, site := range ctx.Loops {
		elem, err := checker.CheckIterable(site.Target, site.Token)
		if err != nil {
			ctx.Diagnostics = append(ctx.Diagnostics, err)
			continue
		}
		ctx.LoopResults = append(ctx.LoopResults, LoopResult{Site: site, Elem: elem})
	}
	return ctx
}
