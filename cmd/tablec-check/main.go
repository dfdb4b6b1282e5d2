// tablec-check loads declaration-set documents, runs the conformance
// pipeline over them as one compilation unit, and reports the results.
// Exit code 1 means the unit has diagnostics, 2 a usage or I/O problem.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/mattn/go-isatty"

	"github.com/tablelang/tablec/internal/conformance"
	"github.com/tablelang/tablec/internal/index"
	"github.com/tablelang/tablec/internal/loader"
	"github.com/tablelang/tablec/internal/pipeline"
	"github.com/tablelang/tablec/internal/symbols"
)

var indexPath = flag.String("index", "", "write resolved conformance verdicts to this sqlite database")

func usage() {
	fmt.Fprintln(os.Stderr, "USAGE: tablec-check [-index file.db] <decls.yaml> [more.yaml ...]")
}

// errorln prints a diagnostic to stderr, red when attached to a terminal.
func errorln(msg string) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\033[1;31m%s\033[0m\n", msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	os.Exit(run(flag.Args(), *indexPath))
}

func run(files []string, indexPath string) int {
	table := symbols.NewDeclTable()
	ctx := pipeline.NewContext(table)
	unit := ""

	var loadErrs []error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			errorln(err.Error())
			return 2
		}
		doc, errs := loader.Load(table, file, src)
		loadErrs = append(loadErrs, errs...)
		if doc == nil {
			continue
		}
		if unit == "" {
			unit = doc.Unit
		}
		ctx.Calls = append(ctx.Calls, doc.Calls...)
		ctx.Loops = append(ctx.Loops, doc.Loops...)
	}

	ctx = pipeline.Default().Run(ctx)
	diagnostics := append(loadErrs, ctx.Diagnostics...)

	for _, result := range ctx.CallResults {
		fmt.Printf("call %s: %s\n", result.Site.Function, formatSubst(result.Subst))
	}
	for _, result := range ctx.LoopResults {
		fmt.Printf("for %s: element %s\n", result.Site.Target, result.Elem)
	}

	if indexPath != "" && unit != "" {
		if err := writeIndex(indexPath, unit, ctx.Resolver); err != nil {
			errorln("index: " + err.Error())
			return 2
		}
	}

	for _, d := range diagnostics {
		errorln(d.Error())
	}
	if len(diagnostics) > 0 {
		return 1
	}
	return 0
}

func formatSubst(subst conformance.Subst) string {
	names := make([]string, 0, len(subst))
	for name := range subst {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += name + " = " + subst[name].String()
	}
	return out
}

func writeIndex(path, unit string, resolver *conformance.Resolver) error {
	ix, err := index.Open(path)
	if err != nil {
		return err
	}
	defer ix.Close()
	return ix.RecordUnit(unit, resolver.Resolved())
}
