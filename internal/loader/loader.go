// Package loader reads declaration-set documents: the YAML exchange format
// the parsing front end emits for this core. A document carries interface,
// struct, and generic function declarations plus the generic call sites and
// for-loop targets to validate. Several documents may feed one table; the
// caller seals it afterwards.
package loader

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tablelang/tablec/internal/config"
	"github.com/tablelang/tablec/internal/decl"
	"github.com/tablelang/tablec/internal/diag"
	"github.com/tablelang/tablec/internal/symbols"
	"github.com/tablelang/tablec/internal/typesystem"
)

type methodEntry struct {
	Name     string   `yaml:"name"`
	Receiver string   `yaml:"receiver"` // "pointer" or "value"; value is the default
	Params   []string `yaml:"params"`
	Return   string   `yaml:"return"`
}

type fieldEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type interfaceEntry struct {
	Name         string        `yaml:"name"`
	Placeholders []string      `yaml:"placeholders"` // per-implementor type names, e.g. Iter's element
	Requires     []string      `yaml:"requires"`
	Methods      []methodEntry `yaml:"methods"`
	Token        string        `yaml:"token"`
}

type structEntry struct {
	Name       string        `yaml:"name"`
	Fields     []fieldEntry  `yaml:"fields"`
	Implements []string      `yaml:"implements"`
	Methods    []methodEntry `yaml:"methods"`
	Token      string        `yaml:"token"`
}

type genericEntry struct {
	Name   string   `yaml:"name"`
	Bounds []string `yaml:"bounds"`
}

type functionEntry struct {
	Name     string         `yaml:"name"`
	Generics []genericEntry `yaml:"generics"`
	Params   []string       `yaml:"params"`
	Return   string         `yaml:"return"`
	Token    string         `yaml:"token"`
}

type callEntry struct {
	Function string   `yaml:"function"`
	Args     []string `yaml:"args"`
	Token    string   `yaml:"token"`
}

type loopEntry struct {
	Target string `yaml:"target"`
	Token  string `yaml:"token"`
}

type document struct {
	Unit       string           `yaml:"unit"`
	Interfaces []interfaceEntry `yaml:"interfaces"`
	Structs    []structEntry    `yaml:"structs"`
	Functions  []functionEntry  `yaml:"functions"`
	Calls      []callEntry      `yaml:"calls"`
	Loops      []loopEntry      `yaml:"loops"`
}

// CallSite is one generic instantiation to validate.
type CallSite struct {
	Function string
	Args     []typesystem.TypeRef
	Token    string
}

// LoopSite is one for-loop target to validate.
type LoopSite struct {
	Target typesystem.TypeRef
	Token  string
}

// Document is the loaded form of one declaration-set file. Declarations go
// straight into the table; call and loop sites are returned for the
// checking stages.
type Document struct {
	Unit  string
	Calls []CallSite
	Loops []LoopSite
}

// Load decodes src, registers its declarations into table, and returns the
// sites to check. Malformed entries are reported individually and skipped;
// loading continues so every problem in the document surfaces at once.
func Load(table *symbols.DeclTable, file string, src []byte) (*Document, []error) {
	var doc document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, []error{&diag.MalformedDocument{File: file, Entry: "document", Reason: err.Error()}}
	}

	var errs []error
	fail := func(entry, format string, args ...any) {
		errs = append(errs, &diag.MalformedDocument{File: file, Entry: entry, Reason: fmt.Sprintf(format, args...)})
	}

	for _, e := range doc.Interfaces {
		if e.Name == "" {
			fail("interface", "missing name")
			continue
		}
		d, entryErrs := buildInterface(file, e)
		errs = append(errs, entryErrs...)
		if d == nil {
			continue
		}
		if err := table.RegisterInterface(d); err != nil {
			errs = append(errs, err)
		}
	}

	for _, e := range doc.Structs {
		if e.Name == "" {
			fail("struct", "missing name")
			continue
		}
		d, entryErrs := buildStruct(file, e)
		errs = append(errs, entryErrs...)
		if d == nil {
			continue
		}
		if err := table.RegisterStruct(d); err != nil {
			errs = append(errs, err)
		}
	}

	for _, e := range doc.Functions {
		if e.Name == "" {
			fail("function", "missing name")
			continue
		}
		d, entryErrs := buildFunction(file, e)
		errs = append(errs, entryErrs...)
		if d == nil {
			continue
		}
		if err := table.RegisterFunction(d); err != nil {
			errs = append(errs, err)
		}
	}

	out := &Document{Unit: doc.Unit}

	for _, e := range doc.Calls {
		if e.Function == "" {
			fail("call", "missing function name")
			continue
		}
		site := CallSite{Function: e.Function, Token: orMint(e.Token)}
		ok := true
		for _, a := range e.Args {
			ref, err := parseTypeRef(a, nil)
			if err != nil {
				fail("call "+e.Function, "%v", err)
				ok = false
				break
			}
			site.Args = append(site.Args, ref)
		}
		if ok {
			out.Calls = append(out.Calls, site)
		}
	}

	for _, e := range doc.Loops {
		ref, err := parseTypeRef(e.Target, nil)
		if err != nil {
			fail("loop", "%v", err)
			continue
		}
		out.Loops = append(out.Loops, LoopSite{Target: ref, Token: orMint(e.Token)})
	}

	return out, errs
}

func buildInterface(file string, e interfaceEntry) (*decl.InterfaceDecl, []error) {
	var errs []error
	placeholders := make(map[string]bool, len(e.Placeholders))
	for _, p := range e.Placeholders {
		placeholders[p] = true
	}

	d := &decl.InterfaceDecl{
		Name:     e.Name,
		Requires: e.Requires,
		Token:    orMint(e.Token),
	}
	for _, m := range e.Methods {
		sig, err := buildMethod(m, placeholders)
		if err != nil {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "interface " + e.Name, Reason: err.Error()})
			continue
		}
		if !d.AddMethod(sig) {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "interface " + e.Name, Reason: "duplicate method " + sig.Name})
		}
	}

	// The Iter protocol has a fixed shape: exactly one next method whose
	// return carries the end-of-sequence pointer wrapper.
	if e.Name == config.IterInterfaceName {
		if len(d.Methods) != 1 || d.Methods[0].Name != config.IterNextMethodName || d.Methods[0].Return.Ptr == 0 {
			errs = append(errs, &diag.MalformedDocument{
				File:   file,
				Entry:  "interface " + e.Name,
				Reason: "Iter must declare exactly one method next returning a pointer-wrapped element",
			})
			return nil, errs
		}
	}
	return d, errs
}

func buildStruct(file string, e structEntry) (*decl.StructDecl, []error) {
	var errs []error
	d := &decl.StructDecl{
		Name:       e.Name,
		Implements: e.Implements,
		Methods:    make(map[string]typesystem.MethodSignature, len(e.Methods)),
		Token:      orMint(e.Token),
	}

	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "" {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "struct " + e.Name, Reason: "field missing name"})
			continue
		}
		if seen[f.Name] {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "struct " + e.Name, Reason: "duplicate field " + f.Name})
			continue
		}
		seen[f.Name] = true
		ref, err := parseTypeRef(f.Type, nil)
		if err != nil {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "struct " + e.Name, Reason: fmt.Sprintf("field %s: %v", f.Name, err)})
			continue
		}
		d.Fields = append(d.Fields, decl.Field{Name: f.Name, Type: ref})
	}

	for _, m := range e.Methods {
		sig, err := buildMethod(m, nil)
		if err != nil {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "struct " + e.Name, Reason: err.Error()})
			continue
		}
		if _, dup := d.Methods[sig.Name]; dup {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "struct " + e.Name, Reason: "duplicate method " + sig.Name})
			continue
		}
		d.Methods[sig.Name] = sig
	}
	return d, errs
}

func buildFunction(file string, e functionEntry) (*decl.GenericFunctionDecl, []error) {
	var errs []error
	d := &decl.GenericFunctionDecl{
		Name:  e.Name,
		Token: orMint(e.Token),
	}
	generics := make(map[string]bool, len(e.Generics))
	for _, g := range e.Generics {
		if g.Name == "" {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "function " + e.Name, Reason: "generic parameter missing name"})
			continue
		}
		generics[g.Name] = true
		d.Generics = append(d.Generics, decl.NewGenericParam(g.Name, g.Bounds))
	}
	for _, p := range e.Params {
		ref, err := parseTypeRef(p, generics)
		if err != nil {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "function " + e.Name, Reason: err.Error()})
			continue
		}
		d.Params = append(d.Params, ref)
	}
	if e.Return != "" {
		ref, err := parseTypeRef(e.Return, generics)
		if err != nil {
			errs = append(errs, &diag.MalformedDocument{File: file, Entry: "function " + e.Name, Reason: err.Error()})
		} else {
			d.Return = ref
		}
	}
	return d, errs
}

func buildMethod(e methodEntry, placeholders map[string]bool) (typesystem.MethodSignature, error) {
	if e.Name == "" {
		return typesystem.MethodSignature{}, fmt.Errorf("method missing name")
	}
	sig := typesystem.MethodSignature{Name: e.Name}
	switch e.Receiver {
	case "pointer":
		sig.RecvPtr = true
	case "value", "":
	default:
		return typesystem.MethodSignature{}, fmt.Errorf("method %s: receiver must be pointer or value, got %q", e.Name, e.Receiver)
	}
	for _, p := range e.Params {
		ref, err := parseTypeRef(p, placeholders)
		if err != nil {
			return typesystem.MethodSignature{}, fmt.Errorf("method %s: %v", e.Name, err)
		}
		sig.Params = append(sig.Params, ref)
	}
	if e.Return != "" {
		ref, err := parseTypeRef(e.Return, placeholders)
		if err != nil {
			return typesystem.MethodSignature{}, fmt.Errorf("method %s: %v", e.Name, err)
		}
		sig.Return = ref
	}
	return sig, nil
}

// parseTypeRef reads the document type syntax: a name with zero or more
// leading stars ("int", "*Point", "**T"). Names present in generics are
// marked as generic parameter placeholders.
func parseTypeRef(s string, generics map[string]bool) (typesystem.TypeRef, error) {
	s = strings.TrimSpace(s)
	ptr := 0
	for strings.HasPrefix(s, "*") {
		ptr++
		s = s[1:]
	}
	if s == "" {
		return typesystem.TypeRef{}, fmt.Errorf("empty type reference")
	}
	if strings.ContainsAny(s, " \t*") {
		return typesystem.TypeRef{}, fmt.Errorf("malformed type reference %q", s)
	}
	return typesystem.TypeRef{Name: s, Ptr: ptr, Generic: generics[s]}, nil
}

func orMint(token string) string {
	if token == "" {
		return diag.NewToken()
	}
	return token
}
