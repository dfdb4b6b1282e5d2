// Package symbols provides the per-compilation-unit declaration table.
// It is populated once during the collection phase, sealed, and then
// queried read-only for the rest of the compilation. Each unit owns its
// own table; there is no process-wide instance.
package symbols

import (
	"github.com/tablelang/tablec/internal/decl"
	"github.com/tablelang/tablec/internal/diag"
)

// Namespace names used in diagnostics. Structs, interfaces, and functions
// occupy separate namespaces: a struct and an interface may share a name.
const (
	StructNamespace    = "struct"
	InterfaceNamespace = "interface"
	FunctionNamespace  = "function"
)

// DeclTable holds every declaration of one compilation unit.
type DeclTable struct {
	structs    map[string]*decl.StructDecl
	interfaces map[string]*decl.InterfaceDecl
	functions  map[string]*decl.GenericFunctionDecl
	sealed     bool
}

func NewDeclTable() *DeclTable {
	return &DeclTable{
		structs:    make(map[string]*decl.StructDecl),
		interfaces: make(map[string]*decl.InterfaceDecl),
		functions:  make(map[string]*decl.GenericFunctionDecl),
	}
}

// Seal ends the collection phase. Registration fails afterwards and
// lookups never allocate.
func (t *DeclTable) Seal() {
	t.sealed = true
}

func (t *DeclTable) Sealed() bool {
	return t.sealed
}

func (t *DeclTable) RegisterStruct(s *decl.StructDecl) error {
	if t.sealed {
		return &diag.TableSealed{Namespace: StructNamespace, Name: s.Name}
	}
	if _, ok := t.structs[s.Name]; ok {
		return &diag.DuplicateDeclaration{Namespace: StructNamespace, Name: s.Name, Token: s.Token}
	}
	t.structs[s.Name] = s
	return nil
}

func (t *DeclTable) RegisterInterface(i *decl.InterfaceDecl) error {
	if t.sealed {
		return &diag.TableSealed{Namespace: InterfaceNamespace, Name: i.Name}
	}
	if _, ok := t.interfaces[i.Name]; ok {
		return &diag.DuplicateDeclaration{Namespace: InterfaceNamespace, Name: i.Name, Token: i.Token}
	}
	t.interfaces[i.Name] = i
	return nil
}

func (t *DeclTable) RegisterFunction(f *decl.GenericFunctionDecl) error {
	if t.sealed {
		return &diag.TableSealed{Namespace: FunctionNamespace, Name: f.Name}
	}
	if _, ok := t.functions[f.Name]; ok {
		return &diag.DuplicateDeclaration{Namespace: FunctionNamespace, Name: f.Name, Token: f.Token}
	}
	t.functions[f.Name] = f
	return nil
}

func (t *DeclTable) LookupStruct(name string) (*decl.StructDecl, error) {
	s, ok := t.structs[name]
	if !ok {
		return nil, &diag.UnknownIdentifier{Namespace: StructNamespace, Name: name}
	}
	return s, nil
}

func (t *DeclTable) LookupInterface(name string) (*decl.InterfaceDecl, error) {
	i, ok := t.interfaces[name]
	if !ok {
		return nil, &diag.UnknownIdentifier{Namespace: InterfaceNamespace, Name: name}
	}
	return i, nil
}

func (t *DeclTable) LookupFunction(name string) (*decl.GenericFunctionDecl, error) {
	f, ok := t.functions[name]
	if !ok {
		return nil, &diag.UnknownIdentifier{Namespace: FunctionNamespace, Name: name}
	}
	return f, nil
}

// Structs returns every registered struct. Iteration order is unspecified.
func (t *DeclTable) Structs() []*decl.StructDecl {
	out := make([]*decl.StructDecl, 0, len(t.structs))
	for _, s := range t.structs {
		out = append(out, s)
	}
	return out
}

// Functions returns every registered generic function.
func (t *DeclTable) Functions() []*decl.GenericFunctionDecl {
	out := make([]*decl.GenericFunctionDecl, 0, len(t.functions))
	for _, f := range t.functions {
		out = append(out, f)
	}
	return out
}
