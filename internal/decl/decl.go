// Package decl holds the canonical declaration records the resolver core
// works over. The front end produces them (directly or through the loader),
// they are registered into a symbols.DeclTable during the collection phase,
// and they are never mutated afterwards.
package decl

import "github.com/tablelang/tablec/internal/typesystem"

// Field is one declared struct field. Order is preserved for layout use by
// later stages; it plays no role in conformance.
type Field struct {
	Name string
	Type typesystem.TypeRef
}

// StructDecl describes a user-defined struct: fields, methods, and the
// interface names it asserts it implements (struct S : ToString, Iter).
// The assertion states intent; the conformance resolver verifies the shape
// independently.
type StructDecl struct {
	Name       string
	Fields     []Field
	Methods    map[string]typesystem.MethodSignature
	Implements []string
	Token      string // opaque correlation token from the front end
}

// Method returns the struct's method with the given name.
func (s *StructDecl) Method(name string) (typesystem.MethodSignature, bool) {
	m, ok := s.Methods[name]
	return m, ok
}

// InterfaceDecl describes an interface: uniquely named required methods in
// declaration order, plus the names of interfaces it itself requires
// (supertype interfaces, enabling transitive bounds).
type InterfaceDecl struct {
	Name     string
	Methods  []typesystem.MethodSignature
	Requires []string
	Token    string
}

// AddMethod appends a required method, refusing duplicates by name.
func (i *InterfaceDecl) AddMethod(sig typesystem.MethodSignature) bool {
	for _, m := range i.Methods {
		if m.Name == sig.Name {
			return false
		}
	}
	i.Methods = append(i.Methods, sig)
	return true
}

// GenericParam is one generic parameter of a function together with its
// interface bounds. Bounds are conjunctive; order carries no meaning and
// duplicates are collapsed at construction.
type GenericParam struct {
	Name   string
	Bounds []string
}

// NewGenericParam builds a parameter with deduplicated bounds.
func NewGenericParam(name string, bounds []string) GenericParam {
	seen := make(map[string]bool, len(bounds))
	var dedup []string
	for _, b := range bounds {
		if !seen[b] {
			seen[b] = true
			dedup = append(dedup, b)
		}
	}
	return GenericParam{Name: name, Bounds: dedup}
}

// GenericFunctionDecl describes a generic function signature: the ordered
// generic parameter list and the concrete parameter/return types, which may
// reference generic parameter names.
type GenericFunctionDecl struct {
	Name     string
	Generics []GenericParam
	Params   []typesystem.TypeRef
	Return   typesystem.TypeRef
	Token    string
}
