package typesystem

import "strings"

// TypeRef is a reference to a named type: a builtin primitive, a struct
// name, or a generic parameter placeholder, behind zero or more pointers.
// TypeRefs are immutable values compared structurally (name + pointer depth).
type TypeRef struct {
	Name    string
	Ptr     int  // pointer depth: *T has Ptr 1, **T has Ptr 2
	Generic bool // Name is a generic parameter, not a declared type
}

// Named builds a plain (non-pointer) reference to a named type.
func Named(name string) TypeRef {
	return TypeRef{Name: name}
}

// GenericParam builds a reference to an unresolved generic parameter.
func GenericParam(name string) TypeRef {
	return TypeRef{Name: name, Generic: true}
}

// PointerTo wraps t in one more level of pointer.
func PointerTo(t TypeRef) TypeRef {
	t.Ptr++
	return t
}

// Elem strips one pointer level. Calling Elem on a non-pointer returns t
// unchanged; callers check Ptr first when the distinction matters.
func (t TypeRef) Elem() TypeRef {
	if t.Ptr > 0 {
		t.Ptr--
	}
	return t
}

// Base is t with all pointer levels stripped.
func (t TypeRef) Base() TypeRef {
	t.Ptr = 0
	return t
}

// IsZero reports whether t is the absent type (no name), used for
// functions without a return value.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

func (t TypeRef) Equal(o TypeRef) bool {
	return t.Name == o.Name && t.Ptr == o.Ptr && t.Generic == o.Generic
}

func (t TypeRef) String() string {
	if t.IsZero() {
		return "()"
	}
	return strings.Repeat("*", t.Ptr) + t.Name
}

// MethodSignature describes one method of a struct or interface. The
// receiver is kept out of Params; only its pointer/value kind matters for
// matching. Inside an interface declaration, Self refers to the eventual
// implementing struct and placeholder names (Generic TypeRefs) stand for
// per-implementor types such as an iterator's element.
type MethodSignature struct {
	Name    string
	RecvPtr bool // receiver is *Self (or *Owner) rather than by value
	Params  []TypeRef
	Return  TypeRef
}

func (m MethodSignature) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("(self: ")
	if m.RecvPtr {
		b.WriteString("*")
	}
	b.WriteString("Self")
	for _, p := range m.Params {
		b.WriteString(", ")
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if !m.Return.IsZero() {
		b.WriteString(": ")
		b.WriteString(m.Return.String())
	}
	return b.String()
}
