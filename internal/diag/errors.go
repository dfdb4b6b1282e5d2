// Package diag defines the typed failure values the resolver core returns.
// Every error is recoverable at the call site; the core never panics on
// malformed input. Errors carry the caller's opaque correlation token so
// the front end can attach source locations; the core never formats
// locations itself.
package diag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tablelang/tablec/internal/typesystem"
)

// NewToken mints an opaque correlation token for front ends that have no
// token scheme of their own. The core never inspects token contents.
func NewToken() string {
	return uuid.NewString()
}

// DuplicateDeclaration indicates a second registration of a name within
// one namespace (structs, interfaces, and functions are separate).
type DuplicateDeclaration struct {
	Namespace string
	Name      string
	Token     string
}

func (e *DuplicateDeclaration) Error() string {
	return fmt.Sprintf("duplicate %s declaration: %s", e.Namespace, e.Name)
}

// UnknownIdentifier indicates a lookup of a name never declared in the
// given namespace.
type UnknownIdentifier struct {
	Namespace string
	Name      string
	Token     string
}

func (e *UnknownIdentifier) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Namespace, e.Name)
}

// TableSealed indicates a registration attempted after Seal.
type TableSealed struct {
	Namespace string
	Name      string
}

func (e *TableSealed) Error() string {
	return fmt.Sprintf("cannot register %s %s: declaration table is sealed", e.Namespace, e.Name)
}

// CyclicInterfaceRequirement indicates mutually dependent interface
// requirements reached while resolving a conformance query (interface A
// requires B, B requires A).
type CyclicInterfaceRequirement struct {
	Type      string
	Interface string
	Token     string
}

func (e *CyclicInterfaceRequirement) Error() string {
	return fmt.Sprintf("cyclic interface requirement while checking %s against %s", e.Type, e.Interface)
}

// UnresolvedGenericParameter indicates a conformance query against a
// generic parameter placeholder; conformance is undecidable before
// instantiation.
type UnresolvedGenericParameter struct {
	Param string
	Token string
}

func (e *UnresolvedGenericParameter) Error() string {
	return fmt.Sprintf("cannot resolve conformance of unresolved generic parameter %s", e.Param)
}

// ArityMismatch indicates a generic instantiation with the wrong number of
// type arguments. No bound checks are performed when it is returned.
type ArityMismatch struct {
	Function string
	Want     int
	Got      int
	Token    string
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%s expects %d type argument(s), got %d", e.Function, e.Want, e.Got)
}

// Violation is one failed bound: the generic parameter, the interface
// bound, and the type argument that does not satisfy it.
type Violation struct {
	Param     string
	Interface string
	TypeArg   typesystem.TypeRef
}

func (v Violation) String() string {
	return fmt.Sprintf("%s does not satisfy bound %s of parameter %s", v.TypeArg, v.Interface, v.Param)
}

// BoundViolation carries every bound failure found for one instantiation,
// not just the first, so the consuming compiler can report them all.
type BoundViolation struct {
	Function   string
	Violations []Violation
	Token      string
}

func (e *BoundViolation) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("invalid instantiation of %s: %s", e.Function, strings.Join(parts, "; "))
}

// ConformanceViolation indicates a struct whose declared interface list
// includes an interface its shape does not satisfy.
type ConformanceViolation struct {
	Struct    string
	Interface string
	Token     string
}

func (e *ConformanceViolation) Error() string {
	return fmt.Sprintf("%s declares %s but does not implement it", e.Struct, e.Interface)
}

// NotIterable indicates a for-loop target whose type does not satisfy the
// Iter protocol.
type NotIterable struct {
	Type  typesystem.TypeRef
	Token string
}

func (e *NotIterable) Error() string {
	return fmt.Sprintf("type %s is not iterable", e.Type)
}

// MalformedDocument indicates one invalid entry in a declaration-set
// document. Loading continues past it so every entry gets reported.
type MalformedDocument struct {
	File   string
	Entry  string
	Reason string
}

func (e *MalformedDocument) Error() string {
	return fmt.Sprintf("%s: entry %s: %s", e.File, e.Entry, e.Reason)
}
