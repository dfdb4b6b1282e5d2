// Package conformance decides whether types satisfy interfaces: the
// resolver itself, the generic-bound checker, and the iterator protocol
// checker layered on top of it.
package conformance

import (
	"github.com/tablelang/tablec/internal/config"
	"github.com/tablelang/tablec/internal/decl"
	"github.com/tablelang/tablec/internal/diag"
	"github.com/tablelang/tablec/internal/symbols"
	"github.com/tablelang/tablec/internal/typesystem"
)

// Result is the memoized outcome of one (type, interface) query.
type Result int

const (
	Unvisited Result = iota
	InProgress
	Satisfied
	NotSatisfied
)

func (r Result) String() string {
	switch r {
	case InProgress:
		return "InProgress"
	case Satisfied:
		return "Satisfied"
	case NotSatisfied:
		return "NotSatisfied"
	default:
		return "Unvisited"
	}
}

// Pair identifies one memo entry.
type Pair struct {
	Type      string
	Interface string
}

// Resolver answers conformance queries against one sealed declaration
// table. Results are memoized for the remainder of the compilation unit;
// the InProgress sentinel exists only to detect cycles in mutually
// dependent interface requirements.
type Resolver struct {
	table *symbols.DeclTable
	memo  map[Pair]Result
}

func NewResolver(table *symbols.DeclTable) *Resolver {
	return &Resolver{
		table: table,
		memo:  make(map[Pair]Result),
	}
}

// Satisfies reports whether t satisfies iface. token is an opaque
// correlation token carried through into any failure.
func (r *Resolver) Satisfies(t typesystem.TypeRef, iface *decl.InterfaceDecl, token string) (Result, error) {
	if t.Generic {
		return Unvisited, &diag.UnresolvedGenericParameter{Param: t.Name, Token: token}
	}

	// Interfaces are conformance properties of the underlying type,
	// observed through either value or pointer.
	if t.Ptr > 0 {
		t = t.Base()
	}

	// Primitives never have user-declared methods; the builtin table is
	// the whole answer.
	if config.IsBuiltinType(t.Name) {
		if config.BuiltinSatisfies(t.Name, iface.Name) {
			return Satisfied, nil
		}
		return NotSatisfied, nil
	}

	s, err := r.table.LookupStruct(t.Name)
	if err != nil {
		return Unvisited, err
	}
	return r.structSatisfies(s, iface, token)
}

func (r *Resolver) structSatisfies(s *decl.StructDecl, iface *decl.InterfaceDecl, token string) (Result, error) {
	key := Pair{Type: s.Name, Interface: iface.Name}
	switch r.memo[key] {
	case Satisfied:
		return Satisfied, nil
	case NotSatisfied:
		return NotSatisfied, nil
	case InProgress:
		return Unvisited, &diag.CyclicInterfaceRequirement{Type: s.Name, Interface: iface.Name, Token: token}
	}

	r.memo[key] = InProgress

	result := Satisfied
	for _, required := range iface.Methods {
		candidate, ok := s.Method(required.Name)
		if !ok || !typesystem.Matches(required, candidate, s.Name) {
			result = NotSatisfied
			break
		}
	}

	if result == Satisfied {
		for _, super := range iface.Requires {
			superDecl, err := r.table.LookupInterface(super)
			if err != nil {
				delete(r.memo, key)
				return Unvisited, err
			}
			sub, err := r.structSatisfies(s, superDecl, token)
			if err != nil {
				delete(r.memo, key)
				return Unvisited, err
			}
			if sub == NotSatisfied {
				result = NotSatisfied
				break
			}
		}
	}

	r.memo[key] = result
	return result, nil
}

// VerifyDeclared checks every interface in the struct's declared
// implements list and returns one diagnostic per failure. Unknown
// interface names and resolution failures are reported in place.
func (r *Resolver) VerifyDeclared(s *decl.StructDecl) []error {
	var errs []error
	for _, name := range s.Implements {
		iface, err := r.table.LookupInterface(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res, err := r.Satisfies(typesystem.Named(s.Name), iface, s.Token)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res == NotSatisfied {
			errs = append(errs, &diag.ConformanceViolation{Struct: s.Name, Interface: name, Token: s.Token})
		}
	}
	return errs
}

// Resolved returns a snapshot of every settled memo entry, for tooling
// such as the conformance index. InProgress sentinels never escape.
func (r *Resolver) Resolved() map[Pair]Result {
	out := make(map[Pair]Result, len(r.memo))
	for k, v := range r.memo {
		if v == Satisfied || v == NotSatisfied {
			out[k] = v
		}
	}
	return out
}
