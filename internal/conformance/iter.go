package conformance

import (
	"github.com/tablelang/tablec/internal/config"
	"github.com/tablelang/tablec/internal/diag"
	"github.com/tablelang/tablec/internal/symbols"
	"github.com/tablelang/tablec/internal/typesystem"
)

// IterChecker validates for-loop targets against the Iter protocol and
// recovers the element type the loop variable takes.
//
// Iter declares next(self: *Self): *E where E stands for the implementor's
// element type; the pointer return is the end-of-sequence wrapper (nil
// signals exhaustion). The checker strips exactly one pointer level from
// the implementor's next return to recover E.
type IterChecker struct {
	table    *symbols.DeclTable
	resolver *Resolver
}

func NewIterChecker(table *symbols.DeclTable, resolver *Resolver) *IterChecker {
	return &IterChecker{table: table, resolver: resolver}
}

// CheckIterable reports the element type produced by iterating t, or
// NotIterable if t does not satisfy Iter. The target type is distinct from
// the element type: a NumberIter yielding ints is iterated, ints come out.
func (c *IterChecker) CheckIterable(t typesystem.TypeRef, token string) (typesystem.TypeRef, error) {
	iface, err := c.table.LookupInterface(config.IterInterfaceName)
	if err != nil {
		return typesystem.TypeRef{}, err
	}

	res, err := c.resolver.Satisfies(t, iface, token)
	if err != nil {
		return typesystem.TypeRef{}, err
	}
	if res != Satisfied {
		return typesystem.TypeRef{}, &diag.NotIterable{Type: t, Token: token}
	}

	// No primitive satisfies Iter, so a Satisfied result names a struct.
	s, err := c.table.LookupStruct(t.Base().Name)
	if err != nil {
		return typesystem.TypeRef{}, err
	}
	next, ok := s.Method(config.IterNextMethodName)
	if !ok || next.Return.Ptr == 0 {
		// Satisfied conformance guarantees a pointer-returning next; a
		// hand-built declaration set that violates this is malformed.
		return typesystem.TypeRef{}, &diag.NotIterable{Type: t, Token: token}
	}
	return next.Return.Elem(), nil
}
