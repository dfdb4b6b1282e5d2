package conformance

import (
	"github.com/tablelang/tablec/internal/decl"
	"github.com/tablelang/tablec/internal/diag"
	"github.com/tablelang/tablec/internal/symbols"
	"github.com/tablelang/tablec/internal/typesystem"
)

// Subst maps generic parameter names to the concrete type arguments of a
// validated instantiation. This is what the code generation stage consumes.
type Subst map[string]typesystem.TypeRef

// BoundChecker validates generic instantiations against their declared
// bounds. It is a thin policy layer over the Resolver.
type BoundChecker struct {
	table    *symbols.DeclTable
	resolver *Resolver
}

func NewBoundChecker(table *symbols.DeclTable, resolver *Resolver) *BoundChecker {
	return &BoundChecker{table: table, resolver: resolver}
}

// CheckInstantiation validates typeArgs against fn's generic parameter
// bounds and returns the substitution on success.
//
// Arity is checked first; on mismatch no bound checks run. Within one
// parameter checking short-circuits at the first failed bound, but every
// parameter is checked before returning, so the caller gets the complete
// violation list rather than just the first. Unknown bound names and hard
// resolver failures (cycles, unresolved generics) abort immediately: they
// indicate malformed input rather than an ordinary bound failure.
func (c *BoundChecker) CheckInstantiation(fn *decl.GenericFunctionDecl, typeArgs []typesystem.TypeRef, token string) (Subst, error) {
	if len(typeArgs) != len(fn.Generics) {
		return nil, &diag.ArityMismatch{
			Function: fn.Name,
			Want:     len(fn.Generics),
			Got:      len(typeArgs),
			Token:    token,
		}
	}

	var violations []diag.Violation
	for i, param := range fn.Generics {
		arg := typeArgs[i]
		for _, bound := range param.Bounds {
			iface, err := c.table.LookupInterface(bound)
			if err != nil {
				return nil, err
			}
			res, err := c.resolver.Satisfies(arg, iface, token)
			if err != nil {
				return nil, err
			}
			if res == NotSatisfied {
				violations = append(violations, diag.Violation{
					Param:     param.Name,
					Interface: bound,
					TypeArg:   arg,
				})
				break
			}
		}
	}

	if len(violations) > 0 {
		return nil, &diag.BoundViolation{Function: fn.Name, Violations: violations, Token: token}
	}

	subst := make(Subst, len(fn.Generics))
	for i, param := range fn.Generics {
		subst[param.Name] = typeArgs[i]
	}
	return subst, nil
}
