package typesystem

// SelfTypeName is the receiver placeholder used in interface signatures.
const SelfTypeName = "Self"

// Matches reports whether candidate (a method declared on the struct named
// owner) satisfies required (a method an interface demands). Matching is
// structural and exact after Self-substitution: names equal, receiver kinds
// equal, parameter counts equal, and every parameter/return position equal.
// There is no numeric widening and no pointer/value coercion; a value
// receiver never satisfies a *Self requirement.
//
// Pure function: no side effects, deterministic for identical inputs.
func Matches(required, candidate MethodSignature, owner string) bool {
	if required.Name != candidate.Name {
		return false
	}
	if required.RecvPtr != candidate.RecvPtr {
		return false
	}
	if len(required.Params) != len(candidate.Params) {
		return false
	}
	for i := range required.Params {
		if !refMatches(required.Params[i], candidate.Params[i], owner) {
			return false
		}
	}
	return refMatches(required.Return, candidate.Return, owner)
}

// refMatches compares one required position against the candidate's.
// Self in the required signature resolves to the owning struct at the same
// pointer depth. A generic placeholder in the required signature stands for
// a per-implementor type (e.g. an iterator's element) and matches any
// candidate type carrying at least the placeholder's pointer wrapping.
func refMatches(required, candidate TypeRef, owner string) bool {
	if required.Generic {
		return candidate.Ptr >= required.Ptr
	}
	if required.Name == SelfTypeName {
		return candidate.Name == owner &&
			candidate.Ptr == required.Ptr &&
			!candidate.Generic
	}
	return required.Equal(candidate)
}
