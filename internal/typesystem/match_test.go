package typesystem

import "testing"

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"plain", Named("int"), "int"},
		{"pointer", PointerTo(Named("Point")), "*Point"},
		{"double pointer", PointerTo(PointerTo(Named("T"))), "**T"},
		{"generic", GenericParam("T"), "T"},
		{"absent", TypeRef{}, "()"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTypeRefElemAndBase(t *testing.T) {
	pp := PointerTo(PointerTo(Named("Point")))
	if got := pp.Elem(); got.Ptr != 1 || got.Name != "Point" {
		t.Errorf("Elem() = %s, want *Point", got)
	}
	if got := pp.Base(); got.Ptr != 0 || got.Name != "Point" {
		t.Errorf("Base() = %s, want Point", got)
	}
	plain := Named("int")
	if got := plain.Elem(); !got.Equal(plain) {
		t.Errorf("Elem() on non-pointer = %s, want int", got)
	}
}

func TestMatchesSelfSubstitution(t *testing.T) {
	required := MethodSignature{
		Name:    "to_string",
		RecvPtr: true,
		Return:  Named("str"),
	}
	candidate := MethodSignature{
		Name:    "to_string",
		RecvPtr: true,
		Return:  Named("str"),
	}
	if !Matches(required, candidate, "ExampleStruct") {
		t.Errorf("pointer receiver should satisfy *Self requirement")
	}

	// A value receiver does not satisfy a *Self requirement.
	byValue := candidate
	byValue.RecvPtr = false
	if Matches(required, byValue, "ExampleStruct") {
		t.Errorf("value receiver must not satisfy *Self requirement")
	}
}

func TestMatchesSelfInParamsAndReturn(t *testing.T) {
	// eq(self: *Self, other: *Self): bool
	required := MethodSignature{
		Name:    "eq",
		RecvPtr: true,
		Params:  []TypeRef{PointerTo(Named(SelfTypeName))},
		Return:  Named("bool"),
	}
	good := MethodSignature{
		Name:    "eq",
		RecvPtr: true,
		Params:  []TypeRef{PointerTo(Named("Point"))},
		Return:  Named("bool"),
	}
	if !Matches(required, good, "Point") {
		t.Errorf("*Point should satisfy *Self for owner Point")
	}
	if Matches(required, good, "Circle") {
		t.Errorf("*Point must not satisfy *Self for owner Circle")
	}

	// Self by value in a param must not accept a pointer.
	byValSelf := required
	byValSelf.Params = []TypeRef{Named(SelfTypeName)}
	if Matches(byValSelf, good, "Point") {
		t.Errorf("*Point must not satisfy a by-value Self param")
	}
}

func TestMatchesExactness(t *testing.T) {
	required := MethodSignature{
		Name:    "area",
		RecvPtr: true,
		Return:  Named("float"),
	}
	tests := []struct {
		name      string
		candidate MethodSignature
		want      bool
	}{
		{
			"wrong name",
			MethodSignature{Name: "size", RecvPtr: true, Return: Named("float")},
			false,
		},
		{
			"wrong return",
			MethodSignature{Name: "area", RecvPtr: true, Return: Named("int")},
			false,
		},
		{
			"extra param",
			MethodSignature{Name: "area", RecvPtr: true, Params: []TypeRef{Named("int")}, Return: Named("float")},
			false,
		},
		{
			"exact",
			MethodSignature{Name: "area", RecvPtr: true, Return: Named("float")},
			true,
		},
	}
	for _, tt := range tests {
		if got := Matches(required, tt.candidate, "Rect"); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMatchesElementPlaceholder(t *testing.T) {
	// next(self: *Self): *E where E is a per-implementor element.
	required := MethodSignature{
		Name:    "next",
		RecvPtr: true,
		Return:  PointerTo(GenericParam("E")),
	}
	good := MethodSignature{
		Name:    "next",
		RecvPtr: true,
		Return:  PointerTo(Named("int")),
	}
	if !Matches(required, good, "NumberIter") {
		t.Errorf("*int should satisfy placeholder return *E")
	}

	// A bare (non-pointer) return lacks the end-of-sequence wrapper.
	bare := good
	bare.Return = Named("int")
	if Matches(required, bare, "NumberIter") {
		t.Errorf("int must not satisfy placeholder return *E")
	}
}
