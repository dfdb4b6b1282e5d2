package conformance

import (
	"errors"
	"testing"

	"github.com/tablelang/tablec/internal/config"
	"github.com/tablelang/tablec/internal/decl"
	"github.com/tablelang/tablec/internal/diag"
	"github.com/tablelang/tablec/internal/typesystem"
)

// iterDecl is Iter{next(self: *Self): *E} with E the element placeholder.
func iterDecl() *decl.InterfaceDecl {
	return &decl.InterfaceDecl{
		Name: config.IterInterfaceName,
		Methods: []typesystem.MethodSignature{
			{
				Name:    config.IterNextMethodName,
				RecvPtr: true,
				Return:  typesystem.PointerTo(typesystem.GenericParam("E")),
			},
		},
	}
}

func TestCheckIterable(t *testing.T) {
	numberIter := &decl.StructDecl{
		Name: "NumberIter",
		Methods: map[string]typesystem.MethodSignature{
			"next": {Name: "next", RecvPtr: true, Return: typesystem.PointerTo(typesystem.Named("int"))},
		},
	}
	table, r := newTestResolver(t, iterDecl(), numberIter)
	checker := NewIterChecker(table, r)

	elem, err := checker.CheckIterable(typesystem.Named("NumberIter"), "")
	if err != nil {
		t.Fatalf("CheckIterable(NumberIter): %v", err)
	}
	if !elem.Equal(typesystem.Named("int")) {
		t.Errorf("element = %s, want int", elem)
	}

	// Iterating through a pointer resolves against the pointee.
	elem, err = checker.CheckIterable(typesystem.PointerTo(typesystem.Named("NumberIter")), "")
	if err != nil {
		t.Fatalf("CheckIterable(*NumberIter): %v", err)
	}
	if !elem.Equal(typesystem.Named("int")) {
		t.Errorf("element through pointer = %s, want int", elem)
	}
}

func TestCheckIterableStructElements(t *testing.T) {
	// A next returning **Point yields *Point elements after stripping the
	// single end-of-sequence wrapper.
	pointIter := &decl.StructDecl{
		Name: "PointIter",
		Methods: map[string]typesystem.MethodSignature{
			"next": {Name: "next", RecvPtr: true, Return: typesystem.PointerTo(typesystem.PointerTo(typesystem.Named("Point")))},
		},
	}
	table, r := newTestResolver(t, iterDecl(), pointIter, &decl.StructDecl{Name: "Point"})
	checker := NewIterChecker(table, r)

	elem, err := checker.CheckIterable(typesystem.Named("PointIter"), "")
	if err != nil {
		t.Fatalf("CheckIterable(PointIter): %v", err)
	}
	if want := typesystem.PointerTo(typesystem.Named("Point")); !elem.Equal(want) {
		t.Errorf("element = %s, want %s", elem, want)
	}
}

func TestCheckIterableNotIterable(t *testing.T) {
	bare := &decl.StructDecl{Name: "Bare"}
	table, r := newTestResolver(t, iterDecl(), bare)
	checker := NewIterChecker(table, r)

	_, err := checker.CheckIterable(typesystem.Named("Bare"), "loop-3")
	var notIt *diag.NotIterable
	if !errors.As(err, &notIt) {
		t.Fatalf("error = %v, want NotIterable", err)
	}
	if notIt.Token != "loop-3" {
		t.Errorf("token = %q, want loop-3", notIt.Token)
	}

	// Primitives are never iterable.
	_, err = checker.CheckIterable(typesystem.Named("int"), "")
	if !errors.As(err, &notIt) {
		t.Errorf("CheckIterable(int) error = %v, want NotIterable", err)
	}
}

func TestCheckIterableUnwrappedNext(t *testing.T) {
	// next returning a bare int lacks the end-of-sequence wrapper, so the
	// struct never satisfies Iter in the first place.
	bad := &decl.StructDecl{
		Name: "BadIter",
		Methods: map[string]typesystem.MethodSignature{
			"next": {Name: "next", RecvPtr: true, Return: typesystem.Named("int")},
		},
	}
	table, r := newTestResolver(t, iterDecl(), bad)
	checker := NewIterChecker(table, r)

	_, err := checker.CheckIterable(typesystem.Named("BadIter"), "")
	var notIt *diag.NotIterable
	if !errors.As(err, &notIt) {
		t.Errorf("error = %v, want NotIterable", err)
	}
}

func TestCheckIterableMissingIterDecl(t *testing.T) {
	table, r := newTestResolver(t)
	checker := NewIterChecker(table, r)

	_, err := checker.CheckIterable(typesystem.Named("Anything"), "")
	var unknown *diag.UnknownIdentifier
	if !errors.As(err, &unknown) || unknown.Name != config.IterInterfaceName {
		t.Errorf("error = %v, want UnknownIdentifier(Iter)", err)
	}
}
