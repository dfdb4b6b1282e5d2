package config

// Builtin primitive type names.
const (
	IntTypeName   = "int"
	FloatTypeName = "float"
	StrTypeName   = "str"
	BoolTypeName  = "bool"
)

// BuiltinTypes are all primitive type names, in declaration order.
var BuiltinTypes = []string{IntTypeName, FloatTypeName, StrTypeName, BoolTypeName}

// Builtin interface and protocol names.
const (
	ToStringInterfaceName = "ToString"
	EqInterfaceName       = "Eq"
	HashInterfaceName     = "Hash"
	IterInterfaceName     = "Iter"
	IterNextMethodName    = "next"
)

// builtinConformance is the closed primitive conformance table. Primitives
// never carry user-declared methods; whether they satisfy an interface is
// fixed here by name. No primitive is iterable.
var builtinConformance = map[string]map[string]bool{
	IntTypeName: {
		ToStringInterfaceName: true,
		EqInterfaceName:       true,
		HashInterfaceName:     true,
	},
	FloatTypeName: {
		ToStringInterfaceName: true,
		EqInterfaceName:       true,
	},
	StrTypeName: {
		ToStringInterfaceName: true,
		EqInterfaceName:       true,
		HashInterfaceName:     true,
	},
	BoolTypeName: {
		ToStringInterfaceName: true,
		EqInterfaceName:       true,
	},
}

// IsBuiltinType reports whether name is a primitive type.
func IsBuiltinType(name string) bool {
	_, ok := builtinConformance[name]
	return ok
}

// BuiltinSatisfies reports whether the primitive named typeName satisfies
// the interface named ifaceName.
func BuiltinSatisfies(typeName, ifaceName string) bool {
	return builtinConformance[typeName][ifaceName]
}
