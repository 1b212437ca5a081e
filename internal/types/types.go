// Package types implements Sigma's type lattice: the five built-in
// primitives, user-declared classes, the null and void sentinels, and the
// Error bottom type used to halt cascading diagnostics after a failed
// sub-expression.
package types

import "fmt"

// Kind distinguishes the shape of a Type value.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindNull
	KindVoid
	KindError
)

// Type is an immutable value describing the static type of an expression
// or declaration. Two Types are the same type iff Kind and Name match;
// construct them only through the package constructors or a Registry so
// that comparisons stay meaningful.
type Type struct {
	kind Kind
	name string
}

// Primitive built-ins, ordered by numeric widening rank (Int < Float <
// Double). Boolean and String do not participate in widening.
var (
	Int     = Type{kind: KindPrimitive, name: "int"}
	Float   = Type{kind: KindPrimitive, name: "float"}
	Double  = Type{kind: KindPrimitive, name: "double"}
	Boolean = Type{kind: KindPrimitive, name: "boolean"}
	String  = Type{kind: KindPrimitive, name: "String"}

	Void  = Type{kind: KindVoid, name: "void"}
	Null  = Type{kind: KindNull, name: "null"}
	Error = Type{kind: KindError, name: "<error>"}
)

// Class returns the type of a user-declared class with the given name.
// It does not check that the class is registered; use a Registry to
// resolve a name that may or may not exist.
func Class(name string) Type {
	return Type{kind: KindClass, name: name}
}

func (t Type) Kind() Kind  { return t.kind }
func (t Type) Name() string { return t.name }

func (t Type) IsPrimitive() bool { return t.kind == KindPrimitive }
func (t Type) IsClass() bool     { return t.kind == KindClass }
func (t Type) IsNull() bool      { return t.kind == KindNull }
func (t Type) IsVoid() bool      { return t.kind == KindVoid }
func (t Type) IsError() bool     { return t.kind == KindError }

// IsNumeric reports whether t is int, float, or double.
func (t Type) IsNumeric() bool {
	return t.kind == KindPrimitive && (t.name == "int" || t.name == "float" || t.name == "double")
}

func (t Type) String() string { return t.name }

// numericRank orders the numeric primitives for widening comparisons.
// Types outside this table return -1.
func numericRank(t Type) int {
	switch {
	case t.kind == KindPrimitive && t.name == "int":
		return 0
	case t.kind == KindPrimitive && t.name == "float":
		return 1
	case t.kind == KindPrimitive && t.name == "double":
		return 2
	default:
		return -1
	}
}

// Equal reports whether a and b are the same type.
func Equal(a, b Type) bool {
	return a.kind == b.kind && a.name == b.name
}

// IsCompatibleWith reports whether a value of type `from` may be used
// where a value of type `to` is expected (assignment, argument passing,
// return-value checking). Compatibility is not symmetric.
//
// Rules, per spec:
//  1. Error is compatible with everything, and everything is compatible
//     with Error — once a sub-expression has failed to type-check, the
//     failure must not cascade into spurious further diagnostics.
//  2. A type is always compatible with itself.
//  3. Null is compatible with any Class type and with String, but not
//     with int/float/double/boolean or with Void.
//  4. Numeric widening: int -> float -> double, in the forward direction
//     only (a double is never compatible with an int destination).
//  5. Void is compatible with nothing but itself.
//  6. Two distinct class types are never compatible (no inheritance).
func IsCompatibleWith(from, to Type) bool {
	if from.kind == KindError || to.kind == KindError {
		return true
	}
	if Equal(from, to) {
		return true
	}
	if from.kind == KindVoid || to.kind == KindVoid {
		return false
	}
	if from.kind == KindNull {
		return to.kind == KindClass || Equal(to, String)
	}
	fromRank, toRank := numericRank(from), numericRank(to)
	if fromRank >= 0 && toRank >= 0 {
		return fromRank <= toRank
	}
	return false
}

// Registry resolves type names to Types, tracking both the five built-in
// primitives (plus void) and classes declared in the unit under analysis.
type Registry struct {
	classes map[string]Type
}

// NewRegistry creates a Registry seeded with no user classes; built-ins
// are resolved directly by Resolve without needing registration.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]Type)}
}

// RegisterClass records a user-declared class name. It returns an error
// if the name collides with a built-in primitive or void/null, since
// those names are reserved.
func (r *Registry) RegisterClass(name string) error {
	if isReservedName(name) {
		return fmt.Errorf("cannot declare class %q: shadows a built-in type name", name)
	}
	r.classes[name] = Class(name)
	return nil
}

func isReservedName(name string) bool {
	switch name {
	case "int", "float", "double", "boolean", "String", "void", "null":
		return true
	}
	return false
}

// HasClass reports whether name was registered via RegisterClass.
func (r *Registry) HasClass(name string) bool {
	_, ok := r.classes[name]
	return ok
}

// Resolve maps a type name appearing in source (a variable's declared
// type, a parameter type, a return type) to a Type. Built-in primitive
// and void names resolve directly. A registered class name resolves to
// its Class type. Any other name resolves to Error, since an unresolved
// type name is a semantic error the caller should report once and then
// treat the declaration's type as Error to stop cascading diagnostics.
func (r *Registry) Resolve(name string) Type {
	switch name {
	case "int":
		return Int
	case "float":
		return Float
	case "double":
		return Double
	case "boolean":
		return Boolean
	case "String":
		return String
	case "void":
		return Void
	}
	if t, ok := r.classes[name]; ok {
		return t
	}
	return Error
}
