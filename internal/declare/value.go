// Package declare holds the passive record types the execution context
// binds names to: declared variables, parameters, user-defined functions,
// and the descriptors for built-in and host-reflected callables. These are
// value objects with no behavior of their own, in the spirit of the
// teacher's runtime.Value / runtime.ObjectInstance records
// (internal/interp/runtime/value_interfaces.go, object.go).
package declare

// Value is any runtime value a declared variable, parameter, or argument
// can hold. The concrete value representation (integers, strings, object
// instances, ...) belongs to the evaluator's domain and is out of scope
// here; the execution context only needs to store and retrieve it.
type Value interface {
	// Type returns the runtime type name of the value, used in diagnostics.
	Type() string
	// String returns the value's display representation.
	String() string
}

// TypeMeta describes the declared (static) type of a variable or parameter,
// independent of the runtime value currently held. The concrete type system
// is an external collaborator; TypeMeta is the minimal handle the execution
// context threads through without interpreting it.
type TypeMeta struct {
	Name string
}

// Variable is a declared variable: a mutable binding with a current value
// and a declared type. The current value may be nil until first assigned.
type Variable struct {
	Name    string
	Current Value
	Type    TypeMeta
}

// NewVariable declares a variable with the given name and type, unassigned.
func NewVariable(name string, typ TypeMeta) *Variable {
	return &Variable{Name: name, Type: typ}
}

// Parameter is a declared function parameter. It is structurally identical
// to Variable — both carry a current value (nullable) and type metadata —
// but kept as a distinct type since it occupies a distinct namespace at
// resolution time.
type Parameter struct {
	Name    string
	Current Value
	Type    TypeMeta
}

// NewParameter declares a parameter with the given name and type, unassigned.
func NewParameter(name string, typ TypeMeta) *Parameter {
	return &Parameter{Name: name, Type: typ}
}

// FunctionBody is the parse-tree node for a user-defined function's body.
// Kept as `any` here to avoid this package depending on internal/ast for a
// single field; callers type-assert to their concrete node type.
type FunctionBody any

// Function is a user-defined function declaration: its formal parameters
// and a reference to its body in the parse tree.
type Function struct {
	Name       string
	Parameters []*Parameter
	Body       FunctionBody
}

// NewFunction declares a user function with the given name, parameters, and
// body reference.
func NewFunction(name string, params []*Parameter, body FunctionBody) *Function {
	return &Function{Name: name, Parameters: params, Body: body}
}

// CallableKind discriminates the three callable descriptor kinds that share
// the function name-space at resolution time: built-in and host-reflected
// functions are distinct records but occupy the same lookup name-space as
// user functions.
type CallableKind int

const (
	CallableUser CallableKind = iota
	CallableBuiltin
	CallableHost
)

// Builtin describes a built-in routine: a name and arity/variadic marker,
// with the actual Go implementation supplied by the evaluator (external
// collaborator) via an opaque handle.
type Builtin struct {
	Name    string
	Arity   int
	Variadic bool
	Impl    any
}

// NewBuiltin describes a built-in routine.
func NewBuiltin(name string, arity int, variadic bool, impl any) *Builtin {
	return &Builtin{Name: name, Arity: arity, Variadic: variadic, Impl: impl}
}

// HostMethod describes a single reflected method on a host class, reachable
// through a qualified call (Receiver.method). ReturnType/ParamTypes are the
// host type system's own type names, passed through unexamined.
type HostMethod struct {
	Receiver   string
	Method     string
	ParamTypes []string
	ReturnType string
	Static     bool
}

// NewHostMethod describes a single host-reflected method.
func NewHostMethod(receiver, method string, paramTypes []string, returnType string, static bool) *HostMethod {
	return &HostMethod{
		Receiver:   receiver,
		Method:     method,
		ParamTypes: paramTypes,
		ReturnType: returnType,
		Static:     static,
	}
}
