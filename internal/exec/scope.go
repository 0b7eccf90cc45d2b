// Package exec implements the heart of the execution context: the scope
// chain, its call stack and loop stack, and the parse-tree execution
// annotation map. A Scope node owns four namespaces at once (variables,
// functions, parameters, arguments) plus loop variables, rather than the
// single-namespace environment a simpler interpreter would use.
//
// The evaluator (a tree walker, external to this module) is
// single-threaded and cooperative: all scope operations occur on that
// single thread and therefore require no locks among themselves.
package exec

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/errors"
)

// Scope is a single node in the name-resolution chain. Root scopes have a
// nil parent and depth 0; every other scope's depth is parent.depth + 1.
type Scope struct {
	parent *Scope
	depth  int

	variables  map[string]*declare.Variable
	functions  map[string]*declare.Function
	parameters map[string]*declare.Parameter
	arguments  map[string]declare.Value
	loopVars   map[string]declare.Value

	// present only in function-call scopes
	isCallScope   bool
	functionCallID string

	// present only in loop-iteration scopes
	isLoopScope bool
	loopLabel   string

	// transient evaluator-visit-context flags.
	// parsingFunctionCallID holds the name of the function whose parameter
	// list is currently being declared/parsed — distinct from
	// functionCallID above, which is the per-invocation id (with uuid) used
	// to canonicalize arguments. Parameters canonicalize against the
	// function's name ("<functionName>-<paramName>"), not against any one
	// call.
	parsingFunctionCallID string
	parsingAssignment     bool
	creatingObject        bool
	declOfAssignVar       *declare.Variable
	declOfAssignFlag      bool

	tree *executionMap
}

// NewRootScope creates a depth-0 scope with no parent.
func NewRootScope() *Scope {
	return &Scope{depth: 0}
}

// newChildScope creates a scope one level deeper than parent.
func newChildScope(parent *Scope) *Scope {
	return &Scope{parent: parent, depth: parent.depth + 1}
}

// Depth returns this scope's depth in the chain (root = 0).
func (s *Scope) Depth() int { return s.depth }

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// BeginCallScope marks this scope as hosting a function call and allocates
// its parameters/arguments tables. functionCallID has the form
// "<depth>-<functionName>-<uuid>".
func (s *Scope) BeginCallScope(functionName string) string {
	s.isCallScope = true
	s.functionCallID = fmt.Sprintf("%d-%s-%s", s.depth, functionName, uuid.NewString())
	s.parameters = make(map[string]*declare.Parameter)
	s.arguments = make(map[string]declare.Value)
	return s.functionCallID
}

// FunctionCallID returns this scope's call identifier, or "" if this is not
// a function-call scope.
func (s *Scope) FunctionCallID() string { return s.functionCallID }

// BeginLoopScope marks this scope as hosting a loop iteration block and
// allocates its loop-variables table.
func (s *Scope) BeginLoopScope(label string) {
	s.isLoopScope = true
	s.loopLabel = label
	s.loopVars = make(map[string]declare.Value)
}

// GetLoopLabel returns the nearest non-empty loopLabel walking from this
// scope upward, or "" if none is set anywhere in the chain.
func (s *Scope) GetLoopLabel() string {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.loopLabel != "" {
			return cur.loopLabel
		}
	}
	return ""
}

// --- transient flags ---

// ParsingFunctionCallID returns the name of the function whose parameters
// are currently being parsed, if any; parameter keys are built from it.
func (s *Scope) ParsingFunctionCallID() string { return s.parsingFunctionCallID }

// SetParsingFunctionCallID records the name of the function whose
// parameters are currently being parsed.
func (s *Scope) SetParsingFunctionCallID(id string) { s.parsingFunctionCallID = id }

// ParsingAssignment reports whether the evaluator is currently visiting the
// left-hand side of an assignment.
func (s *Scope) ParsingAssignment() bool { return s.parsingAssignment }

// SetParsingAssignment sets the parsing-assignment flag. Clearing it also
// clears DeclarationOfAssignment.
func (s *Scope) SetParsingAssignment(v bool) {
	s.parsingAssignment = v
	if !v {
		s.declOfAssignVar = nil
		s.declOfAssignFlag = false
	}
}

// CreatingObject reports whether the evaluator is currently inside an
// object-construction expression.
func (s *Scope) CreatingObject() bool { return s.creatingObject }

// SetCreatingObject sets the creating-object flag.
func (s *Scope) SetCreatingObject(v bool) { s.creatingObject = v }

// DeclarationOfAssignment returns the variable (if any) being declared as
// part of a combined declare-and-assign statement, and a discriminator flag.
func (s *Scope) DeclarationOfAssignment() (*declare.Variable, bool) {
	return s.declOfAssignVar, s.declOfAssignFlag
}

// SetDeclarationOfAssignment records the variable/flag pair for a combined
// declare-and-assign statement.
func (s *Scope) SetDeclarationOfAssignment(v *declare.Variable, flag bool) {
	s.declOfAssignVar = v
	s.declOfAssignFlag = flag
}

// --- canonical key derivation ---

// parameterKey canonicalizes a parameter name as "<functionName>-<paramName>".
// If no call is currently being parsed in this scope (root-level builtins),
// the name passes through unchanged.
func (s *Scope) parameterKey(name string) string {
	fn := s.parsingFunctionCallID
	if fn == "" {
		return name
	}
	return fn + "-" + name
}

// argumentKey canonicalizes an argument name as "<functionCallId>-<argName>".
func (s *Scope) argumentKey(name string) string {
	return s.functionCallID + "-" + name
}

// loopVariableKey canonicalizes a loop-variable name as "<loopLabel>-<varName>".
func loopVariableKey(label, name string) string {
	return label + "-" + name
}

// --- variables ---

// ContainsVariable reports whether name is bound in this scope or an ancestor.
func (s *Scope) ContainsVariable(name string) bool {
	_, _, ok := s.lookupVariable(name)
	return ok
}

func (s *Scope) lookupVariable(name string) (int, *declare.Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.variables != nil {
			if v, ok := cur.variables[name]; ok {
				return cur.depth, v, true
			}
		}
	}
	return 0, nil, false
}

// GetVariable resolves name, failing with NameNotFoundError if safe is
// false and the name is unbound, or returning a nil variable and a nil
// error if safe is true.
func (s *Scope) GetVariable(name string, safe bool) (int, *declare.Variable, error) {
	depth, v, ok := s.lookupVariable(name)
	if !ok {
		if safe {
			return 0, nil, nil
		}
		return 0, nil, errors.NewNameNotFoundError(errors.KindVariable, name)
	}
	return depth, v, nil
}

// SetVariable updates an existing binding in the nearest scope (self or
// ancestor) that defines it, or creates a new local binding if none exists.
func (s *Scope) SetVariable(name string, v *declare.Variable) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.variables != nil {
			if _, ok := cur.variables[name]; ok {
				cur.variables[name] = v
				return
			}
		}
	}
	s.defineVariableLocal(name, v)
}

// DefineVariable creates a local binding, failing with RedeclarationError if
// one already exists (unless lenient permits silent reuse).
func (s *Scope) DefineVariable(name string, v *declare.Variable, lenient bool) error {
	if s.variables != nil {
		if _, ok := s.variables[name]; ok {
			if lenient {
				return nil
			}
			return errors.NewRedeclarationError(errors.KindVariable, name)
		}
	}
	s.defineVariableLocal(name, v)
	return nil
}

func (s *Scope) defineVariableLocal(name string, v *declare.Variable) {
	if s.variables == nil {
		s.variables = make(map[string]*declare.Variable)
	}
	s.variables[name] = v
}

// --- functions (user-declared) ---

// ContainsFunction reports whether name is declared in this scope or an ancestor.
func (s *Scope) ContainsFunction(name string) bool {
	_, _, ok := s.lookupFunction(name)
	return ok
}

func (s *Scope) lookupFunction(name string) (int, *declare.Function, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.functions != nil {
			if f, ok := cur.functions[name]; ok {
				return cur.depth, f, true
			}
		}
	}
	return 0, nil, false
}

// GetDeclaredFunction resolves a user-declared function by walking the
// parent chain only (no built-ins/host methods); see ResolveFunction for
// the full resolution order used by the evaluator.
func (s *Scope) GetDeclaredFunction(name string, safe bool) (int, *declare.Function, error) {
	depth, f, ok := s.lookupFunction(name)
	if !ok {
		if safe {
			return 0, nil, nil
		}
		return 0, nil, errors.NewNameNotFoundError(errors.KindFunction, name)
	}
	return depth, f, nil
}

// DefineFunction declares a user function in the local scope.
func (s *Scope) DefineFunction(fn *declare.Function, lenient bool) error {
	if s.functions == nil {
		s.functions = make(map[string]*declare.Function)
	}
	if _, ok := s.functions[fn.Name]; ok {
		if lenient {
			return nil
		}
		return errors.NewRedeclarationError(errors.KindFunction, fn.Name)
	}
	s.functions[fn.Name] = fn
	return nil
}

// --- parameters (present only in function-call scopes) ---

// ContainsParameter reports whether name is bound as a parameter anywhere
// in the chain, under its canonical key.
func (s *Scope) ContainsParameter(name string) bool {
	_, _, ok := s.lookupParameter(name)
	return ok
}

func (s *Scope) lookupParameter(name string) (int, *declare.Parameter, bool) {
	key := s.parameterKey(name)
	for cur := s; cur != nil; cur = cur.parent {
		if cur.parameters != nil {
			if p, ok := cur.parameters[key]; ok {
				return cur.depth, p, true
			}
		}
	}
	return 0, nil, false
}

// GetParameter resolves a parameter by its canonical key.
func (s *Scope) GetParameter(name string, safe bool) (int, *declare.Parameter, error) {
	depth, p, ok := s.lookupParameter(name)
	if !ok {
		if safe {
			return 0, nil, nil
		}
		return 0, nil, errors.NewNameNotFoundError(errors.KindParameter, name)
	}
	return depth, p, nil
}

// DefineParameter binds a parameter in the local scope under its canonical
// key. The local scope must be a call scope (its parameters table is
// allocated by BeginCallScope).
func (s *Scope) DefineParameter(name string, p *declare.Parameter, lenient bool) error {
	if s.parameters == nil {
		s.parameters = make(map[string]*declare.Parameter)
	}
	key := s.parameterKey(name)
	if _, ok := s.parameters[key]; ok {
		if lenient {
			return nil
		}
		return errors.NewRedeclarationError(errors.KindParameter, name)
	}
	s.parameters[key] = p
	return nil
}

// --- arguments (present only in function-call scopes) ---

// ContainsArgument reports whether name is bound as an argument anywhere in
// the chain, under its canonical key.
func (s *Scope) ContainsArgument(name string) bool {
	_, _, ok := s.lookupArgument(name)
	return ok
}

// lookupArgument walks the parent chain looking for name in each ancestor's
// own arguments table, keyed by that ancestor's own functionCallId — every
// call scope canonicalizes its arguments against the call active in it, not
// against the scope resolution started from.
func (s *Scope) lookupArgument(name string) (int, declare.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.arguments != nil {
			key := cur.argumentKey(name)
			if v, ok := cur.arguments[key]; ok {
				return cur.depth, v, true
			}
		}
	}
	return 0, nil, false
}

// GetArgument resolves an argument by its canonical key.
func (s *Scope) GetArgument(name string, safe bool) (int, declare.Value, error) {
	depth, v, ok := s.lookupArgument(name)
	if !ok {
		if safe {
			return 0, nil, nil
		}
		return 0, nil, errors.NewNameNotFoundError(errors.KindArgument, name)
	}
	return depth, v, nil
}

// DefineArgument binds an argument value in the receiver's own arguments
// table under its canonical key: insertion always targets the receiving
// scope's own table, never the caller's payload.
func (s *Scope) DefineArgument(name string, v declare.Value, lenient bool) error {
	if s.arguments == nil {
		s.arguments = make(map[string]declare.Value)
	}
	key := s.argumentKey(name)
	if _, ok := s.arguments[key]; ok {
		if lenient {
			return nil
		}
		return errors.NewRedeclarationError(errors.KindArgument, name)
	}
	s.arguments[key] = v
	return nil
}

// --- loop variables (present only in loop scopes) ---

// ContainsLoopVariable reports whether name is bound as a loop variable
// anywhere in the chain, under its canonical key.
func (s *Scope) ContainsLoopVariable(name string) bool {
	_, _, ok := s.lookupLoopVariable(name)
	return ok
}

func (s *Scope) lookupLoopVariable(name string) (int, declare.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.loopVars != nil {
			key := loopVariableKey(cur.loopLabel, name)
			if v, ok := cur.loopVars[key]; ok {
				return cur.depth, v, true
			}
		}
	}
	return 0, nil, false
}

// GetLoopVariable resolves a loop variable by its canonical key.
func (s *Scope) GetLoopVariable(name string, safe bool) (int, declare.Value, error) {
	depth, v, ok := s.lookupLoopVariable(name)
	if !ok {
		if safe {
			return 0, nil, nil
		}
		return 0, nil, errors.NewNameNotFoundError(errors.KindLoopVariable, name)
	}
	return depth, v, nil
}

// DefineLoopVariable binds a loop variable in the local scope under its
// canonical key. The local scope must be a loop scope.
func (s *Scope) DefineLoopVariable(name string, v declare.Value, lenient bool) error {
	if s.loopVars == nil {
		s.loopVars = make(map[string]declare.Value)
	}
	key := loopVariableKey(s.loopLabel, name)
	if _, ok := s.loopVars[key]; ok {
		if lenient {
			return nil
		}
		return errors.NewRedeclarationError(errors.KindLoopVariable, name)
	}
	s.loopVars[key] = v
	return nil
}

// RemoveLoopVariable removes name if present; it fails only if the name is
// absent and lenient is false.
func (s *Scope) RemoveLoopVariable(name string, lenient bool) error {
	key := loopVariableKey(s.loopLabel, name)
	if s.loopVars == nil {
		if lenient {
			return nil
		}
		return errors.NewNameNotFoundError(errors.KindLoopVariable, name)
	}
	if _, ok := s.loopVars[key]; !ok {
		if lenient {
			return nil
		}
		return errors.NewNameNotFoundError(errors.KindLoopVariable, name)
	}
	delete(s.loopVars, key)
	return nil
}

// --- unified variable resolution ---

// ResolveVariable resolves a bare identifier to a runtime value, in the
// fixed order: loop variable, function argument, function parameter,
// ordinary declared variable. The first hit with a non-nil value wins;
// across levels the earliest non-nil value in that order wins even if a
// deeper scope shadows it with a later-checked kind.
func (s *Scope) ResolveVariable(name string) (declare.Value, bool) {
	if _, v, ok := s.lookupLoopVariable(name); ok && v != nil {
		return v, true
	}
	if _, v, ok := s.lookupArgument(name); ok && v != nil {
		return v, true
	}
	if _, p, ok := s.lookupParameter(name); ok && p.Current != nil {
		return p.Current, true
	}
	if _, v, ok := s.lookupVariable(name); ok && v.Current != nil {
		return v.Current, true
	}
	return nil, false
}
