package errors

import "fmt"

// NameKind discriminates which per-scope namespace a name-resolution error
// concerns: variable, function, parameter, argument, or loop variable.
type NameKind int

const (
	KindVariable NameKind = iota
	KindFunction
	KindParameter
	KindArgument
	KindLoopVariable
)

// String renders a NameKind for error messages.
func (k NameKind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindParameter:
		return "parameter"
	case KindArgument:
		return "argument"
	case KindLoopVariable:
		return "loop variable"
	default:
		return "name"
	}
}

// NameNotFoundError is reported by an unsafe Get on an unbound name.
// It is a user-facing diagnostic: the evaluator may attach a source
// position and render it as a CompilerError.
type NameNotFoundError struct {
	Kind NameKind
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("undeclared %s: %s", e.Kind, e.Name)
}

// NewNameNotFoundError builds a NameNotFoundError for the given namespace.
func NewNameNotFoundError(kind NameKind, name string) *NameNotFoundError {
	return &NameNotFoundError{Kind: kind, Name: name}
}

// RedeclarationError is reported by Define on a name already bound in the
// current scope, when the namespace's lenient flag does not permit silent
// reuse. User-facing, like NameNotFoundError.
type RedeclarationError struct {
	Kind NameKind
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("%s already declared: %s", e.Kind, e.Name)
}

// NewRedeclarationError builds a RedeclarationError for the given namespace.
func NewRedeclarationError(kind NameKind, name string) *RedeclarationError {
	return &RedeclarationError{Kind: kind, Name: name}
}

// IllegalScopeCreationError denotes a program-structure bug in scope
// creation: either a non-root scope was requested while the registry held
// no scopes at all, or a second root scope was requested outside REPL mode.
type IllegalScopeCreationError struct {
	Reason string
}

func (e *IllegalScopeCreationError) Error() string {
	return "illegal scope creation: " + e.Reason
}

// NewIllegalScopeCreationError builds an IllegalScopeCreationError with the
// given explanation.
func NewIllegalScopeCreationError(reason string) *IllegalScopeCreationError {
	return &IllegalScopeCreationError{Reason: reason}
}

// EmptyStackPopError denotes a program-structure bug: popCall or popLoop was
// invoked against an empty stack.
type EmptyStackPopError struct {
	Stack string // "call" or "loop"
}

func (e *EmptyStackPopError) Error() string {
	return fmt.Sprintf("pop from empty %s stack", e.Stack)
}

// NewEmptyStackPopError builds an EmptyStackPopError naming the stack kind.
func NewEmptyStackPopError(stack string) *EmptyStackPopError {
	return &EmptyStackPopError{Stack: stack}
}

// HostScanFailedError wraps the cause of a failed host-classpath scan. The
// bootstrap coordinator recovers from it by installing default built-ins
// and setting BOOT_STRAP_FAILED; it is still surfaced to callers that asked
// for the scan result directly.
type HostScanFailedError struct {
	Cause error
}

func (e *HostScanFailedError) Error() string {
	return fmt.Sprintf("host classpath scan failed: %v", e.Cause)
}

func (e *HostScanFailedError) Unwrap() error {
	return e.Cause
}

// NewHostScanFailedError wraps cause as a HostScanFailedError.
func NewHostScanFailedError(cause error) *HostScanFailedError {
	return &HostScanFailedError{Cause: cause}
}

// CachePersistFailedError denotes that writing the classpath-scan cache file
// after a successful scan failed. The scan result itself is still valid and
// installed; only the cache write is lost.
type CachePersistFailedError struct {
	Cause error
}

func (e *CachePersistFailedError) Error() string {
	return fmt.Sprintf("failed to persist classpath scan cache: %v", e.Cause)
}

func (e *CachePersistFailedError) Unwrap() error {
	return e.Cause
}

// NewCachePersistFailedError wraps cause as a CachePersistFailedError.
func NewCachePersistFailedError(cause error) *CachePersistFailedError {
	return &CachePersistFailedError{Cause: cause}
}

// InvalidSignalError denotes a program-structure bug: a loop-signal details
// record was constructed with no signal kind.
type InvalidSignalError struct{}

func (e *InvalidSignalError) Error() string {
	return "signal details constructed with no signal kind"
}

// NewInvalidSignalError builds an InvalidSignalError.
func NewInvalidSignalError() *InvalidSignalError {
	return &InvalidSignalError{}
}

// IsNameNotFound reports whether err is a NameNotFoundError.
func IsNameNotFound(err error) bool {
	_, ok := err.(*NameNotFoundError)
	return ok
}

// IsRedeclaration reports whether err is a RedeclarationError.
func IsRedeclaration(err error) bool {
	_, ok := err.(*RedeclarationError)
	return ok
}

// IsProgramStructureBug reports whether err denotes an internal
// program-structure bug — misuse of the call stack, loop stack, scope
// registry, or signal construction — rather than a user-facing diagnostic. Such errors must abort
// the current evaluation rather than be surfaced as ordinary runtime errors.
func IsProgramStructureBug(err error) bool {
	switch err.(type) {
	case *IllegalScopeCreationError, *EmptyStackPopError, *InvalidSignalError:
		return true
	default:
		return false
	}
}
