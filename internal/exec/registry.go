package exec

import "github.com/naftah-lang/naftah/internal/errors"

// Registry is the process-wide index of scope nodes keyed by depth, plus
// the call stack and loop stack. It is an explicit, owned value rather than
// package-level globals: scopes, calls, and loops all live behind one
// Registry that is passed in explicitly rather than threaded through global
// statics. One Registry corresponds to one interpreter process.
type Registry struct {
	scopes     map[int]*Scope
	insideREPL bool

	calls *CallStack
	loops *LoopStack
}

// NewRegistry creates an empty registry. insideREPL relaxes the
// single-root-scope invariant, since a REPL legitimately registers a fresh
// root scope for every statement it evaluates.
func NewRegistry(insideREPL bool) *Registry {
	return &Registry{
		scopes:     make(map[int]*Scope),
		insideREPL: insideREPL,
		calls:      NewCallStack(),
		loops:      NewLoopStack(),
	}
}

// RegisterContext constructs a new scope and inserts it into the registry.
// parent nil requests a root scope (depth 0); a non-nil parent requests a
// child scope at parent.depth+1.
//
// Creating a non-root scope while the registry is empty, or creating a
// second root scope while not in REPL mode, is a program-structure bug
// (IllegalScopeCreationError).
func (r *Registry) RegisterContext(parent *Scope) (*Scope, error) {
	if parent == nil {
		if len(r.scopes) > 0 && !r.insideREPL {
			return nil, errors.NewIllegalScopeCreationError("a root scope already exists outside REPL mode")
		}
		s := NewRootScope()
		r.scopes[s.depth] = s
		return s, nil
	}

	if len(r.scopes) == 0 {
		return nil, errors.NewIllegalScopeCreationError("cannot create a non-root scope in an empty registry")
	}
	s := newChildScope(parent)
	r.scopes[s.depth] = s
	return s, nil
}

// GetContextByDepth returns the scope currently registered at depth d, if any.
func (r *Registry) GetContextByDepth(d int) (*Scope, bool) {
	s, ok := r.scopes[d]
	return s, ok
}

// DeregisterContext removes and returns the scope at depth d, merging its
// parse-tree execution map into its parent's if both exist.
func (r *Registry) DeregisterContext(d int) (*Scope, bool) {
	s, ok := r.scopes[d]
	if !ok {
		return nil, false
	}
	delete(r.scopes, d)
	if s.parent != nil {
		if parent, stillRegistered := r.scopes[s.parent.depth]; stillRegistered {
			s.mergeParseTreeInto(parent)
		} else {
			s.mergeParseTreeInto(s.parent)
		}
	}
	return s, true
}

// Calls returns the process-wide call stack.
func (r *Registry) Calls() *CallStack { return r.calls }

// Loops returns the process-wide loop stack.
func (r *Registry) Loops() *LoopStack { return r.loops }

// Len reports how many scopes are currently registered.
func (r *Registry) Len() int { return len(r.scopes) }
