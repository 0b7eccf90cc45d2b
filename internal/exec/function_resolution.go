package exec

import (
	"strings"

	"github.com/naftah-lang/naftah/internal/declare"
)

// Catalog supplies the process-wide function tables that sit outside the
// scope chain: built-ins and (once a classpath scan has completed)
// host-reflected methods. It is implemented by the bootstrap coordinator
// (internal/bootstrap) and passed in explicitly to avoid a dependency from
// exec onto bootstrap — the scope chain only needs to consult it, not own
// it.
type Catalog interface {
	// Builtin looks up built-in overloads by name.
	Builtin(name string) ([]*declare.Builtin, bool)
	// HostMethod looks up host-reflected overloads by qualified call
	// (Receiver.method). Only consulted when HostScanningEnabled is true.
	HostMethod(qualifiedCall string) ([]*declare.HostMethod, bool)
	// HostScanningEnabled reports whether the loader has completed and host
	// methods may be consulted at all.
	HostScanningEnabled() bool
}

// Resolution is the result of resolving a function name: either the single
// user-declared function that matched, or the built-in and/or host-method
// candidate lists for the evaluator to pick from. Built-in and host
// candidates are always returned as lists, even when only one overload
// exists — unwrapping a singleton list at this layer only complicates the
// caller's typing for no benefit.
type Resolution struct {
	User     *declare.Function
	Builtins []*declare.Builtin
	Host     []*declare.HostMethod
}

// Found reports whether resolution matched anything at all.
func (r Resolution) Found() bool {
	return r.User != nil || len(r.Builtins) > 0 || len(r.Host) > 0
}

// isQualifiedCall reports whether name has the dotted Receiver.method shape
// used to address host-reflected methods.
func isQualifiedCall(name string) bool {
	dot := strings.IndexByte(name, '.')
	return dot > 0 && dot < len(name)-1
}

// ResolveFunction implements function resolution, which differs from
// ResolveVariable: it first walks the parent chain's user-declared
// functions table, then (only once the parent walk reaches the root)
// consults built-ins, then — only if name is a qualified call and host
// scanning is enabled — consults host-reflected methods.
func (s *Scope) ResolveFunction(name string, catalog Catalog) Resolution {
	if _, fn, ok := s.lookupFunction(name); ok {
		return Resolution{User: fn}
	}

	var res Resolution
	if builtins, ok := catalog.Builtin(name); ok {
		res.Builtins = builtins
	}

	if isQualifiedCall(name) && catalog.HostScanningEnabled() {
		if methods, ok := catalog.HostMethod(name); ok {
			res.Host = methods
		}
	}

	return res
}
