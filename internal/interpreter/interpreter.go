// Package interpreter wires the execution context (internal/exec), the
// bootstrap coordinator (internal/bootstrap), and process configuration
// (internal/config) into a single owned value, passed explicitly rather
// than threaded through global statics.
package interpreter

import (
	"context"

	"github.com/naftah-lang/naftah/internal/bootstrap"
	"github.com/naftah-lang/naftah/internal/config"
	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/exec"
	"github.com/naftah-lang/naftah/internal/hostscan"
)

// defaultCachePath is the file the bootstrap coordinator persists a
// successful scan to and rehydrates from on a later run.
const defaultCachePath = "bin/.naftah_cache"

// Interpreter owns everything a running program needs outside the parse
// tree itself: the scope registry (and, through it, the call and loop
// stacks) and the bootstrap coordinator that feeds host-reflected methods
// into function resolution.
type Interpreter struct {
	Registry    *exec.Registry
	Coordinator *bootstrap.Coordinator
	Flags       config.Flags

	Root *exec.Scope
}

// New constructs an Interpreter: it creates the root scope and a bootstrap
// coordinator configured from the process environment and the given
// enumerator. It does not itself run Bootstrap — callers decide when,
// matching the coordinator's own SHOULD_BOOT_STRAP/async split.
func New(enumerator hostscan.Enumerator, builtins map[string][]*declare.Builtin) (*Interpreter, error) {
	flags := config.Load()

	registry := exec.NewRegistry(flags.InsideREPL)
	root, err := registry.RegisterContext(nil)
	if err != nil {
		return nil, err
	}

	coordinator := bootstrap.NewCoordinator(
		enumerator,
		flags.ScanClasspath,
		bootstrap.WithCachePath(defaultCachePath),
		bootstrap.WithForceBootstrap(flags.ForceScan),
		bootstrap.WithBuiltins(builtins),
	)

	return &Interpreter{
		Registry:    registry,
		Coordinator: coordinator,
		Flags:       flags,
		Root:        root,
	}, nil
}

// Bootstrap runs the host-class loader per the coordinator's configured
// policy, synchronously or in the background depending on async.
func (i *Interpreter) Bootstrap(ctx context.Context, async bool) {
	i.Coordinator.Bootstrap(ctx, async)
}

// ResolveFunction resolves name against the current scope, consulting the
// interpreter's own bootstrap coordinator as the exec.Catalog.
func (i *Interpreter) ResolveFunction(scope *exec.Scope, name string) exec.Resolution {
	return scope.ResolveFunction(name, i.Coordinator)
}
