// Package bootstrap implements the bootstrap coordinator: the process-wide
// state machine that decides whether, and how, to run the host-class
// loader (internal/hostscan) before the first qualified call is resolved,
// and that exposes the resulting tables to the execution context through
// the exec.Catalog interface.
package bootstrap

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/hostscan"
)

// Coordinator owns the five boot-strap flags (SHOULD_BOOT_STRAP,
// FORCE_BOOT_STRAP, ASYNC_BOOT_STRAP, BOOT_STRAP_FAILED, BOOT_STRAPPED) as
// fields rather than package-level globals: this state belongs to an owned
// value, not process statics. One Coordinator is created per interpreter
// (internal/interpreter).
type Coordinator struct {
	mu sync.RWMutex

	shouldBootstrap bool
	forceBootstrap  bool
	asyncBootstrap  bool
	bootstrapFailed bool
	bootstrapped    bool

	cachePath  string
	enumerator hostscan.Enumerator
	builtins   map[string][]*declare.Builtin

	result *hostscan.ClassScanningResult

	done     chan struct{}
	closeFn  sync.Once
	inflight singleflight.Group
}

// Option configures a Coordinator at construction time.
type Option func(*Coordinator)

// WithCachePath sets the file a successful scan is persisted to and a
// subsequent bootstrap may rehydrate from.
func WithCachePath(path string) Option {
	return func(c *Coordinator) { c.cachePath = path }
}

// WithForceBootstrap sets FORCE_BOOT_STRAP, skipping cache rehydration and
// always running a fresh scan.
func WithForceBootstrap(force bool) Option {
	return func(c *Coordinator) { c.forceBootstrap = force }
}

// WithBuiltins seeds the built-in routine table consulted by Builtin.
func WithBuiltins(builtins map[string][]*declare.Builtin) Option {
	return func(c *Coordinator) { c.builtins = builtins }
}

// NewCoordinator creates a Coordinator that will scan using enumerator when
// asked to bootstrap. shouldBootstrap mirrors SHOULD_BOOT_STRAP: when false,
// Bootstrap runs no scan and only marks boot-strapping complete, and
// qualified calls never resolve to host methods.
func NewCoordinator(enumerator hostscan.Enumerator, shouldBootstrap bool, opts ...Option) *Coordinator {
	c := &Coordinator{
		shouldBootstrap: shouldBootstrap,
		enumerator:      enumerator,
		builtins:        make(map[string][]*declare.Builtin),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bootstrap runs the boot-strap algorithm:
//
//  1. If SHOULD_BOOT_STRAP is false, mark boot-strapping complete with no
//     host tables and stop; built-ins stay available.
//  2. If FORCE_BOOT_STRAP is set, skip the cache and run a full classpath
//     scan.
//  3. Otherwise try to rehydrate from the cache file; a missing or corrupt
//     cache falls back to a full scan.
//  4. A scan failure sets BOOT_STRAP_FAILED and leaves host method
//     resolution permanently disabled for this Coordinator; it never
//     retries on its own.
//
// Concurrent callers collapse onto a single in-flight run via singleflight,
// tolerating being asked to bootstrap from more than one entry point at
// once. When async is true, Bootstrap starts the work in a goroutine and
// returns immediately; callers that need the result wait on Await.
func (c *Coordinator) Bootstrap(ctx context.Context, async bool) {
	c.mu.Lock()
	c.asyncBootstrap = async
	c.mu.Unlock()

	run := func() {
		c.inflight.Do("bootstrap", func() (any, error) {
			c.runOnce(ctx)
			return nil, nil
		})
	}

	if async {
		go run()
		return
	}
	run()
}

func (c *Coordinator) runOnce(ctx context.Context) {
	defer c.closeFn.Do(func() { close(c.done) })

	c.mu.RLock()
	should := c.shouldBootstrap
	force := c.forceBootstrap
	cachePath := c.cachePath
	c.mu.RUnlock()

	if !should {
		// Not scanning: built-in functions are still available (Builtin
		// never depends on a scan), so boot-strapping is considered
		// complete with every host table left nil.
		c.install(nil, nil)
		return
	}

	if !force && cachePath != "" {
		if cached, err := hostscan.LoadCache(cachePath); err == nil {
			c.install(cached, nil)
			return
		}
		// Missing or corrupt cache: fall through to a full rescan.
	}

	result, err := hostscan.Scan(ctx, c.enumerator)
	if err != nil {
		c.install(nil, err)
		return
	}

	if cachePath != "" {
		_ = hostscan.SaveCache(cachePath, result) // persist failure is non-fatal
	}
	c.install(result, nil)
}

func (c *Coordinator) install(result *hostscan.ClassScanningResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.bootstrapFailed = true
		return
	}
	c.result = result
	c.bootstrapped = true
}

// Await blocks until the first Bootstrap run has finished, or ctx is
// cancelled first. Once that run is done Await returns at once, even while
// a later Bootstrap call is still running. It reports whether
// boot-strapping has completed successfully.
func (c *Coordinator) Await(ctx context.Context) (bool, error) {
	select {
	case <-c.done:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.bootstrapped, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Bootstrapped reports BOOT_STRAPPED without blocking.
func (c *Coordinator) Bootstrapped() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bootstrapped
}

// Failed reports BOOT_STRAP_FAILED without blocking.
func (c *Coordinator) Failed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bootstrapFailed
}
