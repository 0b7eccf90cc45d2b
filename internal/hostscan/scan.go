package hostscan

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/naftah-lang/naftah/internal/errors"
)

// workerLimit bounds every fan-out stage of the scan pipeline. Two workers
// are sufficient given the pipeline's shape: each stage fans out over the
// class set but the set itself is small relative to the cost of a single
// reflective load, and a wider pool buys nothing once the enumerator call
// itself is the bottleneck.
const workerLimit = 2

// ClassScanningResult is the consolidated outcome of one classpath scan.
// Every field is a plain map; cache.go converts the set-valued fields to
// slices when writing the cache file and back when reading it.
type ClassScanningResult struct {
	ClassNames            map[string]string // qualified name -> loader id
	ClassQualifiers       map[string]struct{}
	ArabicClassQualifiers map[string]struct{}
	Classes               map[string]*ClassHandle
	AccessibleClasses     map[string]*ClassHandle
	InstantiableClasses   map[string]*ClassHandle
	JvmFunctions          map[string][]MethodDescriptor
	BuiltinFunctions      map[string][]MethodDescriptor
}

func newResult() *ClassScanningResult {
	return &ClassScanningResult{
		ClassNames:            make(map[string]string),
		ClassQualifiers:       make(map[string]struct{}),
		ArabicClassQualifiers: make(map[string]struct{}),
		Classes:               make(map[string]*ClassHandle),
		AccessibleClasses:     make(map[string]*ClassHandle),
		InstantiableClasses:   make(map[string]*ClassHandle),
		JvmFunctions:          make(map[string][]MethodDescriptor),
		BuiltinFunctions:      make(map[string][]MethodDescriptor),
	}
}

// Scan runs the full host-class loader pipeline against enumerator: list the
// classpath, then resolve qualifiers, load class handles, classify
// accessibility/instantiability, and extract callable methods. The stages
// run one after another. The qualifier, handle-loading and method stages
// each fan out over a bounded worker pool; classification is a sequential
// pass over the loaded handles. Any stage failure is wrapped in a
// HostScanFailedError.
func Scan(ctx context.Context, enumerator Enumerator) (*ClassScanningResult, error) {
	refs, err := enumerator.Enumerate(ctx)
	if err != nil {
		return nil, errors.NewHostScanFailedError(err)
	}

	result := newResult()
	for _, ref := range refs {
		result.ClassNames[ref.Qualified] = ref.Loader
	}

	if err := scanQualifiers(ctx, enumerator, refs, result); err != nil {
		return nil, errors.NewHostScanFailedError(err)
	}

	if err := scanHandles(ctx, enumerator, refs, result); err != nil {
		return nil, errors.NewHostScanFailedError(err)
	}

	classifyHandles(result)

	if err := scanMethods(ctx, enumerator, result); err != nil {
		return nil, errors.NewHostScanFailedError(err)
	}

	return result, nil
}

// scanQualifiers computes each class's qualifier and, where the host
// environment registered one, its Arabic alias. NFC-normalizing the alias
// keeps combining-mark variants of the same Arabic string from registering
// as distinct qualifiers.
func scanQualifiers(ctx context.Context, enumerator Enumerator, refs []ClassRef, result *ClassScanningResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit)

	var mu sync.Mutex
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			mu.Lock()
			result.ClassQualifiers[ref.Qualified] = struct{}{}
			mu.Unlock()

			alias, ok := enumerator.Alias(gctx, ref)
			if !ok {
				return nil
			}
			normalized := norm.NFC.String(alias)
			mu.Lock()
			result.ArabicClassQualifiers[normalized] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// scanHandles resolves every class reference to its runtime handle.
func scanHandles(ctx context.Context, enumerator Enumerator, refs []ClassRef, result *ClassScanningResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit)

	var mu sync.Mutex
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			handle, err := enumerator.Handle(gctx, ref)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Classes[ref.Qualified] = handle
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// classifyHandles splits the loaded classes into accessible and
// instantiable subsets. Both subsets are derived from the same handle set,
// so no enumerator call is needed here — this stage is pure filtering.
func classifyHandles(result *ClassScanningResult) {
	for qualified, handle := range result.Classes {
		if handle.Accessible {
			result.AccessibleClasses[qualified] = handle
		}
		if handle.Instantiable {
			result.InstantiableClasses[qualified] = handle
		}
	}
}

// scanMethods extracts the reflective (jvmFunctions) and built-in
// (builtinFunctions) method tables from the union of the accessible and
// instantiable class sets: a class that is instantiable but not itself
// accessible (no exported methods/fields of its own) can still carry
// built-in-bridged methods and must not be skipped.
func scanMethods(ctx context.Context, enumerator Enumerator, result *ClassScanningResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit)

	handles := make(map[string]*ClassHandle, len(result.AccessibleClasses)+len(result.InstantiableClasses))
	for qualified, handle := range result.AccessibleClasses {
		handles[qualified] = handle
	}
	for qualified, handle := range result.InstantiableClasses {
		handles[qualified] = handle
	}

	var mu sync.Mutex
	for qualified, handle := range handles {
		ref := ClassRef{Qualified: qualified, Loader: handle.Loader}
		g.Go(func() error {
			methods, err := enumerator.Methods(gctx, ref)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, m := range methods {
				result.JvmFunctions[m.QualifiedCall()] = append(result.JvmFunctions[m.QualifiedCall()], m)
			}
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			methods, err := enumerator.BuiltinMethods(gctx, ref)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, m := range methods {
				result.BuiltinFunctions[m.QualifiedCall()] = append(result.BuiltinFunctions[m.QualifiedCall()], m)
			}
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
