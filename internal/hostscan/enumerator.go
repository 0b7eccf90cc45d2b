// Package hostscan implements the host-class loader: asynchronous discovery
// of host classes and their callable methods, consolidated into a
// ClassScanningResult that the bootstrap coordinator (internal/bootstrap)
// installs into the process-wide function tables and persists to the cache
// file.
//
// Naftah's host platform is the JVM, reached through qualified calls like
// java.util.ArrayList.add. Without a JVM bridge to scan, the "classpath"
// here is a set of registered Go types (ReflectEnumerator): reflection
// discovers exported methods and constructible types the way a real
// classpath scan discovers public static members and instantiable classes.
package hostscan

import "context"

// ClassRef identifies one class found during enumeration: its fully
// qualified name and an identifier for whichever class loader supplied it.
type ClassRef struct {
	Qualified string
	Loader    string
}

// Enumerator scans the classpath and resolves individual classes. A single
// implementation backs one Scan call; ReflectEnumerator is the concrete
// implementation this module ships.
type Enumerator interface {
	// Enumerate lists every class visible on the classpath.
	Enumerate(ctx context.Context) ([]ClassRef, error)
	// Handle resolves a class reference to its runtime handle.
	Handle(ctx context.Context, ref ClassRef) (*ClassHandle, error)
	// Alias returns ref's localized (Arabic) qualifier alias, if the host
	// environment registered one.
	Alias(ctx context.Context, ref ClassRef) (string, bool)
	// Methods returns the reflective method descriptors for ref.
	Methods(ctx context.Context, ref ClassRef) ([]MethodDescriptor, error)
	// BuiltinMethods returns the built-in method descriptors bridged in for
	// ref, if any.
	BuiltinMethods(ctx context.Context, ref ClassRef) ([]MethodDescriptor, error)
}

// ClassHandle is the runtime handle for one discovered class: enough
// metadata to classify it as accessible/instantiable and to serialize into
// the cache file.
type ClassHandle struct {
	Qualified    string
	Loader       string
	Kind         string // e.g. "struct", "interface"
	Accessible   bool   // has at least one exported member
	Instantiable bool   // constructible from outside
}

// MethodDescriptor describes a single callable reachable through a
// qualified call (Receiver.method). The same shape serves both
// reflectively-discovered methods (jvmFunctions) and built-in ones
// (builtinFunctions); which map a descriptor lands in is determined by
// which Enumerator method produced it.
type MethodDescriptor struct {
	Receiver   string
	Method     string
	ParamTypes []string
	ReturnType string
	Static     bool
}

// QualifiedCall returns the dotted Receiver.method name used to look this
// descriptor up in ClassScanningResult.JvmFunctions/BuiltinFunctions.
func (m MethodDescriptor) QualifiedCall() string {
	return m.Receiver + "." + m.Method
}
