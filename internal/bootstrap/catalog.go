package bootstrap

import (
	"context"

	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/hostscan"
)

// Builtin implements exec.Catalog: built-in routines are available as soon
// as the Coordinator is constructed, independent of boot-strapping.
func (c *Coordinator) Builtin(name string) ([]*declare.Builtin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	builtins, ok := c.builtins[name]
	return builtins, ok
}

// HostMethod implements exec.Catalog: host-reflected overloads are only
// available once a scan has completed successfully.
func (c *Coordinator) HostMethod(qualifiedCall string) ([]*declare.HostMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return nil, false
	}
	descriptors, ok := c.result.JvmFunctions[qualifiedCall]
	if !ok {
		return nil, false
	}
	methods := make([]*declare.HostMethod, len(descriptors))
	for i, d := range descriptors {
		methods[i] = declare.NewHostMethod(d.Receiver, d.Method, d.ParamTypes, d.ReturnType, d.Static)
	}
	return methods, true
}

// HostScanningEnabled implements exec.Catalog: a qualified call may only
// resolve to a host method once boot-strapping has both been requested and
// completed successfully.
func (c *Coordinator) HostScanningEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shouldBootstrap && c.bootstrapped && c.result != nil
}

// topType is the generic top type ("any object") returned by JavaType when
// scanning was never requested, the scan failed, or qualifiedName was not
// found by the most recent scan.
var topType = &HostType{Qualified: "*", Kind: "top"}

// JavaType reports the host type discovered for qualifiedName, blocking
// until boot-strapping has finished if one is in flight. If scanning was
// never requested or the scan failed, or qualifiedName is absent from the
// result, it returns the generic top type rather than reporting a miss —
// every qualified name has some Java type, even if it was never scanned.
func (c *Coordinator) JavaType(ctx context.Context, qualifiedName string) *HostType {
	c.mu.RLock()
	should := c.shouldBootstrap
	c.mu.RUnlock()
	if !should {
		return topType
	}

	if _, err := c.Await(ctx); err != nil {
		return topType
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bootstrapFailed || c.result == nil {
		return topType
	}
	if handle, ok := c.result.InstantiableClasses[qualifiedName]; ok {
		return hostTypeFromHandle(handle)
	}
	if handle, ok := c.result.AccessibleClasses[qualifiedName]; ok {
		return hostTypeFromHandle(handle)
	}
	if handle, ok := c.result.Classes[qualifiedName]; ok {
		return hostTypeFromHandle(handle)
	}
	return topType
}

func hostTypeFromHandle(handle *hostscan.ClassHandle) *HostType {
	return &HostType{
		Qualified:    handle.Qualified,
		Kind:         handle.Kind,
		Accessible:   handle.Accessible,
		Instantiable: handle.Instantiable,
	}
}

// HostType is the public view of a discovered host class handed back by
// JavaType, decoupled from hostscan's internal ClassHandle representation.
type HostType struct {
	Qualified    string
	Kind         string
	Accessible   bool
	Instantiable bool
}

// GetCompletions returns every accessible host class and Arabic qualifier
// alias discovered by the most recent scan, for editor/REPL completion
// support.
func (c *Coordinator) GetCompletions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return nil
	}
	out := make([]string, 0, len(c.result.AccessibleClasses)+len(c.result.ArabicClassQualifiers))
	for qualified := range c.result.AccessibleClasses {
		out = append(out, qualified)
	}
	for alias := range c.result.ArabicClassQualifiers {
		out = append(out, alias)
	}
	return out
}

// Stats is a per-field size summary of the most recent scan result, for
// diagnostic reporting (the naftah classscan --stats command).
type Stats struct {
	Classes             int
	AccessibleClasses   int
	InstantiableClasses int
	JvmFunctions        int
	BuiltinFunctions    int
	ArabicAliases       int
}

// Stats returns the size of six ClassScanningResult fields (ClassNames and
// ClassQualifiers are not counted), or a zero-valued Stats if no scan has
// completed yet.
func (c *Coordinator) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil {
		return Stats{}
	}
	return Stats{
		Classes:             len(c.result.Classes),
		AccessibleClasses:   len(c.result.AccessibleClasses),
		InstantiableClasses: len(c.result.InstantiableClasses),
		JvmFunctions:        len(c.result.JvmFunctions),
		BuiltinFunctions:    len(c.result.BuiltinFunctions),
		ArabicAliases:       len(c.result.ArabicClassQualifiers),
	}
}
