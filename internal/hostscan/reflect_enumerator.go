package hostscan

import (
	"context"
	"fmt"
	"reflect"
)

// ReflectEnumerator is the Enumerator this module ships: it discovers host
// classes and their callable methods over a fixed set of registered Go
// values, using reflect.Type in place of a jar/classpath walk. Each
// registered value stands in for one host class; its exported methods
// become the class's jvmFunctions.
type ReflectEnumerator struct {
	// Provider maps a qualified class name to a representative value of
	// that type (the zero value is sufficient — only its reflect.Type is
	// inspected).
	Provider map[string]any
	// Aliases maps a qualified class name to its localized (Arabic)
	// qualifier, for classes the host environment chose to alias.
	Aliases map[string]string
	// BuiltinBridge maps a qualified class name to the built-in methods
	// bridged in for it: wrapper functions that expose select host-class
	// behavior as ordinary built-ins rather than through reflection.
	BuiltinBridge map[string][]MethodDescriptor
}

// Enumerate lists every class registered with the provider.
func (e *ReflectEnumerator) Enumerate(ctx context.Context) ([]ClassRef, error) {
	refs := make([]ClassRef, 0, len(e.Provider))
	for qualified := range e.Provider {
		refs = append(refs, ClassRef{Qualified: qualified, Loader: "reflect"})
	}
	return refs, nil
}

// Handle reflects over the registered value and classifies it.
func (e *ReflectEnumerator) Handle(ctx context.Context, ref ClassRef) (*ClassHandle, error) {
	value, ok := e.Provider[ref.Qualified]
	if !ok {
		return nil, fmt.Errorf("hostscan: no class registered as %q", ref.Qualified)
	}
	t := reflect.TypeOf(value)
	if t == nil {
		return nil, fmt.Errorf("hostscan: %q registered a nil value", ref.Qualified)
	}

	accessible := t.NumMethod() > 0
	underlying := t
	if underlying.Kind() == reflect.Ptr {
		underlying = underlying.Elem()
	}
	if underlying.Kind() == reflect.Struct {
		for i := 0; i < underlying.NumField(); i++ {
			if underlying.Field(i).IsExported() {
				accessible = true
				break
			}
		}
	}

	return &ClassHandle{
		Qualified:    ref.Qualified,
		Loader:       ref.Loader,
		Kind:         underlying.Kind().String(),
		Accessible:   accessible,
		Instantiable: underlying.Kind() == reflect.Struct,
	}, nil
}

// Alias returns the registered Arabic qualifier for ref, if any.
func (e *ReflectEnumerator) Alias(ctx context.Context, ref ClassRef) (string, bool) {
	alias, ok := e.Aliases[ref.Qualified]
	return alias, ok
}

// Methods reflects over the registered value's method set and produces one
// descriptor per exported method.
func (e *ReflectEnumerator) Methods(ctx context.Context, ref ClassRef) ([]MethodDescriptor, error) {
	value, ok := e.Provider[ref.Qualified]
	if !ok {
		return nil, fmt.Errorf("hostscan: no class registered as %q", ref.Qualified)
	}
	t := reflect.TypeOf(value)

	descriptors := make([]MethodDescriptor, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if method.PkgPath != "" {
			continue // unexported
		}
		descriptors = append(descriptors, describeMethod(ref.Qualified, method))
	}
	return descriptors, nil
}

// BuiltinMethods returns the bridged-in built-in methods registered for ref.
func (e *ReflectEnumerator) BuiltinMethods(ctx context.Context, ref ClassRef) ([]MethodDescriptor, error) {
	return e.BuiltinBridge[ref.Qualified], nil
}

func describeMethod(receiver string, method reflect.Method) MethodDescriptor {
	fnType := method.Func.Type()

	// Skip the receiver argument (index 0) when the method was obtained
	// from a value's type, matching what a caller actually supplies.
	params := make([]string, 0, fnType.NumIn()-1)
	for i := 1; i < fnType.NumIn(); i++ {
		params = append(params, fnType.In(i).String())
	}

	returnType := "void"
	if fnType.NumOut() > 0 {
		returnType = fnType.Out(0).String()
	}

	return MethodDescriptor{
		Receiver:   receiver,
		Method:     method.Name,
		ParamTypes: params,
		ReturnType: returnType,
		Static:     false,
	}
}
