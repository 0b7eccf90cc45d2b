package hostscan

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/naftah-lang/naftah/internal/errors"
)

// cacheDocument is the on-disk shape of a ClassScanningResult. Sets are
// stored as slices since YAML has no native set type; LoadCache/SaveCache
// convert at the boundary. Restorability is the only contract the cache
// file makes — the persisted form need not mirror the in-memory layout.
type cacheDocument struct {
	ClassNames            map[string]string          `yaml:"classNames"`
	ClassQualifiers       []string                    `yaml:"classQualifiers"`
	ArabicClassQualifiers []string                    `yaml:"arabicClassQualifiers"`
	Classes               map[string]*ClassHandle     `yaml:"classes"`
	AccessibleClasses     []string                    `yaml:"accessibleClasses"`
	InstantiableClasses   []string                    `yaml:"instantiableClasses"`
	JvmFunctions          map[string][]MethodDescriptor `yaml:"jvmFunctions"`
	BuiltinFunctions      map[string][]MethodDescriptor `yaml:"builtinFunctions"`
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func handleKeys(m map[string]*ClassHandle) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func toDocument(result *ClassScanningResult) *cacheDocument {
	return &cacheDocument{
		ClassNames:            result.ClassNames,
		ClassQualifiers:       setKeys(result.ClassQualifiers),
		ArabicClassQualifiers: setKeys(result.ArabicClassQualifiers),
		Classes:               result.Classes,
		AccessibleClasses:     handleKeys(result.AccessibleClasses),
		InstantiableClasses:   handleKeys(result.InstantiableClasses),
		JvmFunctions:          result.JvmFunctions,
		BuiltinFunctions:      result.BuiltinFunctions,
	}
}

func (d *cacheDocument) toResult() *ClassScanningResult {
	result := newResult()
	result.ClassNames = d.ClassNames
	for _, q := range d.ClassQualifiers {
		result.ClassQualifiers[q] = struct{}{}
	}
	for _, q := range d.ArabicClassQualifiers {
		result.ArabicClassQualifiers[q] = struct{}{}
	}
	result.Classes = d.Classes
	for _, name := range d.AccessibleClasses {
		if handle, ok := d.Classes[name]; ok {
			result.AccessibleClasses[name] = handle
		}
	}
	for _, name := range d.InstantiableClasses {
		if handle, ok := d.Classes[name]; ok {
			result.InstantiableClasses[name] = handle
		}
	}
	result.JvmFunctions = d.JvmFunctions
	result.BuiltinFunctions = d.BuiltinFunctions
	return result
}

// SaveCache writes result to path in YAML form so a later bootstrap can
// rehydrate from it instead of rescanning. A write failure is a
// CachePersistFailedError, never a fatal one — the bootstrap coordinator
// ignores it since the scan itself already succeeded.
func SaveCache(path string, result *ClassScanningResult) error {
	data, err := yaml.Marshal(toDocument(result))
	if err != nil {
		return errors.NewCachePersistFailedError(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewCachePersistFailedError(err)
	}
	return nil
}

// LoadCache reads a previously saved result from path. The caller decides
// whether a missing or corrupt cache should fall back to a fresh scan.
func LoadCache(path string) (*ClassScanningResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc cacheDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.toResult(), nil
}
