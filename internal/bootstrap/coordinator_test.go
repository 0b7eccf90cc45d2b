package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/naftah-lang/naftah/internal/declare"
	"github.com/naftah-lang/naftah/internal/hostscan"
)

type widget struct{}

func (w *widget) Spin() int { return 1 }

func testEnumerator() *hostscan.ReflectEnumerator {
	return &hostscan.ReflectEnumerator{
		Provider: map[string]any{"host.Widget": &widget{}},
	}
}

func TestBootstrap_Disabled_NeverRunsScan(t *testing.T) {
	c := NewCoordinator(testEnumerator(), false)
	c.Bootstrap(context.Background(), false)

	ok, err := c.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if !ok {
		t.Fatal("boot-strapping with SHOULD_BOOT_STRAP=false should still complete successfully")
	}
	if c.HostScanningEnabled() {
		t.Fatal("host scanning must stay disabled")
	}
}

func TestBootstrap_Sync_PopulatesCatalog(t *testing.T) {
	c := NewCoordinator(testEnumerator(), true)
	c.Bootstrap(context.Background(), false)

	ok, err := c.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if !ok {
		t.Fatal("bootstrap should have succeeded")
	}
	if !c.HostScanningEnabled() {
		t.Fatal("host scanning should be enabled after a successful bootstrap")
	}

	methods, found := c.HostMethod("host.Widget.Spin")
	if !found || len(methods) != 1 {
		t.Fatalf("expected host.Widget.Spin to resolve, got found=%v methods=%v", found, methods)
	}

	hostType := c.JavaType(context.Background(), "host.Widget")
	if hostType.Qualified != "host.Widget" {
		t.Fatalf("JavaType should find host.Widget, got %+v", hostType)
	}
	if !hostType.Instantiable {
		t.Error("host.Widget should be instantiable")
	}
}

func TestBootstrap_Async_AwaitBlocksUntilDone(t *testing.T) {
	c := NewCoordinator(testEnumerator(), true)
	c.Bootstrap(context.Background(), true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ok, err := c.Await(ctx)
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if !ok {
		t.Fatal("async bootstrap should have succeeded")
	}
}

func TestBootstrap_CacheRehydration_SkipsRescan(t *testing.T) {
	path := t.TempDir() + "/cache.yaml"

	seed := NewCoordinator(testEnumerator(), true, WithCachePath(path))
	seed.Bootstrap(context.Background(), false)
	if _, err := seed.Await(context.Background()); err != nil {
		t.Fatalf("seed Await returned error: %v", err)
	}

	rehydrated := NewCoordinator(&explodingEnumerator{}, true, WithCachePath(path))
	rehydrated.Bootstrap(context.Background(), false)
	ok, err := rehydrated.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if !ok {
		t.Fatal("rehydration from a valid cache should succeed without scanning")
	}
	if _, found := rehydrated.HostMethod("host.Widget.Spin"); !found {
		t.Fatal("rehydrated coordinator should still resolve host.Widget.Spin")
	}
}

func TestBootstrap_ScanFailure_SetsFailed(t *testing.T) {
	c := NewCoordinator(&explodingEnumerator{}, true)
	c.Bootstrap(context.Background(), false)

	ok, err := c.Await(context.Background())
	if err != nil {
		t.Fatalf("Await returned error: %v", err)
	}
	if ok {
		t.Fatal("bootstrap should report failure")
	}
	if !c.Failed() {
		t.Fatal("BOOT_STRAP_FAILED should be set")
	}
	if c.HostScanningEnabled() {
		t.Fatal("host scanning must stay disabled after a failed scan")
	}
}

func TestBootstrap_ScanFailure_JavaTypeReturnsTopType(t *testing.T) {
	c := NewCoordinator(&explodingEnumerator{}, true)
	c.Bootstrap(context.Background(), false)
	if _, err := c.Await(context.Background()); err != nil {
		t.Fatalf("Await returned error: %v", err)
	}

	hostType := c.JavaType(context.Background(), "Anything")
	if hostType.Kind != "top" {
		t.Fatalf("JavaType on an unknown name after a failed scan should return the generic top type, got %+v", hostType)
	}
}

func TestJavaType_Disabled_ReturnsTopTypeWithoutBlocking(t *testing.T) {
	c := NewCoordinator(testEnumerator(), false)

	hostType := c.JavaType(context.Background(), "host.Widget")
	if hostType.Kind != "top" {
		t.Fatalf("JavaType should return the generic top type when scanning was never requested, got %+v", hostType)
	}
}

func TestCoordinator_Builtin_IsIndependentOfBootstrap(t *testing.T) {
	builtins := map[string][]*declare.Builtin{
		"len": {declare.NewBuiltin("len", 1, false, nil)},
	}
	c := NewCoordinator(testEnumerator(), false, WithBuiltins(builtins))

	found, ok := c.Builtin("len")
	if !ok || len(found) != 1 {
		t.Fatalf("built-ins should resolve without bootstrapping, got ok=%v found=%v", ok, found)
	}
}

type explodingEnumerator struct{ hostscan.ReflectEnumerator }

func (e *explodingEnumerator) Enumerate(ctx context.Context) ([]hostscan.ClassRef, error) {
	return nil, errBoom
}

var errBoom = scanBoom{}

type scanBoom struct{}

func (scanBoom) Error() string { return "scan exploded" }
