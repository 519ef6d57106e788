package statebind

import (
	"strings"
	"testing"
)

func TestNewNamespaceValidatesPrefix(t *testing.T) {
	if _, err := NewNamespace(""); err == nil {
		t.Fatalf("expected error for empty prefix")
	}
	if _, err := NewNamespace("   "); err == nil {
		t.Fatalf("expected error for whitespace prefix")
	}
	if _, err := NewNamespace("app"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNamespaceKeyComposition(t *testing.T) {
	ns, err := NewNamespace("app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, err := ns.Key("theme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "app\x1ftheme" {
		t.Fatalf("expected unit-separator composition, got %q", key)
	}

	if _, err := ns.Key(""); err == nil {
		t.Fatalf("expected error for empty suffix")
	}
	if _, err := ns.Key("  "); err == nil {
		t.Fatalf("expected error for whitespace suffix")
	}
}

func TestNamespacedForwardsSharedConfiguration(t *testing.T) {
	store := NewMemoryStore()
	ns, err := NewNamespace("app",
		NamespaceWithStore(store),
		NamespaceWithVersion("1.0"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	binding, err := Namespaced(ns, "theme", "light", StringCodec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := binding.Set("dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok, err := store.GetItem("app\x1ftheme")
	if err != nil || !ok {
		t.Fatalf("expected namespaced key in shared store, ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(raw, "\x001.0\x00") {
		t.Fatalf("expected namespace version envelope, got %q", raw)
	}
}

func TestNamespacedAllowsPerBindingOverride(t *testing.T) {
	shared := NewMemoryStore()
	private := NewMemoryStore()
	ns, err := NewNamespace("app", NamespaceWithStore(shared))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	binding, err := Namespaced(ns, "theme", "light", StringCodec(), WithStore[string](private))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := binding.Set("dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := shared.Len(); n != 0 {
		t.Fatalf("per-binding store override must win, shared store has %d keys", n)
	}
	if n, _ := private.Len(); n != 1 {
		t.Fatalf("expected write in private store, got %d keys", n)
	}
}

func TestNamespacedRequiresNamespace(t *testing.T) {
	if _, err := Namespaced[string](nil, "theme", "", StringCodec()); err == nil {
		t.Fatalf("expected error for nil namespace")
	}
}
