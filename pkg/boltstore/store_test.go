package boltstore_test

import (
	"path/filepath"
	"testing"

	statebind "github.com/goliatone/go-statebind"
	"github.com/goliatone/go-statebind/pkg/boltstore"
)

func openStore(t *testing.T, path string) *boltstore.Store {
	t.Helper()
	store, err := boltstore.Open(path, boltstore.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestStoreImplementsKeyStore(t *testing.T) {
	var _ statebind.KeyStore = (*boltstore.Store)(nil)
}

func TestStoreBasics(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	if _, ok, err := store.GetItem("a"); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := store.SetItem("a", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, ok, err := store.GetItem("a"); err != nil || !ok || value != "1" {
		t.Fatalf("expected 1, got %q ok=%v err=%v", value, ok, err)
	}
	if n, err := store.Len(); err != nil || n != 1 {
		t.Fatalf("expected length 1, got %d err=%v", n, err)
	}

	if err := store.RemoveItem("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RemoveItem("a"); err != nil {
		t.Fatalf("remove must be idempotent: %v", err)
	}
	if _, ok, _ := store.GetItem("a"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStoreKeyEnumerationAndClear(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	for _, key := range []string{"b", "a", "c"} {
		if err := store.SetItem(key, key); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// bolt enumerates in byte order.
	want := []string{"a", "b", "c"}
	for i, expected := range want {
		key, ok, err := store.Key(i)
		if err != nil || !ok || key != expected {
			t.Fatalf("Key(%d) = %q ok=%v err=%v, want %q", i, key, ok, err, expected)
		}
	}
	if _, ok, _ := store.Key(3); ok {
		t.Fatalf("expected out-of-range index to report ok=false")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := store.Len(); n != 0 {
		t.Fatalf("expected empty store after clear, got %d", n)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := boltstore.Open(path, boltstore.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.SetItem("theme", "\x001.0\x00dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened := openStore(t, path)
	value, ok, err := reopened.GetItem("theme")
	if err != nil || !ok || value != "\x001.0\x00dark" {
		t.Fatalf("expected persisted envelope, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestBindingOverBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store := openStore(t, path)

	binding, err := statebind.New("theme", "light", statebind.StringCodec(),
		statebind.WithStore[string](store),
		statebind.WithVersion[string]("1.0"),
	)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if err := binding.Set("dark"); err != nil {
		t.Fatalf("unexpected error from Set: %v", err)
	}

	// A binding constructed later against the same slot observes the write.
	later, err := statebind.New("theme", "light", statebind.StringCodec(),
		statebind.WithStore[string](store),
		statebind.WithVersion[string]("1.0"),
	)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if got := later.Value(); got != "dark" {
		t.Fatalf("expected dark, got %q", got)
	}
}
