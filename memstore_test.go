package statebind

import "testing"

func TestMemoryStoreBasics(t *testing.T) {
	store := NewMemoryStore()

	if _, ok, _ := store.GetItem("a"); ok {
		t.Fatalf("expected absent key")
	}
	if err := store.SetItem("a", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, ok, _ := store.GetItem("a"); !ok || value != "1" {
		t.Fatalf("expected 1, got %q ok=%v", value, ok)
	}
	if err := store.SetItem("a", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value, _, _ := store.GetItem("a"); value != "2" {
		t.Fatalf("expected overwrite to 2, got %q", value)
	}
	if n, _ := store.Len(); n != 1 {
		t.Fatalf("expected length 1, got %d", n)
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

func TestMemoryStoreKeyEnumerationIsInsertionOrdered(t *testing.T) {
	store := NewMemoryStore()
	for _, key := range []string{"c", "a", "b"} {
		if err := store.SetItem(key, key); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []string{"c", "a", "b"}
	for i, expected := range want {
		key, ok, _ := store.Key(i)
		if !ok || key != expected {
			t.Fatalf("Key(%d) = %q ok=%v, want %q", i, key, ok, expected)
		}
	}
	if _, ok, _ := store.Key(3); ok {
		t.Fatalf("expected out-of-range index to report ok=false")
	}
	if _, ok, _ := store.Key(-1); ok {
		t.Fatalf("expected negative index to report ok=false")
	}

	// Removal keeps the relative order of the survivors.
	if err := store.RemoveItem("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key, _, _ := store.Key(1); key != "b" {
		t.Fatalf("expected b after removal, got %q", key)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SetItem("a", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := store.Len(); n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}
	if _, ok, _ := store.Key(0); ok {
		t.Fatalf("expected no keys after clear")
	}
}

func TestResetSharedStore(t *testing.T) {
	ResetSharedStore()
	if err := SharedStore().SetItem("a", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ResetSharedStore()
	if n, _ := SharedStore().Len(); n != 0 {
		t.Fatalf("expected shared store emptied, got %d", n)
	}
}
