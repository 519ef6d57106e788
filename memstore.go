package statebind

// MemoryStore is a KeyStore backed by a plain map. It keeps keys in
// insertion order so Key(index) enumeration is deterministic. A MemoryStore
// never returns an error.
//
// The zero value is not usable; construct via NewMemoryStore.
type MemoryStore struct {
	values map[string]string
	order  []string
}

// NewMemoryStore constructs an empty in-memory store. Use this for
// session-scoped state that must not leak into the shared process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

var sharedStore = NewMemoryStore()

// SharedStore returns the process-wide in-memory store. Every Binding
// constructed without an explicit store writes through to this single map,
// so two bindings created with the same key observe each other's writes,
// matching the semantics of a real persistent backend.
func SharedStore() *MemoryStore {
	return sharedStore
}

// ResetSharedStore empties the process-wide store. Intended for test
// isolation between cases that rely on the implicit default.
func ResetSharedStore() {
	sharedStore.reset()
}

// GetItem returns the value stored under key, ok=false when absent.
func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

// SetItem creates or overwrites the value stored under key.
func (s *MemoryStore) SetItem(key, value string) error {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
	return nil
}

// RemoveItem deletes key from the store. Removing an absent key is a no-op.
func (s *MemoryStore) RemoveItem(key string) error {
	if _, exists := s.values[key]; !exists {
		return nil
	}
	delete(s.values, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every key.
func (s *MemoryStore) Clear() error {
	s.reset()
	return nil
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() (int, error) {
	return len(s.values), nil
}

// Key returns the index-th key in insertion order, ok=false when index is
// out of range.
func (s *MemoryStore) Key(index int) (string, bool, error) {
	if index < 0 || index >= len(s.order) {
		return "", false, nil
	}
	return s.order[index], true, nil
}

func (s *MemoryStore) reset() {
	s.values = map[string]string{}
	s.order = nil
}
