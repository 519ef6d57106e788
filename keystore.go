package statebind

// KeyStore is the string-keyed backend a Binding writes through to. It
// mirrors a minimal persistent key-value store: implementations may be
// process memory, a session-scoped map, or a database-backed store.
//
// GetItem reports ok=false when the key has never been written or was
// removed. Backend failures surface as errors and are never swallowed by
// the engine; in-memory implementations return nil errors throughout.
type KeyStore interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Clear() error
	Len() (int, error)
	Key(index int) (string, bool, error)
}
