package statebind

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-statebind/pkg/activity"
)

// Binding owns one cached value of type T for one key in a KeyStore. Reads
// are served from the cache; writes go through to the store best-effort.
// Construction performs a single load-and-migrate pass against the store;
// later external writes to the same key are not observed until a new
// Binding is constructed.
//
// Failure contract: codec and migration errors are recovered locally and
// never escape (reads fall back to the default, writes skip persistence).
// Backend errors are never caught and surface from New, Set, Raw and SetRaw.
//
// A Binding is not safe for concurrent use by multiple goroutines.
type Binding[T any] struct {
	key          string
	defaultValue T
	codec        Codec[T]
	cfg          bindingConfig[T]
	store        KeyStore
	emitter      *activity.Emitter

	cached      T
	subscribers []subscription[T]
}

type subscription[T any] struct {
	id uuid.UUID
	fn func(T)
}

// New constructs a Binding for key and resolves its initial value from the
// store: absent key or irrecoverable payload yields defaultValue, a version
// mismatch runs the configured migration or purges the stale entry. Only
// backend failures produce an error.
func New[T any](key string, defaultValue T, codec Codec[T], opts ...Option[T]) (*Binding[T], error) {
	if codec == nil {
		return nil, fmt.Errorf("statebind: codec is required")
	}
	cfg := applyOptions(opts)

	store := cfg.store
	if store == nil {
		store = SharedStore()
	}

	b := &Binding[T]{
		key:          key,
		defaultValue: defaultValue,
		codec:        codec,
		cfg:          cfg,
		store:        store,
		emitter: activity.NewEmitter(cfg.hooks, activity.Config{
			Enabled: len(cfg.hooks) > 0,
			Channel: cfg.channel,
		}),
	}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

// Value returns the cached value. It never touches the store and cannot fail.
func (b *Binding[T]) Value() T {
	return b.cached
}

// Key returns the store slot this binding is bound to.
func (b *Binding[T]) Key() string {
	return b.key
}

// Set replaces the cached value and persists it. The cache reflects the new
// value regardless of persistence outcome: an encoding failure skips the
// store write silently and leaves any previous stored value in place. A
// backend write failure is returned and suppresses notification; otherwise
// every subscriber is invoked synchronously with the new value before Set
// returns.
func (b *Binding[T]) Set(value T) error {
	b.cached = value

	encoded, err := b.codec.Encode(value)
	if err != nil {
		b.logger().LogBinding(BindingLogEvent{Op: "set", Key: b.key, Version: b.cfg.version, Err: err})
	} else {
		raw := encodeEnvelope(b.cfg.version, encoded)
		if err := b.store.SetItem(b.key, raw); err != nil {
			return wrapStoreError("set", b.key, err)
		}
	}

	b.notify(value)
	b.emit(activity.BuildValueSetEvent(b.eventInput()))
	return nil
}

// Subscribe registers fn to be invoked with the new value after every
// successful Set or accepted SetRaw. The current value is not replayed.
// Each call is an independent registration, even for the same function, and
// the returned closure removes exactly that registration; calling it more
// than once is a no-op.
func (b *Binding[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := uuid.New()
	b.subscribers = append(b.subscribers, subscription[T]{id: id, fn: fn})
	return func() {
		for i, sub := range b.subscribers {
			if sub.id == id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Raw returns exactly what the store holds at the key right now, including
// any version envelope, ok=false when absent. It does not touch the cache
// and never notifies subscribers.
func (b *Binding[T]) Raw() (string, bool, error) {
	raw, ok, err := b.store.GetItem(b.key)
	if err != nil {
		return "", false, wrapStoreError("raw", b.key, err)
	}
	return raw, ok, nil
}

// SetRaw accepts an externally sourced raw string, typically copied from
// Raw() of a compatibly configured binding, only when it round-trips through
// this binding's own codec byte-for-byte. Rejected input causes no mutation
// at all and reports accepted=false. On acceptance the raw string is written
// verbatim, the cache takes the decoded value, and subscribers are notified.
func (b *Binding[T]) SetRaw(raw string) (accepted bool, err error) {
	storedVersion, versioned, payload := parseEnvelope(raw)

	if b.cfg.version != "" && (!versioned || storedVersion != b.cfg.version) {
		b.logRawRejected("version mismatch")
		return false, nil
	}

	value, decodeErr := b.codec.Decode(payload)
	if decodeErr != nil {
		b.logRawRejected("decode failed")
		return false, nil
	}

	encoded, encodeErr := b.codec.Encode(value)
	if encodeErr != nil || encodeEnvelope(b.cfg.version, encoded) != raw {
		b.logRawRejected("round-trip mismatch")
		return false, nil
	}

	if err := b.store.SetItem(b.key, raw); err != nil {
		return false, wrapStoreError("set_raw", b.key, err)
	}
	b.cached = value
	b.notify(value)
	b.emit(activity.BuildRawSetEvent(b.eventInput()))
	return true, nil
}

// load runs the construction-time state machine against the store.
func (b *Binding[T]) load() error {
	raw, ok, err := b.store.GetItem(b.key)
	if err != nil {
		return wrapStoreError("load", b.key, err)
	}
	if !ok {
		b.cached = b.defaultValue
		b.logLoad(LoadMissing, nil)
		return nil
	}

	storedVersion, versioned, payload := parseEnvelope(raw)
	match := versioned == (b.cfg.version != "") && (!versioned || storedVersion == b.cfg.version)

	if match {
		value, decodeErr := b.codec.Decode(payload)
		if decodeErr != nil {
			// The invalid payload stays in the store; only version
			// mismatches purge.
			b.cached = b.defaultValue
			b.logLoad(LoadDecodeFailed, decodeErr)
			return nil
		}
		b.adopt(value)
		return nil
	}

	if b.cfg.migrate == nil {
		b.cached = b.defaultValue
		if err := b.store.RemoveItem(b.key); err != nil {
			return wrapStoreError("purge", b.key, err)
		}
		b.logLoad(LoadPurged, nil)
		b.emit(activity.BuildValuePurgedEvent(b.eventInput()))
		return nil
	}

	migrated, migrateErr := b.cfg.migrate(payload, storedVersion, versioned)
	if migrateErr != nil {
		b.cached = b.defaultValue
		if err := b.store.RemoveItem(b.key); err != nil {
			return wrapStoreError("purge", b.key, err)
		}
		b.logLoad(LoadMigrateFailed, migrateErr)
		b.emit(activity.BuildValuePurgedEvent(b.eventInput()))
		return nil
	}

	if invalid := b.checkValid(migrated); invalid != nil {
		b.cached = b.defaultValue
		b.logLoad(LoadInvalid, invalid)
		return nil
	}
	b.cached = migrated

	// Re-persist under the current version through the normal write path.
	encoded, encodeErr := b.codec.Encode(migrated)
	if encodeErr != nil {
		b.logger().LogBinding(BindingLogEvent{Op: "migrate", Key: b.key, Version: b.cfg.version, Err: encodeErr})
	} else {
		if err := b.store.SetItem(b.key, encodeEnvelope(b.cfg.version, encoded)); err != nil {
			return wrapStoreError("migrate", b.key, err)
		}
	}
	b.logLoad(LoadMigrated, nil)
	b.emit(activity.BuildValueMigratedEvent(b.eventInputFrom(storedVersion, versioned)))
	return nil
}

// adopt installs a freshly decoded value, subject to validation.
func (b *Binding[T]) adopt(value T) {
	if invalid := b.checkValid(value); invalid != nil {
		b.cached = b.defaultValue
		b.logLoad(LoadInvalid, invalid)
		return
	}
	b.cached = value
	b.logLoad(LoadDecoded, nil)
}

func (b *Binding[T]) checkValid(value T) error {
	if b.cfg.validator == nil {
		return nil
	}
	return b.cfg.validator.Validate(value)
}

func (b *Binding[T]) notify(value T) {
	// Snapshot so unsubscribing from inside a callback cannot skip peers.
	subs := make([]subscription[T], len(b.subscribers))
	copy(subs, b.subscribers)
	for _, sub := range subs {
		if sub.fn != nil {
			sub.fn(value)
		}
	}
}

func (b *Binding[T]) emit(event activity.Event) {
	if !b.emitter.Enabled() {
		return
	}
	if err := b.emitter.Emit(context.Background(), event); err != nil {
		b.logger().LogBinding(BindingLogEvent{Op: "activity", Key: b.key, Version: b.cfg.version, Err: err})
	}
}

func (b *Binding[T]) eventInput() activity.BindingEventInput {
	return activity.BindingEventInput{
		Key:     b.key,
		Version: b.cfg.version,
		Channel: b.cfg.channel,
	}
}

func (b *Binding[T]) eventInputFrom(fromVersion string, versioned bool) activity.BindingEventInput {
	input := b.eventInput()
	input.FromVersion = fromVersion
	input.FromVersioned = versioned
	return input
}

func (b *Binding[T]) logLoad(outcome LoadOutcome, err error) {
	b.logger().LogBinding(BindingLogEvent{
		Op:      "load",
		Key:     b.key,
		Version: b.cfg.version,
		Outcome: outcome,
		Err:     err,
	})
}

func (b *Binding[T]) logRawRejected(reason string) {
	b.logger().LogBinding(BindingLogEvent{
		Op:      "set_raw",
		Key:     b.key,
		Version: b.cfg.version,
		Err:     fmt.Errorf("statebind: raw value rejected: %s", reason),
	})
}

func (b *Binding[T]) logger() BindingLogger {
	if b.cfg.logger != nil {
		return b.cfg.logger
	}
	return noopBindingLogger{}
}
