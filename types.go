package statebind

import (
	"github.com/goliatone/go-statebind/pkg/activity"
)

// Codec converts values of type T to and from their stored string form.
// Both directions are user-supplied and assumed fallible; the engine wraps
// every invocation defensively per the failure rules documented on Binding.
type Codec[T any] interface {
	Encode(value T) (string, error)
	Decode(raw string) (T, error)
}

// CodecFuncs adapts a pair of functions to the Codec interface.
type CodecFuncs[T any] struct {
	EncodeFunc func(value T) (string, error)
	DecodeFunc func(raw string) (T, error)
}

// Encode implements Codec.
func (c CodecFuncs[T]) Encode(value T) (string, error) {
	return c.EncodeFunc(value)
}

// Decode implements Codec.
func (c CodecFuncs[T]) Decode(raw string) (T, error) {
	return c.DecodeFunc(raw)
}

// MigrateFunc upgrades a payload written under a different schema version.
// fromVersion carries the stored version tag; versioned is false when the
// stored value predates version envelopes entirely. Returning an error
// abandons the stored value: the binding falls back to its default and
// purges the stale entry.
type MigrateFunc[T any] func(payload string, fromVersion string, versioned bool) (T, error)

// Option configures a Binding at construction.
type Option[T any] func(*bindingConfig[T])

type bindingConfig[T any] struct {
	store     KeyStore
	version   string
	migrate   MigrateFunc[T]
	validator Validator
	logger    BindingLogger
	hooks     activity.Hooks
	channel   string
}

func applyOptions[T any](opts []Option[T]) bindingConfig[T] {
	cfg := bindingConfig[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithStore directs the binding at an explicit backend. Without this option
// the binding writes through to the process-wide SharedStore.
func WithStore[T any](store KeyStore) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.store = store
	}
}

// WithVersion tags stored values with a schema version. Stored values whose
// tag differs (including untagged legacy values) are migrated or purged at
// load. The empty string means unversioned.
func WithVersion[T any](version string) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.version = version
	}
}

// WithMigration registers the upgrade function invoked when the stored
// version tag does not match the binding's version.
func WithMigration[T any](migrate MigrateFunc[T]) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.migrate = migrate
	}
}

// WithValidator checks decoded and migrated values at load time. Values that
// fail validation are discarded in favour of the default; the stored raw
// value is left in place.
func WithValidator[T any](validator Validator) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.validator = validator
	}
}

// WithLogger attaches a logger receiving binding lifecycle events.
func WithLogger[T any](logger BindingLogger) Option[T] {
	return func(cfg *bindingConfig[T]) {
		if logger == nil {
			cfg.logger = noopBindingLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActivityHooks attaches change-event hooks to the binding. Hooks are
// cloned and nil entries dropped to preserve immutability.
func WithActivityHooks[T any](hooks activity.Hooks) Option[T] {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *bindingConfig[T]) {
		cfg.hooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on emitted change events.
func WithActivityChannel[T any](channel string) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.channel = channel
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
