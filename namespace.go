package statebind

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-statebind/pkg/activity"
)

// namespaceSep joins prefix and suffix in derived keys. Unit Separator keeps
// composed keys collision-free against ordinary text keys.
const namespaceSep = "\x1f"

// Namespace derives binding keys from a shared prefix and forwards shared
// configuration (store, version, logger, hooks) to every binding created
// through it. It owns no state of its own.
type Namespace struct {
	prefix  string
	store   KeyStore
	version string
	logger  BindingLogger
	hooks   activity.Hooks
	channel string
}

// NamespaceOption configures a Namespace.
type NamespaceOption func(*Namespace)

// NamespaceWithStore sets the backend shared by bindings in the namespace.
func NamespaceWithStore(store KeyStore) NamespaceOption {
	return func(ns *Namespace) {
		ns.store = store
	}
}

// NamespaceWithVersion sets the schema version shared by bindings in the
// namespace.
func NamespaceWithVersion(version string) NamespaceOption {
	return func(ns *Namespace) {
		ns.version = version
	}
}

// NamespaceWithLogger sets the logger shared by bindings in the namespace.
func NamespaceWithLogger(logger BindingLogger) NamespaceOption {
	return func(ns *Namespace) {
		ns.logger = logger
	}
}

// NamespaceWithActivityHooks sets the change-event hooks shared by bindings
// in the namespace.
func NamespaceWithActivityHooks(hooks activity.Hooks) NamespaceOption {
	return func(ns *Namespace) {
		ns.hooks = cloneActivityHooks(hooks)
	}
}

// NamespaceWithActivityChannel sets the change-event channel shared by
// bindings in the namespace.
func NamespaceWithActivityChannel(channel string) NamespaceOption {
	return func(ns *Namespace) {
		ns.channel = channel
	}
}

// NewNamespace constructs a namespace rooted at prefix. An empty or
// whitespace-only prefix is a configuration error and the only error this
// layer raises on its own behalf.
func NewNamespace(prefix string, opts ...NamespaceOption) (*Namespace, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("statebind: namespace prefix must not be empty")
	}
	ns := &Namespace{prefix: prefix}
	for _, opt := range opts {
		if opt != nil {
			opt(ns)
		}
	}
	return ns, nil
}

// Prefix returns the namespace prefix.
func (ns *Namespace) Prefix() string {
	return ns.prefix
}

// Key composes the store key for suffix: prefix + 0x1F + suffix.
func (ns *Namespace) Key(suffix string) (string, error) {
	if strings.TrimSpace(suffix) == "" {
		return "", fmt.Errorf("statebind: namespace key must not be empty")
	}
	return ns.prefix + namespaceSep + suffix, nil
}

// Namespaced constructs a Binding whose key derives from the namespace
// prefix. Namespace-level configuration applies first; per-binding options
// follow and may override it.
func Namespaced[T any](ns *Namespace, suffix string, defaultValue T, codec Codec[T], opts ...Option[T]) (*Binding[T], error) {
	if ns == nil {
		return nil, fmt.Errorf("statebind: namespace is required")
	}
	key, err := ns.Key(suffix)
	if err != nil {
		return nil, err
	}

	combined := make([]Option[T], 0, len(opts)+5)
	if ns.store != nil {
		combined = append(combined, WithStore[T](ns.store))
	}
	if ns.version != "" {
		combined = append(combined, WithVersion[T](ns.version))
	}
	if ns.logger != nil {
		combined = append(combined, WithLogger[T](ns.logger))
	}
	if len(ns.hooks) > 0 {
		combined = append(combined, WithActivityHooks[T](ns.hooks))
	}
	if ns.channel != "" {
		combined = append(combined, WithActivityChannel[T](ns.channel))
	}
	combined = append(combined, opts...)

	return New(key, defaultValue, codec, combined...)
}
