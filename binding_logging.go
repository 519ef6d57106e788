package statebind

// LoadOutcome identifies how a binding resolved its initial value.
type LoadOutcome string

const (
	// LoadMissing means the store held nothing for the key.
	LoadMissing LoadOutcome = "missing"
	// LoadDecoded means the stored payload decoded under a matching version.
	LoadDecoded LoadOutcome = "decoded"
	// LoadDecodeFailed means decoding threw and the default was used. The
	// stored value is left untouched.
	LoadDecodeFailed LoadOutcome = "decode_failed"
	// LoadMigrated means a version mismatch was upgraded and re-persisted.
	LoadMigrated LoadOutcome = "migrated"
	// LoadMigrateFailed means the upgrade threw; the default was used and
	// the stale entry purged.
	LoadMigrateFailed LoadOutcome = "migrate_failed"
	// LoadPurged means a version mismatch with no migration configured; the
	// default was used and the stale entry purged.
	LoadPurged LoadOutcome = "purged"
	// LoadInvalid means the decoded or migrated value failed validation and
	// the default was used. The stored value is left untouched.
	LoadInvalid LoadOutcome = "invalid"
)

// BindingLogEvent describes a binding lifecycle occurrence for logging.
type BindingLogEvent struct {
	Op      string
	Key     string
	Version string
	Outcome LoadOutcome
	Err     error
}

// BindingLogger records binding events.
type BindingLogger interface {
	LogBinding(BindingLogEvent)
}

// BindingLoggerFunc adapts a function to BindingLogger.
type BindingLoggerFunc func(BindingLogEvent)

// LogBinding implements BindingLogger.
func (f BindingLoggerFunc) LogBinding(event BindingLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopBindingLogger struct{}

func (noopBindingLogger) LogBinding(BindingLogEvent) {}
