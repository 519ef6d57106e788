package activity

import "time"

// BindingEventInput describes the common fields for binding lifecycle events.
type BindingEventInput struct {
	Key           string
	Version       string
	FromVersion   string
	FromVersioned bool
	Channel       string
	Metadata      map[string]any
	OccurredAt    time.Time
}

// BuildValueSetEvent constructs a normalized event for a value write.
func BuildValueSetEvent(input BindingEventInput) Event {
	return buildBindingEvent("binding.set", input)
}

// BuildRawSetEvent constructs a normalized event for an accepted raw write.
func BuildRawSetEvent(input BindingEventInput) Event {
	return buildBindingEvent("binding.set_raw", input)
}

// BuildValueMigratedEvent constructs an event describing a load-time
// version upgrade.
func BuildValueMigratedEvent(input BindingEventInput) Event {
	return buildBindingEvent("binding.migrated", input)
}

// BuildValuePurgedEvent constructs an event describing a purged stale entry.
func BuildValuePurgedEvent(input BindingEventInput) Event {
	return buildBindingEvent("binding.purged", input)
}

func buildBindingEvent(verb string, input BindingEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Version != "" {
		metadata = ensureMetadata(metadata)
		metadata["version"] = input.Version
	}
	if input.FromVersioned {
		metadata = ensureMetadata(metadata)
		metadata["from_version"] = input.FromVersion
	}
	return Event{
		Verb:       verb,
		Key:        input.Key,
		Channel:    input.Channel,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return metadata
}
