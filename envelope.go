package statebind

import "strings"

// envelopeSep frames the version field in stored values. NUL is binary-safe:
// text payloads cannot collide with it, and payloads that do contain NUL are
// preserved because only the first two separators are structural.
const envelopeSep = "\x00"

// encodeEnvelope wraps payload in the versioned wire format
// "\x00" + version + "\x00" + payload. version == "" means unversioned and
// the payload is returned verbatim.
func encodeEnvelope(version, payload string) string {
	if version == "" {
		return payload
	}
	return envelopeSep + version + envelopeSep + payload
}

// parseEnvelope splits a raw stored value into its version tag and payload.
// A raw value is versioned when it begins with NUL and splits into at least
// three NUL-delimited parts: parts[1] is the version, parts[2:] rejoined is
// the payload. Anything else is a legacy unversioned payload.
func parseEnvelope(raw string) (version string, versioned bool, payload string) {
	if !strings.HasPrefix(raw, envelopeSep) {
		return "", false, raw
	}
	parts := strings.Split(raw, envelopeSep)
	if len(parts) < 3 {
		return "", false, raw
	}
	return parts[1], true, strings.Join(parts[2:], envelopeSep)
}
