package statebind

import "testing"

func TestEncodeEnvelope(t *testing.T) {
	if got := encodeEnvelope("", "payload"); got != "payload" {
		t.Fatalf("unversioned payload must be verbatim, got %q", got)
	}
	if got := encodeEnvelope("1.0", "payload"); got != "\x001.0\x00payload" {
		t.Fatalf("unexpected envelope %q", got)
	}
	if got := encodeEnvelope("1.0", ""); got != "\x001.0\x00" {
		t.Fatalf("empty payload must still frame, got %q", got)
	}
}

func TestParseEnvelope(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		version   string
		versioned bool
		payload   string
	}{
		{name: "plain text", raw: "hello", versioned: false, payload: "hello"},
		{name: "versioned", raw: "\x001.0\x0042", version: "1.0", versioned: true, payload: "42"},
		{name: "empty payload", raw: "\x001.0\x00", version: "1.0", versioned: true, payload: ""},
		{name: "payload containing NUL", raw: "\x001.0\x00a\x00b", version: "1.0", versioned: true, payload: "a\x00b"},
		{name: "leading NUL but too few parts", raw: "\x00legacy", versioned: false, payload: "\x00legacy"},
		{name: "empty string", raw: "", versioned: false, payload: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			version, versioned, payload := parseEnvelope(tc.raw)
			if version != tc.version || versioned != tc.versioned || payload != tc.payload {
				t.Fatalf("parseEnvelope(%q) = (%q, %v, %q), want (%q, %v, %q)",
					tc.raw, version, versioned, payload, tc.version, tc.versioned, tc.payload)
			}
		})
	}
}

func TestEnvelopeRoundTripPreservesNULPayload(t *testing.T) {
	payload := "left\x00right\x00end"
	raw := encodeEnvelope("2.1", payload)
	version, versioned, got := parseEnvelope(raw)
	if !versioned || version != "2.1" || got != payload {
		t.Fatalf("round trip lost framing: (%q, %v, %q)", version, versioned, got)
	}
}
