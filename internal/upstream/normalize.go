package upstream

import (
	"encoding/json"
	"strings"
)

// Normalize unwraps the core API's inconsistent response envelopes. Ordered
// fallbacks, applied to the raw body:
//
//  1. object with a "data" key -> the value under "data", unwrapped once more
//     if the value is itself a {"data": ...} envelope
//  2. anything else (bare array, bare object, scalar) -> unchanged
//
// All shape-guessing lives here; call sites decode the normalized payload
// into concrete types.
func Normalize(raw json.RawMessage) json.RawMessage {
	current := raw
	for i := 0; i < 2; i++ {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(current, &envelope); err != nil {
			return current
		}
		inner, ok := envelope["data"]
		if !ok {
			return current
		}
		current = inner
	}
	return current
}

func decodeNormalized(raw json.RawMessage, out any) error {
	return json.Unmarshal(Normalize(raw), out)
}

// StringList tolerates the three shapes the core API uses for list fields
// such as allowed_formats: a JSON array, a JSON-encoded array delivered as a
// string, or a comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		*l = nil
		return nil
	}

	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
		*l = nested
		return nil
	}

	parts := strings.Split(encoded, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*l = out
	return nil
}
