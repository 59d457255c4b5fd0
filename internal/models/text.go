package models

import (
	"bytes"
	"encoding/json"
)

// Text is a string field that also accepts other JSON scalars. Numbers and
// booleans keep their JSON spelling, null is empty, and objects or arrays are
// kept as compact JSON.
type Text string

func (text *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*text = ""
	case trimmed[0] == '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*text = Text(value)
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return err
		}
		*text = Text(compact.String())
	}
	return nil
}

func (text Text) String() string {
	return string(text)
}

// OptionalText converts a decoded optional field back to a plain string
// pointer, keeping nil for absent fields.
func OptionalText(text *Text) *string {
	if text == nil {
		return nil
	}
	value := string(*text)
	return &value
}
