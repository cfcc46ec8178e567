package booking

import (
	"bytes"
	"encoding/json"
)

// RawID is an id field that accepts any JSON scalar. Strings are kept
// unquoted and everything else keeps its literal text, so a malformed id
// reaches Validate instead of failing the body decode.
type RawID string

func (id *RawID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RawID(s)
		return nil
	}
	*id = RawID(data)
	return nil
}

func (id RawID) String() string {
	return string(id)
}
