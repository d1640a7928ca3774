package transport

import (
	"encoding/json"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number and normalizes it
// to its textual form. The marketing form submits numeric fields as strings,
// except untouched defaults which arrive as numbers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the normalized textual value.
func (f FlexString) String() string {
	return string(f)
}
