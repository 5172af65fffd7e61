// flex_strings.go
//
// Family photo sharing backend for kids' memories.

package types

import (
	"encoding/json"
	"strings"
)

// FlexStrings is a string slice that can be unmarshaled from a JSON array,
// from a JSON string that itself encodes an array (the shape multipart form
// clients send), or from a single plain string.
type FlexStrings []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as a normal array
	if data[0] == '[' {
		var slice []string
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = FlexStrings(slice)
		return nil
	}

	// Otherwise it is a string; it may carry an encoded array inside
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseStringList(s)
	if err != nil {
		return err
	}
	*f = FlexStrings(parsed)
	return nil
}

// Slice converts FlexStrings back to []string.
func (f FlexStrings) Slice() []string {
	return []string(f)
}

// ParseStringList decodes a form field that holds either a JSON array or a
// single bare value. Empty input yields an empty list, never an error.
func ParseStringList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var slice []string
		if err := json.Unmarshal([]byte(raw), &slice); err != nil {
			return []string{}, nil
		}
		return slice, nil
	}
	return []string{raw}, nil
}
