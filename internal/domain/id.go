package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID is a node identifier. Glossary sources emit ids as JSON strings or
// numbers; both decode to the same canonical string form.
type ID string

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string or number
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty id")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", data)
	}
	s, err := canonicalNumber(n.String())
	if err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

// UnmarshalYAML accepts a scalar id of any kind
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", value.Line)
	}
	switch value.Tag {
	case "!!int", "!!float":
		s, err := canonicalNumber(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*id = ID(s)
	case "!!null", "!!bool":
		return fmt.Errorf("line %d: id must be a string or number, got %q", value.Line, value.Value)
	default:
		*id = ID(value.Value)
	}
	return nil
}

// canonicalNumber renders a numeric id the way a browser would stringify it:
// 1 and 1.0 both become "1".
func canonicalNumber(raw string) (string, error) {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return raw, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("invalid numeric id %q", raw)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
