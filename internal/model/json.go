package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an optional numeric field that tolerates the shapes the catalog
// API actually sends: JSON numbers, numeric strings, or null. Anything that
// does not parse to a finite number decodes as absent rather than failing
// the whole document.
type Number struct {
	value float64
	valid bool
}

// NumberFrom wraps a plain float64 as a present Number.
func NumberFrom(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, valid: true}
}

// Float returns the numeric value and whether it was present and parseable.
func (n Number) Float() (float64, bool) {
	return n.value, n.valid
}

// Or returns the value if present, otherwise the given default.
func (n Number) Or(def float64) float64 {
	if n.valid {
		return n.value
	}
	return def
}

// IsZero reports whether the field was absent or unparseable.
func (n Number) IsZero() bool {
	return !n.valid
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		*n = Number{value: v, valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Number{value: v, valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Bool is an optional boolean field tolerating bools, "true"/"false" strings
// and 0/1 numbers.
type Bool struct {
	value bool
	valid bool
}

// BoolFrom wraps a plain bool as a present Bool.
func BoolFrom(v bool) Bool {
	return Bool{value: v, valid: true}
}

// Value returns the boolean and whether it was present.
func (b Bool) Value() (bool, bool) {
	return b.value, b.valid
}

// IsFalse reports whether the field was present and explicitly false.
func (b Bool) IsFalse() bool {
	return b.valid && !b.value
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	*b = Bool{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch string(data) {
	case "true":
		*b = Bool{value: true, valid: true}
		return nil
	case "false":
		*b = Bool{value: false, valid: true}
		return nil
	case "1":
		*b = Bool{value: true, valid: true}
		return nil
	case "0":
		*b = Bool{value: false, valid: true}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			*b = Bool{value: true, valid: true}
		case "false", "0":
			*b = Bool{value: false, valid: true}
		}
	}
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) {
	if !b.valid {
		return []byte("null"), nil
	}
	return json.Marshal(b.value)
}

// ID is an entity identifier that may arrive as a JSON number or a string.
// It normalizes to the bare decimal string used for hierarchy matching.
type ID struct {
	value string
}

// IDFrom wraps a string as an ID.
func IDFrom(s string) ID {
	return ID{value: strings.TrimSpace(s)}
}

// String returns the normalized identifier, empty when absent.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool {
	return id.value == ""
}

func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		id.value = strings.TrimSpace(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	// Integer IDs render without an exponent or trailing zeros.
	if i, err := n.Int64(); err == nil {
		id.value = strconv.FormatInt(i, 10)
		return nil
	}
	id.value = n.String()
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	return json.Marshal(id.value)
}

// TargetList is a list of discount target tokens. Legacy data stores this as
// a JSON array, a JSON-array-shaped string, or a comma-separated string; all
// three decode to a flat list of trimmed, non-empty tokens.
type TargetList []string

func (t *TargetList) UnmarshalJSON(data []byte) error {
	*t = nil

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		for _, el := range raw {
			el = bytes.TrimSpace(el)
			if len(el) == 0 {
				continue
			}
			if el[0] == '"' {
				var s string
				if err := json.Unmarshal(el, &s); err != nil {
					continue
				}
				appendToken(t, s)
				continue
			}
			appendToken(t, string(el))
		}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = SplitTargetTokens(s)
		return nil
	}

	// A bare number is a single-element list.
	appendToken(t, string(data))
	return nil
}

// SplitTargetTokens parses a legacy target-parents string: either a
// JSON-array-shaped string or a comma-separated list.
func SplitTargetTokens(s string) TargetList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			var out TargetList
			for _, el := range arr {
				switch v := el.(type) {
				case string:
					appendToken(&out, v)
				case float64:
					appendToken(&out, strconv.FormatFloat(v, 'f', -1, 64))
				}
			}
			return out
		}
		// Fall through to comma splitting on malformed array strings.
	}

	var out TargetList
	for _, part := range strings.Split(s, ",") {
		appendToken(&out, part)
	}
	return out
}

func appendToken(t *TargetList, s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		*t = append(*t, s)
	}
}
