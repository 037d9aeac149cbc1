package customer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind discriminates the three raw shapes a form answer can take.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueList
)

// Value is a single raw form answer: a string, a number, or an ordered list
// of strings, depending on the kind of the field that produced it. It
// marshals to and from the bare JSON shape (no wrapper object), so persisted
// records keep the natural {"value": "12"} / {"value": ["Vegan"]} layout.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	list []string
}

// String wraps a string answer.
func String(s string) Value {
	return Value{kind: ValueString, str: s}
}

// Number wraps a numeric answer.
func Number(n float64) Value {
	return Value{kind: ValueNumber, num: n}
}

// List wraps an ordered multi-choice answer.
func List(items []string) Value {
	return Value{kind: ValueList, list: items}
}

// Kind returns the shape of the wrapped answer.
func (v Value) Kind() ValueKind {
	return v.kind
}

// AsString flattens the answer to text. Numbers render without a trailing
// zero fraction, lists join with comma and space.
func (v Value) AsString() string {
	switch v.kind {
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueList:
		return strings.Join(v.list, ", ")
	default:
		return v.str
	}
}

// AsNumber returns the wrapped number, or ok=false when the answer is not
// numeric.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != ValueNumber {
		return 0, false
	}
	return v.num, true
}

// AsList returns the wrapped string list, or ok=false when the answer is not
// a list.
func (v Value) AsList() ([]string, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	return v.list, true
}

// IsZero reports whether the value is an empty string answer, the shape an
// absent field decodes to.
func (v Value) IsZero() bool {
	return v.kind == ValueString && v.str == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = List(list)
		return nil
	}
	// Anything else (null, bool, nested object) degrades to an empty string
	// rather than failing the whole document.
	*v = String("")
	return nil
}
