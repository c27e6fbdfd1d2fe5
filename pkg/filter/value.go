package filter

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindList
	KindRange
	KindBool
)

// Value is a tagged variant for a condition's value. The wire format is the
// loose union (string | []string | bool | null, with a date range as a
// two-element array), but in memory every value carries its kind so consumers
// can switch exhaustively instead of type-guessing raw JSON.
type Value struct {
	kind ValueKind
	text string
	list []string
	from string
	to   string
	b    bool
}

// EmptyValue is the "not yet supplied" value. It marshals to JSON null.
func EmptyValue() Value {
	return Value{kind: KindEmpty}
}

// TextValue holds a single string. An empty string is still KindText but
// reports IsEmpty, matching the "empty string means no value" rule.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// ListValue holds an ordered-unique option list. Duplicates are dropped
// preserving first occurrence; an empty list collapses to EmptyValue so that
// "no value" and "empty list" stay distinguishable.
func ListValue(items ...string) Value {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	if len(out) == 0 {
		return EmptyValue()
	}
	return Value{kind: KindList, list: out}
}

// RangeValue holds a [from, to] date pair. Either side may be blank while
// the user is still editing.
func RangeValue(from, to string) Value {
	return Value{kind: KindRange, from: from, to: to}
}

// BoolValue holds a strict true/false choice.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether the value counts as "not supplied" for validity
// purposes. A range with at least one bound set is considered supplied.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindText:
		return v.text == ""
	case KindList:
		return len(v.list) == 0
	case KindRange:
		return v.from == "" && v.to == ""
	case KindBool:
		return false
	}
	return true
}

func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

func (v Value) AsRange() (from, to string, ok bool) {
	return v.from, v.to, v.kind == KindRange
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Toggle flips membership of option in a list value. Toggling on a non-list
// value starts a fresh list; removing the last member returns EmptyValue
// rather than an empty list.
func (v Value) Toggle(option string) Value {
	list, ok := v.AsList()
	if !ok {
		return ListValue(option)
	}
	for i, item := range list {
		if item == option {
			list = append(list[:i], list[i+1:]...)
			return ListValue(list...)
		}
	}
	return ListValue(append(list, option)...)
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	case KindRange:
		return v.from == other.from && v.to == other.to
	case KindBool:
		return v.b == other.b
	}
	return true
}

// MarshalJSON writes the wire union: null, string, bool, or an array.
// A range marshals as a fixed two-element array [from, to].
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.text)
	case KindList:
		return json.Marshal(v.list)
	case KindRange:
		return json.Marshal([2]string{v.from, v.to})
	case KindBool:
		return json.Marshal(v.b)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// UnmarshalJSON reads the wire union. Arrays decode as lists; the wire shape
// alone cannot distinguish a range, so Condition decodes between-values
// through rangeValueJSON instead of this path.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = EmptyValue()
	case string:
		*v = TextValue(t)
	case bool:
		*v = BoolValue(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return fmt.Errorf("filter value list holds non-string element %v", it)
			}
			items = append(items, s)
		}
		*v = ListValue(items...)
	default:
		return fmt.Errorf("unsupported filter value %v", raw)
	}
	return nil
}

// rangeValueJSON decodes a range from its wire array, preserving equal
// bounds. null or an empty array decode to EmptyValue; a one-element array
// is an open-ended range.
func rangeValueJSON(data []byte) (Value, error) {
	var bounds []string
	if err := json.Unmarshal(data, &bounds); err != nil {
		return Value{}, err
	}
	switch len(bounds) {
	case 0:
		return EmptyValue(), nil
	case 1:
		return RangeValue(bounds[0], ""), nil
	case 2:
		return RangeValue(bounds[0], bounds[1]), nil
	}
	return Value{}, fmt.Errorf("range value holds %d bounds, want at most 2", len(bounds))
}
