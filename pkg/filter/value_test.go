package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, EmptyValue().IsEmpty())
	assert.True(t, TextValue("").IsEmpty())
	assert.False(t, TextValue("x").IsEmpty())
	assert.True(t, ListValue().IsEmpty())
	assert.False(t, ListValue("a").IsEmpty())
	assert.True(t, RangeValue("", "").IsEmpty())
	assert.False(t, RangeValue("2024-01-01", "").IsEmpty())
	assert.False(t, RangeValue("", "2024-12-31").IsEmpty())
	// A boolean choice is always a supplied value, false included.
	assert.False(t, BoolValue(false).IsEmpty())
}

func TestListValueDedupes(t *testing.T) {
	v := ListValue("a", "b", "a", "c", "b")
	list, ok := v.AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestListValueEmptyCollapses(t *testing.T) {
	v := ListValue()
	assert.Equal(t, KindEmpty, v.Kind())
}

func TestToggle(t *testing.T) {
	v := EmptyValue()

	v = v.Toggle("a")
	list, ok := v.AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, list)

	v = v.Toggle("b")
	list, _ = v.AsList()
	assert.Equal(t, []string{"a", "b"}, list)

	v = v.Toggle("a")
	list, _ = v.AsList()
	assert.Equal(t, []string{"b"}, list)

	// Removing the last member leaves no value, not an empty list.
	v = v.Toggle("b")
	assert.Equal(t, KindEmpty, v.Kind())
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"empty", EmptyValue(), `null`},
		{"text", TextValue("alice"), `"alice"`},
		{"list", ListValue("a", "b"), `["a","b"]`},
		{"range", RangeValue("2024-01-01", "2024-12-31"), `["2024-01-01","2024-12-31"]`},
		{"open range", RangeValue("2024-01-01", ""), `["2024-01-01",""]`},
		{"bool", BoolValue(true), `true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	var v Value

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.Equal(t, KindEmpty, v.Kind())

	require.NoError(t, json.Unmarshal([]byte(`"bob"`), &v))
	text, ok := v.AsText()
	require.True(t, ok)
	assert.Equal(t, "bob", text)

	require.NoError(t, json.Unmarshal([]byte(`false`), &v))
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.False(t, b)

	require.NoError(t, json.Unmarshal([]byte(`["x","y"]`), &v))
	list, ok := v.AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, list)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, TextValue("a").Equal(TextValue("a")))
	assert.False(t, TextValue("a").Equal(TextValue("b")))
	assert.False(t, TextValue("a").Equal(ListValue("a")))
	assert.True(t, ListValue("a", "b").Equal(ListValue("a", "b")))
	assert.False(t, ListValue("a", "b").Equal(ListValue("b", "a")))
	assert.True(t, RangeValue("x", "y").Equal(RangeValue("x", "y")))
	assert.True(t, EmptyValue().Equal(EmptyValue()))
}
