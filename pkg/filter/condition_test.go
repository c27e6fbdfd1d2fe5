package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCondition(t *testing.T) {
	c := NewCondition()
	assert.NotEmpty(t, c.ID)
	assert.Empty(t, c.Field)
	assert.Equal(t, OpContains, c.Operator)
	assert.True(t, c.Value.IsEmpty())
	assert.False(t, c.Valid())
}

func TestConditionValid(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"no field", Condition{Operator: OpContains, Value: TextValue("x")}, false},
		{"field and value", Condition{Field: "surname", Operator: OpContains, Value: TextValue("x")}, true},
		{"field no value", Condition{Field: "surname", Operator: OpContains, Value: EmptyValue()}, false},
		{"field empty string value", Condition{Field: "surname", Operator: OpContains, Value: TextValue("")}, false},
		{"nullary without value", Condition{Field: "phone", Operator: OpIsNull, Value: EmptyValue()}, true},
		{"half-open range", Condition{Field: "hire_date", Operator: OpBetween, Value: RangeValue("2024-01-01", "")}, true},
		{"blank range", Condition{Field: "hire_date", Operator: OpBetween, Value: RangeValue("", "")}, false},
		{"bool false", Condition{Field: "is_manager", Operator: OpEquals, Value: BoolValue(false)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Valid())
		})
	}
}

func TestSetFieldResetsOperatorAndValue(t *testing.T) {
	c := NewCondition()
	c.SetField("surname", FieldText)
	c.SetOperator(OpStartsWith)
	c.Value = TextValue("nko")
	require.True(t, c.Valid())

	c.SetField("hire_date", FieldDate)
	assert.Equal(t, "hire_date", c.Field)
	assert.Equal(t, OpEquals, c.Operator)
	assert.True(t, c.Value.IsEmpty())
	assert.False(t, c.Valid())
}

func TestSetOperatorNullaryDiscardsValue(t *testing.T) {
	c := NewCondition()
	c.SetField("phone", FieldText)
	c.Value = TextValue("082")

	c.SetOperator(OpIsNull)
	assert.True(t, c.Value.IsEmpty())
	assert.True(t, c.Valid())
}

func TestConditionUnmarshalRetagsBetween(t *testing.T) {
	raw := `{"id":"c1","field":"hire_date","operator":"between","value":["2024-01-01","2024-06-30"]}`
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	from, to, ok := c.Value.AsRange()
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-06-30", to)
}

func TestConditionUnmarshalKeepsListForIn(t *testing.T) {
	raw := `{"id":"c2","field":"status","operator":"in","value":["active","on-leave"]}`
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	list, ok := c.Value.AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"active", "on-leave"}, list)
}

func TestConditionEqualBoundsRoundTrip(t *testing.T) {
	// A single-day range has identical bounds; the round trip must not
	// collapse them into an open-ended range.
	c := Condition{
		ID:       "c5",
		Field:    "hire_date",
		Operator: OpBetween,
		Value:    RangeValue("2020-01-01", "2020-01-01"),
	}
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var back Condition
	require.NoError(t, json.Unmarshal(raw, &back))
	from, to, ok := back.Value.AsRange()
	require.True(t, ok)
	assert.Equal(t, "2020-01-01", from)
	assert.Equal(t, "2020-01-01", to)
}

func TestConditionRoundTrip(t *testing.T) {
	c := Condition{
		ID:       "c3",
		Field:    "birth_date",
		Operator: OpBetween,
		Value:    RangeValue("1990-01-01", "1999-12-31"),
	}
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var back Condition
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Field, back.Field)
	assert.Equal(t, c.Operator, back.Operator)
	assert.True(t, c.Value.Equal(back.Value))
}
