package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolver is a map-backed TypeResolver for tests.
type mapResolver map[string]FieldType

func (m mapResolver) FieldType(key string) (FieldType, error) {
	t, ok := m[key]
	if !ok {
		return "", assert.AnError
	}
	return t, nil
}

var testResolver = mapResolver{
	"surname":    FieldText,
	"status":     FieldSelect,
	"hire_date":  FieldDate,
	"is_manager": FieldBoolean,
}

func strptr(s string) *string     { return &s }
func opptr(op Operator) *Operator { return &op }
func valptr(v Value) *Value       { return &v }

func TestModelAddRemove(t *testing.T) {
	m := NewModel(testResolver)
	a := m.Add()
	b := m.Add()
	assert.Equal(t, 2, m.Len())

	removed, wasValid := m.Remove(a.ID)
	assert.True(t, removed)
	assert.False(t, wasValid)
	assert.Equal(t, 1, m.Len())

	removed, _ = m.Remove("no-such-id")
	assert.False(t, removed)
	assert.Equal(t, 1, m.Len())

	// Make b valid, then remove it: wasValid must come back true so the
	// caller knows to refetch.
	m.Update(b.ID, Patch{Field: strptr("surname"), Value: valptr(TextValue("n"))})
	removed, wasValid = m.Remove(b.ID)
	assert.True(t, removed)
	assert.True(t, wasValid)
	assert.Equal(t, 0, m.Len())
}

func TestModelUpdateOrder(t *testing.T) {
	m := NewModel(testResolver)
	c := m.Add()

	// Field and value in one patch: the field reset runs first, then the
	// value lands, so the condition comes out valid.
	ok := m.Update(c.ID, Patch{Field: strptr("status"), Value: valptr(ListValue("active"))})
	require.True(t, ok)

	got := m.Conditions()[0]
	assert.Equal(t, "status", got.Field)
	assert.Equal(t, OpEquals, got.Operator)
	assert.True(t, got.Valid())
}

func TestModelUpdateFieldChangeDropsValue(t *testing.T) {
	m := NewModel(testResolver)
	c := m.Add()
	m.Update(c.ID, Patch{Field: strptr("surname")})
	m.Update(c.ID, Patch{Operator: opptr(OpStartsWith), Value: valptr(TextValue("bo"))})
	require.Equal(t, 1, m.ValidCount())

	m.Update(c.ID, Patch{Field: strptr("hire_date")})
	got := m.Conditions()[0]
	assert.Equal(t, OpEquals, got.Operator)
	assert.True(t, got.Value.IsEmpty())
	assert.Equal(t, 0, m.ValidCount())
}

func TestModelUnknownFieldFallsBackToText(t *testing.T) {
	m := NewModel(testResolver)
	c := m.Add()
	m.Update(c.ID, Patch{Field: strptr("mystery_column")})

	got := m.Conditions()[0]
	assert.Equal(t, OpContains, got.Operator)
}

func TestModelValidConditions(t *testing.T) {
	m := NewModel(testResolver)
	a := m.Add()
	m.Add() // stays blank
	c := m.Add()

	m.Update(a.ID, Patch{Field: strptr("surname"), Value: valptr(TextValue("mok"))})
	m.Update(c.ID, Patch{Field: strptr("is_manager"), Value: valptr(BoolValue(true))})

	valid := m.ValidConditions()
	require.Len(t, valid, 2)
	assert.Equal(t, a.ID, valid[0].ID)
	assert.Equal(t, c.ID, valid[1].ID)
	assert.Equal(t, 2, m.ValidCount())
	assert.Equal(t, 3, m.Len())
}

func TestModelClearAndReplace(t *testing.T) {
	m := NewModel(testResolver)
	m.Add()
	m.Add()
	m.Clear()
	assert.Equal(t, 0, m.Len())

	restored := []Condition{
		{ID: "r1", Field: "surname", Operator: OpContains, Value: TextValue("a")},
	}
	m.Replace(restored)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, m.ValidCount())
}
