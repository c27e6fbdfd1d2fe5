package filter

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var genFieldType = gen.OneConstOf(FieldText, FieldSelect, FieldDate, FieldBoolean)

// Property: after a field change the operator is always the first of the new
// type's operator set and the value is gone, whatever state came before.
func TestPropFieldChangeResets(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("field change resets operator and value", prop.ForAll(
		func(prevText string, field string, ft FieldType) bool {
			c := NewCondition()
			c.SetField("previous", FieldText)
			c.Value = TextValue(prevText)

			c.SetField(field, ft)
			ops, _ := OperatorsFor(ft)
			return c.Operator == ops[0] && c.Value.IsEmpty()
		},
		gen.AlphaString(),
		gen.Identifier(),
		genFieldType,
	))

	properties.TestingRun(t)
}

// Property: a nullary operator never coexists with a value.
func TestPropNullaryCarriesNoValue(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("switching to a nullary operator clears the value", prop.ForAll(
		func(text string, toNull bool) bool {
			c := NewCondition()
			c.SetField("phone", FieldText)
			c.Value = TextValue(text)

			op := OpIsNull
			if !toNull {
				op = OpIsNotNull
			}
			c.SetOperator(op)
			return c.Value.IsEmpty() && c.Valid()
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: validity is exactly "field chosen and (nullary or value supplied)".
func TestPropValidity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validity matches its definition", prop.ForAll(
		func(field string, hasField bool, text string) bool {
			c := NewCondition()
			if hasField {
				c.SetField(field, FieldText)
			}
			c.Value = TextValue(text)

			want := hasField && field != "" && text != ""
			return c.Valid() == want
		},
		gen.Identifier(),
		gen.Bool(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: toggling the same option twice is the identity on membership.
func TestPropToggleInvolution(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("double toggle restores membership", prop.ForAll(
		func(items []string, option string) bool {
			v := ListValue(items...)
			before := contains(v, option)
			after := contains(v.Toggle(option).Toggle(option), option)
			return before == after
		},
		gen.SliceOf(gen.Identifier()),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// Property: a marshaled condition decodes back to an equal condition.
func TestPropConditionJSONRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genValue := gen.OneGenOf(
		gen.AlphaString().Map(TextValue),
		gen.SliceOfN(2, gen.Identifier()).Map(func(s []string) Value { return ListValue(s...) }),
		gen.Bool().Map(BoolValue),
	)

	properties.Property("marshal then unmarshal preserves the condition", prop.ForAll(
		func(field string, v Value) bool {
			c := Condition{ID: "p", Field: field, Operator: OpEquals, Value: v}
			raw, err := json.Marshal(c)
			if err != nil {
				return false
			}
			var back Condition
			if err := json.Unmarshal(raw, &back); err != nil {
				return false
			}
			return back.Field == c.Field && back.Operator == c.Operator && back.Value.Equal(c.Value)
		},
		gen.Identifier(),
		genValue,
	))

	properties.TestingRun(t)
}

func contains(v Value, option string) bool {
	list, ok := v.AsList()
	if !ok {
		return false
	}
	for _, item := range list {
		if item == option {
			return true
		}
	}
	return false
}
