package filter

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Condition is one user-authored predicate: field, operator, value. The ID
// is opaque and stable for the condition's lifetime; the UI uses it as a
// list key and for targeted removal.
type Condition struct {
	ID       string   `json:"id"`
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// NewCondition creates a blank condition: no field chosen, the text default
// operator, no value.
func NewCondition() Condition {
	return Condition{
		ID:       uuid.NewString(),
		Operator: OpContains,
		Value:    EmptyValue(),
	}
}

// Valid reports whether the condition is complete enough to transmit:
// a field is chosen and either the operator needs no value or a value is
// supplied. Invalid conditions are never an error, they are simply excluded
// from the query.
func (c Condition) Valid() bool {
	if c.Field == "" {
		return false
	}
	if IsNullary(c.Operator) {
		return true
	}
	return !c.Value.IsEmpty()
}

// SetField assigns a new field and resets operator and value to the new
// type's defaults. Leftover state from the previous field never survives a
// field change.
func (c *Condition) SetField(field string, t FieldType) {
	c.Field = field
	c.Operator = DefaultOperator(t)
	c.Value = EmptyValue()
}

// SetOperator assigns a new operator. Nullary operators carry no value, so
// switching to one discards any value already entered.
func (c *Condition) SetOperator(op Operator) {
	c.Operator = op
	if IsNullary(op) {
		c.Value = EmptyValue()
	}
}

// UnmarshalJSON decodes a condition. The wire array shape is shared between
// select lists and date ranges, so the value is held raw until the operator
// is known: "between" decodes it as a [from, to] pair, every other operator
// takes the union decoding. Ranges must not pass through the list path, whose
// dedup would collapse equal bounds.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var p struct {
		ID       string          `json:"id"`
		Field    string          `json:"field"`
		Operator Operator        `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	c.ID = p.ID
	c.Field = p.Field
	c.Operator = p.Operator
	c.Value = EmptyValue()
	if len(p.Value) == 0 {
		return nil
	}
	if c.Operator == OpBetween {
		if v, err := rangeValueJSON(p.Value); err == nil {
			c.Value = v
			return nil
		}
	}
	return c.Value.UnmarshalJSON(p.Value)
}
