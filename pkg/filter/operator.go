package filter

import (
	"errors"
	"fmt"
)

// FieldType classifies a filterable field and decides which operators and
// value shapes are legal for it.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldSelect  FieldType = "select"
	FieldDate    FieldType = "date"
	FieldBoolean FieldType = "boolean"
)

// Operator is a filter comparison operator as it appears on the wire.
type Operator string

const (
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "not_equals"
	OpStartsWith         Operator = "starts_with"
	OpEndsWith           Operator = "ends_with"
	OpIsNull             Operator = "is_null"
	OpIsNotNull          Operator = "is_not_null"
	OpIn                 Operator = "in"
	OpNotIn              Operator = "not_in"
	OpGreaterThan        Operator = "greater_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThan           Operator = "less_than"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpBetween            Operator = "between"
)

// ErrUnknownFieldType is returned by OperatorsFor when the field type is not
// one of the four known types. Callers get the text operator set alongside
// the error, so they may log and continue with the defensive default.
var ErrUnknownFieldType = errors.New("unknown field type")

// Operator sets per field type. Order matters: the first entry is the
// default operator assigned when a field of that type is chosen.
var (
	textOperators = []Operator{
		OpContains, OpNotContains, OpEquals, OpNotEquals,
		OpStartsWith, OpEndsWith, OpIsNull, OpIsNotNull,
	}
	selectOperators = []Operator{
		OpEquals, OpNotEquals, OpIn, OpNotIn,
	}
	dateOperators = []Operator{
		OpEquals, OpGreaterThan, OpGreaterThanOrEqual,
		OpLessThan, OpLessThanOrEqual, OpBetween,
	}
	booleanOperators = []Operator{
		OpEquals,
	}
)

// OperatorsFor returns the legal operator set for a field type, in fixed
// precedence order. Unknown types fall back to the text set and report
// ErrUnknownFieldType so the misconfiguration is visible to the caller.
func OperatorsFor(t FieldType) ([]Operator, error) {
	switch t {
	case FieldText:
		return textOperators, nil
	case FieldSelect:
		return selectOperators, nil
	case FieldDate:
		return dateOperators, nil
	case FieldBoolean:
		return booleanOperators, nil
	default:
		return textOperators, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}
}

// DefaultOperator returns the first operator of the type's set, the one a
// condition resets to when the field changes.
func DefaultOperator(t FieldType) Operator {
	ops, _ := OperatorsFor(t)
	return ops[0]
}

// IsNullary reports whether the operator carries no value.
func IsNullary(op Operator) bool {
	return op == OpIsNull || op == OpIsNotNull
}

// ValidOperator reports whether op belongs to the operator set of t.
func ValidOperator(t FieldType, op Operator) bool {
	ops, _ := OperatorsFor(t)
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

var operatorLabels = map[Operator]string{
	OpContains:           "contains",
	OpNotContains:        "does not contain",
	OpEquals:             "equals",
	OpNotEquals:          "does not equal",
	OpStartsWith:         "starts with",
	OpEndsWith:           "ends with",
	OpIsNull:             "is empty",
	OpIsNotNull:          "is not empty",
	OpIn:                 "is any of",
	OpNotIn:              "is none of",
	OpGreaterThan:        "after",
	OpGreaterThanOrEqual: "on or after",
	OpLessThan:           "before",
	OpLessThanOrEqual:    "on or before",
	OpBetween:            "between",
}

// Label returns the human-readable label shown in the operator dropdown.
func Label(op Operator) string {
	if l, ok := operatorLabels[op]; ok {
		return l
	}
	return string(op)
}
