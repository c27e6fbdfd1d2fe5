package filter

import (
	"github.com/Vinzor11/hrgrid/pkg/logger"
)

// TypeResolver resolves a field key to its declared type. The field schema
// catalog implements this; tests can supply a map-backed fake.
type TypeResolver interface {
	FieldType(key string) (FieldType, error)
}

// Patch carries partial changes for Model.Update. Nil members are left
// untouched. Field is applied first (resetting operator and value), then
// Operator, then Value.
type Patch struct {
	Field    *string
	Operator *Operator
	Value    *Value
}

// Model owns the ordered list of filter conditions and all structural
// mutations on it. It is driven from a single goroutine (the synchronizer);
// it does not lock.
type Model struct {
	resolver TypeResolver
	conds    []Condition
}

// NewModel creates an empty model resolving field types through r.
func NewModel(r TypeResolver) *Model {
	return &Model{resolver: r}
}

// Add appends a blank condition and returns it.
func (m *Model) Add() Condition {
	c := NewCondition()
	m.conds = append(m.conds, c)
	return c
}

// Remove deletes the condition with the given id. It returns whether a
// condition was removed and whether the removed condition was valid; the
// caller re-applies the remaining filters only when a valid one was removed.
// Unknown ids are a no-op.
func (m *Model) Remove(id string) (removed, wasValid bool) {
	for i, c := range m.conds {
		if c.ID == id {
			wasValid = c.Valid()
			m.conds = append(m.conds[:i], m.conds[i+1:]...)
			return true, wasValid
		}
	}
	return false, false
}

// Update merges the patch into the condition matching id. Unknown ids are a
// no-op. Returns whether a condition was updated.
func (m *Model) Update(id string, patch Patch) bool {
	for i := range m.conds {
		if m.conds[i].ID != id {
			continue
		}
		c := &m.conds[i]
		if patch.Field != nil {
			c.SetField(*patch.Field, m.resolveType(*patch.Field))
		}
		if patch.Operator != nil {
			c.SetOperator(*patch.Operator)
		}
		if patch.Value != nil {
			c.Value = *patch.Value
		}
		return true
	}
	return false
}

func (m *Model) resolveType(field string) FieldType {
	t, err := m.resolver.FieldType(field)
	if err != nil {
		// Defensive fallback to text, but surfaced in the log rather than
		// silently masking a catalog misconfiguration.
		logger.Warn("no field type for %q, falling back to text: %v", field, err)
		return FieldText
	}
	return t
}

// Conditions returns a copy of all conditions, valid or not, in order.
func (m *Model) Conditions() []Condition {
	out := make([]Condition, len(m.conds))
	copy(out, m.conds)
	return out
}

// ValidConditions returns only the conditions that satisfy the validity
// invariant, in order. This is the set that goes on the wire.
func (m *Model) ValidConditions() []Condition {
	var out []Condition
	for _, c := range m.conds {
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

// ValidCount gates the Apply control and badges the filter button.
func (m *Model) ValidCount() int {
	n := 0
	for _, c := range m.conds {
		if c.Valid() {
			n++
		}
	}
	return n
}

// Len returns the number of conditions, including incomplete ones.
func (m *Model) Len() int {
	return len(m.conds)
}

// Clear drops every condition.
func (m *Model) Clear() {
	m.conds = nil
}

// Replace swaps in a restored condition list, e.g. from the preferences
// store after a reload.
func (m *Model) Replace(conds []Condition) {
	m.conds = make([]Condition, len(conds))
	copy(m.conds, conds)
}
