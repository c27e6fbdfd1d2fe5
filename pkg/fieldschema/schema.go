// Package fieldschema holds the server-supplied catalog of filterable
// fields: grouped, typed, and for select fields carrying their option list.
// The catalog is read-only from the query engine's perspective.
package fieldschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Vinzor11/hrgrid/pkg/filter"
)

// ErrUnknownField is returned when a field key is not in the catalog.
var ErrUnknownField = errors.New("unknown field")

// Field describes one filterable column.
type Field struct {
	Key     string           `json:"key"`
	Label   string           `json:"label"`
	Type    filter.FieldType `json:"type"`
	Options []string         `json:"options,omitempty"`
}

// Group is a logical category of fields (identification, employment, ...).
type Group struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// Catalog is the full field schema for one resource.
type Catalog struct {
	Groups []Group `json:"groups"`

	byKey map[string]Field
}

// NewCatalog builds a catalog and its key index.
func NewCatalog(groups ...Group) *Catalog {
	c := &Catalog{Groups: groups, byKey: make(map[string]Field)}
	for _, g := range groups {
		for _, f := range g.Fields {
			c.byKey[f.Key] = f
		}
	}
	return c
}

// Field looks up a field by key.
func (c *Catalog) Field(key string) (Field, error) {
	f, ok := c.byKey[key]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f, nil
}

// Has reports whether key is a catalog field.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// FieldType implements filter.TypeResolver.
func (c *Catalog) FieldType(key string) (filter.FieldType, error) {
	f, err := c.Field(key)
	if err != nil {
		return "", err
	}
	return f.Type, nil
}

// Search returns the groups filtered to fields whose label or key contains
// term, case-insensitively. Groups left with no matching field are dropped.
// An empty term returns the full catalog.
func (c *Catalog) Search(term string) []Group {
	if term == "" {
		return c.Groups
	}
	term = strings.ToLower(term)
	var out []Group
	for _, g := range c.Groups {
		var fields []Field
		for _, f := range g.Fields {
			if strings.Contains(strings.ToLower(f.Label), term) ||
				strings.Contains(strings.ToLower(f.Key), term) {
				fields = append(fields, f)
			}
		}
		if len(fields) > 0 {
			out = append(out, Group{Key: g.Key, Label: g.Label, Fields: fields})
		}
	}
	return out
}

// DefaultCatalog is the employee field schema: the columns of the employee
// table that support advanced filtering, grouped the way the filter panel
// presents them.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Group{
			Key:   "identification",
			Label: "Identification",
			Fields: []Field{
				{Key: "employee_no", Label: "Employee No", Type: filter.FieldText},
				{Key: "first_name", Label: "First Name", Type: filter.FieldText},
				{Key: "surname", Label: "Surname", Type: filter.FieldText},
				{Key: "email", Label: "Email", Type: filter.FieldText},
				{Key: "phone", Label: "Phone", Type: filter.FieldText},
				{Key: "birth_date", Label: "Birth Date", Type: filter.FieldDate},
			},
		},
		Group{
			Key:   "employment",
			Label: "Employment",
			Fields: []Field{
				{Key: "status", Label: "Status", Type: filter.FieldSelect,
					Options: []string{"active", "inactive", "on-leave"}},
				{Key: "employee_type", Label: "Employee Type", Type: filter.FieldSelect,
					Options: []string{"permanent", "contract", "intern"}},
				{Key: "hire_date", Label: "Hire Date", Type: filter.FieldDate},
				{Key: "rank", Label: "Rank", Type: filter.FieldText},
				{Key: "is_manager", Label: "Is Manager", Type: filter.FieldBoolean},
			},
		},
		Group{
			Key:   "address",
			Label: "Address",
			Fields: []Field{
				{Key: "city", Label: "City", Type: filter.FieldText},
				{Key: "province", Label: "Province", Type: filter.FieldText},
				{Key: "postal_code", Label: "Postal Code", Type: filter.FieldText},
			},
		},
	)
}
