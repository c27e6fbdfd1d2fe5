// Package prefs provides best-effort persistence of filter, column, and view
// preferences across sessions. A typed Store wraps an injected key/value
// backend; every setter writes its own key immediately and independently, so
// fragments are never transactional with each other. Reads fall back to the
// zero value on absence or malformed data, never surfacing an error.
package prefs

import (
	"encoding/json"

	"github.com/Vinzor11/hrgrid/pkg/filter"
	"github.com/Vinzor11/hrgrid/pkg/logger"
)

// Backend is the raw key/value layer beneath the typed store. Values are
// opaque serialized bytes. Implementations are single-writer, best-effort.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// Per-resource key suffixes; the resource name ("employees") is prefixed.
const (
	keyStatus          = "filter_status"
	keyDepartments     = "filter_department"
	keyPositions       = "filter_position"
	keyEmployeeType    = "filter_employee_type"
	keyShowDeleted     = "filter_show_deleted"
	keyAdvancedFilters = "advanced_filters"
	keyPerPage         = "perPage"
)

// Global keys shared across resources.
const (
	keyVisibleColumns = "table_columns"
	keyViewMode       = "view_mode"
)

// Store exposes typed get/set methods per logical preference key over an
// injected backend.
type Store struct {
	backend  Backend
	resource string
}

// NewStore creates a store for one resource (e.g. "employees"); the
// resource name namespaces the per-resource keys.
func NewStore(backend Backend, resource string) *Store {
	return &Store{backend: backend, resource: resource}
}

func (s *Store) key(suffix string) string {
	return s.resource + "_" + suffix
}

func (s *Store) read(key string, dest interface{}) bool {
	raw, ok := s.backend.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("malformed preference %q, using default: %v", key, err)
		return false
	}
	return true
}

func (s *Store) write(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("failed to serialize preference %q: %v", key, err)
		return
	}
	s.backend.Set(key, raw)
}

func (s *Store) Status() string {
	var v string
	s.read(s.key(keyStatus), &v)
	return v
}

func (s *Store) SetStatus(v string) {
	s.write(s.key(keyStatus), v)
}

func (s *Store) Departments() []string {
	var v []string
	s.read(s.key(keyDepartments), &v)
	return v
}

func (s *Store) SetDepartments(v []string) {
	s.write(s.key(keyDepartments), v)
}

func (s *Store) Positions() []string {
	var v []string
	s.read(s.key(keyPositions), &v)
	return v
}

func (s *Store) SetPositions(v []string) {
	s.write(s.key(keyPositions), v)
}

func (s *Store) EmployeeType() string {
	var v string
	s.read(s.key(keyEmployeeType), &v)
	return v
}

func (s *Store) SetEmployeeType(v string) {
	s.write(s.key(keyEmployeeType), v)
}

func (s *Store) ShowDeleted() bool {
	var v bool
	s.read(s.key(keyShowDeleted), &v)
	return v
}

func (s *Store) SetShowDeleted(v bool) {
	s.write(s.key(keyShowDeleted), v)
}

func (s *Store) AdvancedFilters() []filter.Condition {
	var v []filter.Condition
	s.read(s.key(keyAdvancedFilters), &v)
	return v
}

func (s *Store) SetAdvancedFilters(v []filter.Condition) {
	s.write(s.key(keyAdvancedFilters), v)
}

// ClearAdvancedFilters removes the key outright, as "Clear All" does.
func (s *Store) ClearAdvancedFilters() {
	s.backend.Delete(s.key(keyAdvancedFilters))
}

func (s *Store) PerPage() int {
	var v int
	s.read(s.key(keyPerPage), &v)
	return v
}

func (s *Store) SetPerPage(v int) {
	s.write(s.key(keyPerPage), v)
}

func (s *Store) VisibleColumns() []string {
	var v []string
	s.read(keyVisibleColumns, &v)
	return v
}

func (s *Store) SetVisibleColumns(v []string) {
	s.write(keyVisibleColumns, v)
}

func (s *Store) ViewMode() string {
	var v string
	s.read(keyViewMode, &v)
	return v
}

func (s *Store) SetViewMode(v string) {
	s.write(keyViewMode, v)
}
