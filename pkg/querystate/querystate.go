// Package querystate builds the canonical, serializable query snapshot that
// the synchronizer sends to the employee listing endpoint, and parses it
// back on the server side. The snapshot is rebuilt fresh on every change,
// never diffed.
package querystate

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/Vinzor11/hrgrid/pkg/filter"
	"github.com/Vinzor11/hrgrid/pkg/logger"
)

// Search modes for the free-text search box.
const (
	SearchAny        = "any"
	SearchID         = "id"
	SearchName       = "name"
	SearchPosition   = "position"
	SearchDepartment = "department"
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Wire parameter names, as used by the listing endpoint.
const (
	ParamPage            = "page"
	ParamPerPage         = "per_page"
	ParamSearch          = "search"
	ParamSearchMode      = "search_mode"
	ParamStatus          = "status"
	ParamDepartmentIDs   = "department_ids[]"
	ParamPositionIDs     = "position_ids[]"
	ParamDepartmentID    = "department_id"
	ParamPositionID      = "position_id"
	ParamEmployeeType    = "employee_type"
	ParamShowDeleted     = "show_deleted"
	ParamSortBy          = "sort_by"
	ParamSortOrder       = "sort_order"
	ParamVisibleColumns  = "visible_columns"
	ParamAdvancedFilters = "advanced_filters"
	ParamNeedDropdowns   = "need_dropdowns"
)

// QueryState is the unioned snapshot of everything that shapes one listing
// request. Filters holds only conditions intended for transmission; invalid
// ones must be excluded by the caller before they reach this struct.
type QueryState struct {
	Page    int
	PerPage int

	Search     string
	SearchMode string

	Status        string
	DepartmentIDs []string
	PositionIDs   []string
	EmployeeType  string
	ShowDeleted   bool

	SortBy    string
	SortOrder string

	VisibleColumns []string

	Filters []filter.Condition

	// NeedDropdowns is derived from the quick filters on the client side;
	// the server honors it as an explicit request for facet data.
	NeedDropdowns bool
}

// QuickFilterActive reports whether any quick filter deviates from its
// default. When true the server is asked to return facet dropdown data.
func (q QueryState) QuickFilterActive() bool {
	return q.Status != "" ||
		len(q.DepartmentIDs) > 0 ||
		len(q.PositionIDs) > 0 ||
		q.EmployeeType != "" ||
		q.ShowDeleted
}

// Params flattens the state into wire parameters. Empty values are stripped
// rather than sent: key absence, not an empty value, is the signal for "not
// filtering on this". In particular advanced_filters is omitted entirely
// when there are no conditions.
func (q QueryState) Params() url.Values {
	v := url.Values{}

	if q.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set(ParamPerPage, strconv.Itoa(q.PerPage))
	}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
		if q.SearchMode != "" && q.SearchMode != SearchAny {
			v.Set(ParamSearchMode, q.SearchMode)
		}
	}
	if q.Status != "" {
		v.Set(ParamStatus, q.Status)
	}
	for _, id := range q.DepartmentIDs {
		v.Add(ParamDepartmentIDs, id)
	}
	for _, id := range q.PositionIDs {
		v.Add(ParamPositionIDs, id)
	}
	// Singular legacy keys for consumers that predate multi-select.
	if len(q.DepartmentIDs) == 1 {
		v.Set(ParamDepartmentID, q.DepartmentIDs[0])
	}
	if len(q.PositionIDs) == 1 {
		v.Set(ParamPositionID, q.PositionIDs[0])
	}
	if q.EmployeeType != "" {
		v.Set(ParamEmployeeType, q.EmployeeType)
	}
	if q.ShowDeleted {
		v.Set(ParamShowDeleted, "true")
	}
	if q.SortBy != "" {
		v.Set(ParamSortBy, q.SortBy)
		order := q.SortOrder
		if order != SortDesc {
			order = SortAsc
		}
		v.Set(ParamSortOrder, order)
	}
	if len(q.VisibleColumns) > 0 {
		cols, err := json.Marshal(q.VisibleColumns)
		if err == nil {
			v.Set(ParamVisibleColumns, string(cols))
		}
	}
	if len(q.Filters) > 0 {
		filters, err := json.Marshal(q.Filters)
		if err == nil {
			v.Set(ParamAdvancedFilters, string(filters))
		} else {
			logger.Warn("failed to encode advanced filters: %v", err)
		}
	}
	if q.QuickFilterActive() {
		v.Set(ParamNeedDropdowns, "true")
	}

	return v
}

// ParseQuery is the server-side inverse of Params. Absent keys become zero
// values; malformed JSON payloads are logged and treated as absent, matching
// the engine's "absence, never error" policy for optional fragments.
func ParseQuery(v url.Values) QueryState {
	q := QueryState{
		Page:       1,
		SearchMode: SearchAny,
		SortOrder:  SortAsc,
	}

	if page, err := strconv.Atoi(v.Get(ParamPage)); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(v.Get(ParamPerPage)); err == nil && perPage > 0 {
		q.PerPage = perPage
	}

	q.Search = v.Get(ParamSearch)
	if mode := v.Get(ParamSearchMode); mode != "" {
		q.SearchMode = mode
	}

	q.Status = v.Get(ParamStatus)
	q.DepartmentIDs = v[ParamDepartmentIDs]
	q.PositionIDs = v[ParamPositionIDs]
	if len(q.DepartmentIDs) == 0 && v.Get(ParamDepartmentID) != "" {
		q.DepartmentIDs = []string{v.Get(ParamDepartmentID)}
	}
	if len(q.PositionIDs) == 0 && v.Get(ParamPositionID) != "" {
		q.PositionIDs = []string{v.Get(ParamPositionID)}
	}
	q.EmployeeType = v.Get(ParamEmployeeType)
	q.ShowDeleted = v.Get(ParamShowDeleted) == "true"
	q.NeedDropdowns = v.Get(ParamNeedDropdowns) == "true"

	q.SortBy = v.Get(ParamSortBy)
	if v.Get(ParamSortOrder) == SortDesc {
		q.SortOrder = SortDesc
	}

	if cols := v.Get(ParamVisibleColumns); cols != "" {
		if err := json.Unmarshal([]byte(cols), &q.VisibleColumns); err != nil {
			logger.Warn("malformed visible_columns, ignoring: %v", err)
			q.VisibleColumns = nil
		}
	}
	if raw := v.Get(ParamAdvancedFilters); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filters); err != nil {
			logger.Warn("malformed advanced_filters, ignoring: %v", err)
			q.Filters = nil
		}
	}

	return q
}
