// Package listing serves the employee records API: the filterable,
// searchable, paginated listing plus record CRUD and the field schema the
// advanced filter builder is driven by.
package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Vinzor11/hrgrid/pkg/database"
	"github.com/Vinzor11/hrgrid/pkg/fieldschema"
	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/models"
	"github.com/Vinzor11/hrgrid/pkg/querystate"
)

// APIError is the error payload of a failed response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Response is the envelope for non-listing endpoints.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// Handler serves the employee listing and record endpoints.
type Handler struct {
	db             database.Database
	catalog        *fieldschema.Catalog
	defaultPerPage int
	maxPerPage     int
}

// NewHandler creates a handler over the given database and field catalog.
func NewHandler(db database.Database, catalog *fieldschema.Catalog) *Handler {
	return &Handler{
		db:             db,
		catalog:        catalog,
		defaultPerPage: 25,
		maxPerPage:     100,
	}
}

// SetPageSizes overrides the default and maximum page sizes.
func (h *Handler) SetPageSizes(def, max int) {
	if def > 0 {
		h.defaultPerPage = def
	}
	if max > 0 {
		h.maxPerPage = max
	}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/employees", h.HandleList).Methods("GET")
	r.HandleFunc("/api/employees", h.HandleCreate).Methods("POST")
	r.HandleFunc("/api/employees/schema", h.HandleSchema).Methods("GET")
	r.HandleFunc("/api/employees/{id}", h.HandleGet).Methods("GET")
	r.HandleFunc("/api/employees/{id}", h.HandleUpdate).Methods("PUT")
	r.HandleFunc("/api/employees/{id}", h.HandleDelete).Methods("DELETE")
	r.HandleFunc("/api/employees/{id}/restore", h.HandleRestore).Methods("POST")
	r.HandleFunc("/api/departments", h.HandleDepartments).Methods("GET")
	r.HandleFunc("/api/positions", h.HandlePositions).Methods("GET")
}

// HandleList serves the employee listing: quick filters, scoped search,
// advanced filter conditions, sorting and pagination, with optional dropdown
// facets in the same response.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleList", err)
		}
	}()

	ctx := r.Context()
	state := querystate.ParseQuery(r.URL.Query())

	perPage := state.PerPage
	if perPage <= 0 {
		perPage = h.defaultPerPage
	}
	if perPage > h.maxPerPage {
		perPage = h.maxPerPage
	}
	page := state.Page
	if page < 1 {
		page = 1
	}

	q := h.db.NewSelect().Model(&[]models.Employee{})
	q = applyQuickFilters(q, state)
	q = applySearch(q, state)
	q = applyConditions(q, h.catalog, state.Filters)

	total, err := q.Count(ctx)
	if err != nil {
		logger.Error("Failed to count employees: %v", err)
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to count records", err)
		return
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	if page > lastPage {
		page = lastPage
	}
	offset := (page - 1) * perPage

	q = applySort(q, h.catalog, state)
	q = q.Limit(perPage).Offset(offset)

	var employees []models.Employee
	if err := q.Scan(ctx, &employees); err != nil {
		logger.Error("Failed to fetch employees: %v", err)
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to fetch records", err)
		return
	}

	data := make([]map[string]interface{}, 0, len(employees))
	for _, e := range employees {
		data = append(data, employeeRow(e, state.VisibleColumns))
	}

	from, to := 0, 0
	if len(employees) > 0 {
		from = offset + 1
		to = offset + len(employees)
	}

	result := querystate.Page{
		Data: data,
		Meta: querystate.Meta{
			CurrentPage: page,
			From:        from,
			To:          to,
			Total:       int64(total),
			LastPage:    lastPage,
			PerPage:     perPage,
		},
	}

	if state.NeedDropdowns {
		dropdowns, err := h.loadDropdowns(ctx)
		if err != nil {
			logger.Error("Failed to load dropdowns: %v", err)
		} else {
			result.Dropdowns = dropdowns
		}
	}

	h.sendJSON(w, http.StatusOK, result)
}

// employeeRow flattens an employee into a listing row, trimmed to the
// visible columns when the client requested a subset. Identifier columns
// are always present.
func employeeRow(e models.Employee, visible []string) map[string]interface{} {
	row := map[string]interface{}{
		"id":            e.ID,
		"employee_no":   e.EmployeeNo,
		"first_name":    e.FirstName,
		"surname":       e.Surname,
		"email":         e.Email,
		"phone":         e.Phone,
		"birth_date":    e.BirthDate,
		"status":        e.Status,
		"employee_type": e.EmployeeType,
		"hire_date":     e.HireDate,
		"rank":          e.Rank,
		"is_manager":    e.IsManager,
		"city":          e.City,
		"province":      e.Province,
		"postal_code":   e.PostalCode,
		"department_id": e.DepartmentID,
		"position_id":   e.PositionID,
		"created_at":    e.CreatedAt,
		"updated_at":    e.UpdatedAt,
	}
	if e.DeletedAt != nil {
		row["deleted_at"] = *e.DeletedAt
	}
	if len(visible) == 0 {
		return row
	}

	keep := map[string]bool{"id": true, "employee_no": true}
	for _, col := range visible {
		keep[col] = true
	}
	trimmed := make(map[string]interface{}, len(keep))
	for key, value := range row {
		if keep[key] {
			trimmed[key] = value
		}
	}
	return trimmed
}

func (h *Handler) loadDropdowns(ctx context.Context) (*querystate.Dropdowns, error) {
	var departments []models.Department
	if err := h.db.NewSelect().Model(&departments).Order("name ASC").Scan(ctx, &departments); err != nil {
		return nil, fmt.Errorf("departments: %w", err)
	}
	var positions []models.Position
	if err := h.db.NewSelect().Model(&positions).Order("name ASC").Scan(ctx, &positions); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	statuses, err := h.distinctValues(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("statuses: %w", err)
	}
	types, err := h.distinctValues(ctx, "employee_type")
	if err != nil {
		return nil, fmt.Errorf("employee types: %w", err)
	}

	dd := &querystate.Dropdowns{
		Statuses:      statuses,
		EmployeeTypes: types,
	}
	for _, d := range departments {
		dd.Departments = append(dd.Departments, querystate.Option{ID: d.ID, Name: d.Name})
	}
	for _, p := range positions {
		dd.Positions = append(dd.Positions, querystate.Option{ID: p.ID, Name: p.Name})
	}
	return dd, nil
}

func (h *Handler) distinctValues(ctx context.Context, column string) ([]string, error) {
	var rows []struct {
		Value string `json:"value"`
	}
	query := fmt.Sprintf(
		"SELECT DISTINCT %s AS value FROM employees WHERE %s != '' AND deleted_at IS NULL ORDER BY %s",
		column, column, column)
	if err := h.db.Query(ctx, &rows, query); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Value)
	}
	return values, nil
}

// HandleSchema returns the filterable field catalog, grouped for the filter
// builder UI.
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	groups := h.catalog.Search(r.URL.Query().Get("search"))
	h.sendResponse(w, groups)
}

// HandleGet returns a single employee by id, deleted or not.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleGet", err)
		}
	}()

	id := mux.Vars(r)["id"]
	employee, err := h.findEmployee(r.Context(), id)
	if err != nil {
		h.sendError(w, http.StatusNotFound, "not_found", "Employee not found", err)
		return
	}
	h.sendResponse(w, employee)
}

// HandleCreate inserts a new employee record.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleCreate", err)
		}
	}()

	var employee models.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		logger.Error("Failed to decode request body: %v", err)
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	if employee.EmployeeNo == "" || employee.Surname == "" {
		h.sendError(w, http.StatusBadRequest, "invalid_request", "employee_no and surname are required", nil)
		return
	}
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	if _, err := h.db.NewInsert().Model(&employee).Exec(r.Context()); err != nil {
		logger.Error("Failed to create employee: %v", err)
		h.sendError(w, http.StatusInternalServerError, "create_failed", "Failed to create employee", err)
		return
	}

	logger.Info("Created employee %s (%s)", employee.ID, employee.EmployeeNo)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Data: employee})
}

// HandleUpdate applies a partial update to an employee.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleUpdate", err)
		}
	}()

	id := mux.Vars(r)["id"]
	ctx := r.Context()

	if _, err := h.findEmployee(ctx, id); err != nil {
		h.sendError(w, http.StatusNotFound, "not_found", "Employee not found", err)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		logger.Error("Failed to decode request body: %v", err)
		h.sendError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	// Immutable columns.
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "deleted_at")
	if len(updates) == 0 {
		h.sendError(w, http.StatusBadRequest, "invalid_request", "No updatable fields in request", nil)
		return
	}
	updates["updated_at"] = time.Now()

	result, err := h.db.NewUpdate().Table("employees").SetMap(updates).Where("id = ?", id).Exec(ctx)
	if err != nil {
		logger.Error("Failed to update employee %s: %v", id, err)
		h.sendError(w, http.StatusInternalServerError, "update_failed", "Failed to update employee", err)
		return
	}
	logger.Info("Updated employee %s (%d row)", id, result.RowsAffected())

	employee, err := h.findEmployee(ctx, id)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to reload employee", err)
		return
	}
	h.sendResponse(w, employee)
}

// HandleDelete marks an employee deleted. The row stays queryable through
// show_deleted.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleDelete", err)
		}
	}()

	id := mux.Vars(r)["id"]
	now := time.Now()
	result, err := h.db.NewUpdate().
		Table("employees").
		SetMap(map[string]interface{}{"deleted_at": now, "updated_at": now}).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Exec(r.Context())
	if err != nil {
		logger.Error("Failed to delete employee %s: %v", id, err)
		h.sendError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete employee", err)
		return
	}
	if result.RowsAffected() == 0 {
		h.sendError(w, http.StatusNotFound, "not_found", "Employee not found or already deleted", nil)
		return
	}

	logger.Info("Soft-deleted employee %s", id)
	h.sendResponse(w, map[string]interface{}{"id": id, "deleted_at": now})
}

// HandleRestore clears the deletion marker on an employee.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.handlePanic(w, "HandleRestore", err)
		}
	}()

	id := mux.Vars(r)["id"]
	result, err := h.db.NewUpdate().
		Table("employees").
		SetMap(map[string]interface{}{"deleted_at": nil, "updated_at": time.Now()}).
		Where("id = ?", id).
		Where("deleted_at IS NOT NULL").
		Exec(r.Context())
	if err != nil {
		logger.Error("Failed to restore employee %s: %v", id, err)
		h.sendError(w, http.StatusInternalServerError, "restore_failed", "Failed to restore employee", err)
		return
	}
	if result.RowsAffected() == 0 {
		h.sendError(w, http.StatusNotFound, "not_found", "Employee not found or not deleted", nil)
		return
	}

	logger.Info("Restored employee %s", id)
	employee, err := h.findEmployee(r.Context(), id)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to reload employee", err)
		return
	}
	h.sendResponse(w, employee)
}

// HandleDepartments lists departments for the quick-filter dropdown.
func (h *Handler) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	var departments []models.Department
	if err := h.db.NewSelect().Model(&departments).Order("name ASC").Scan(r.Context(), &departments); err != nil {
		logger.Error("Failed to fetch departments: %v", err)
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to fetch departments", err)
		return
	}
	h.sendResponse(w, departments)
}

// HandlePositions lists positions for the quick-filter dropdown.
func (h *Handler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	var positions []models.Position
	if err := h.db.NewSelect().Model(&positions).Order("rank ASC").Scan(r.Context(), &positions); err != nil {
		logger.Error("Failed to fetch positions: %v", err)
		h.sendError(w, http.StatusInternalServerError, "query_failed", "Failed to fetch positions", err)
		return
	}
	h.sendResponse(w, positions)
}

func (h *Handler) findEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employees []models.Employee
	err := h.db.NewSelect().
		Model(&employees).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx, &employees)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("employee %s not found", id)
	}
	return &employees[0], nil
}

func (h *Handler) handlePanic(w http.ResponseWriter, method string, err interface{}) {
	stack := debug.Stack()
	logger.Error("Panic in %s: %v\nStack trace:\n%s", method, err, string(stack))
	h.sendError(w, http.StatusInternalServerError, "internal_error",
		fmt.Sprintf("Internal server error in %s", method), fmt.Errorf("%v", err))
}

func (h *Handler) sendResponse(w http.ResponseWriter, data interface{}) {
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, code, message string, err error) {
	var details string
	if err != nil {
		details = err.Error()
	}
	h.sendJSON(w, statusCode, Response{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to write JSON response: %v", err)
	}
}
