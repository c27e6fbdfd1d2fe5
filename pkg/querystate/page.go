package querystate

// Meta is the offset-pagination block of a listing response.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
}

// Option is one entry of a facet dropdown.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Dropdowns carries the facet option lists the server returns when
// need_dropdowns is set.
type Dropdowns struct {
	Departments   []Option `json:"departments"`
	Positions     []Option `json:"positions"`
	Statuses      []string `json:"statuses"`
	EmployeeTypes []string `json:"employee_types"`
}

// Page is the listing response as the client consumes it. Rows are kept
// generic; the table renders whatever columns the server sent.
type Page struct {
	Data      []map[string]interface{} `json:"data"`
	Meta      Meta                     `json:"meta"`
	Dropdowns *Dropdowns               `json:"dropdowns,omitempty"`
}
