// Package models holds the HR record types backing the employee listing.
package models

import (
	"time"
)

// Department is an organizational unit.
type Department struct {
	ID        string    `json:"id" gorm:"primaryKey;type:string"`
	Name      string    `json:"name"`
	Code      string    `json:"code" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Department) TableName() string {
	return "departments"
}

// Position is a designation an employee can hold.
type Position struct {
	ID        string    `json:"id" gorm:"primaryKey;type:string"`
	Name      string    `json:"name"`
	Rank      int       `json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:PositionID;references:ID"`
}

func (Position) TableName() string {
	return "positions"
}

// Employee is one employee record. DeletedAt is a plain soft-delete marker:
// the listing excludes marked rows unless show_deleted is requested, so the
// column is filtered explicitly rather than through ORM soft-delete hooks.
type Employee struct {
	ID         string `json:"id" gorm:"primaryKey;type:string"`
	EmployeeNo string `json:"employee_no" gorm:"column:employee_no;uniqueIndex"`
	FirstName  string `json:"first_name"`
	Surname    string `json:"surname"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date"`

	Status       string `json:"status"`
	EmployeeType string `json:"employee_type"`
	HireDate     string `json:"hire_date"`
	Rank         string `json:"rank"`
	IsManager    bool   `json:"is_manager"`

	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`

	DepartmentID string `json:"department_id" gorm:"type:string"`
	PositionID   string `json:"position_id" gorm:"type:string"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
	Position   *Position   `json:"position,omitempty" gorm:"foreignKey:PositionID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

// AllModels returns every model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&Department{},
		&Position{},
		&Employee{},
	}
}
