package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vinzor11/hrgrid/pkg/logger"
	"github.com/Vinzor11/hrgrid/pkg/models"
)

// seedDB loads a small sample dataset. It is a no-op when employees already
// exist.
func seedDB(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Database already seeded, skipping")
		return nil
	}

	departments := []models.Department{
		{ID: uuid.NewString(), Name: "Engineering", Code: "ENG"},
		{ID: uuid.NewString(), Name: "Human Resources", Code: "HR"},
		{ID: uuid.NewString(), Name: "Finance", Code: "FIN"},
	}
	positions := []models.Position{
		{ID: uuid.NewString(), Name: "Software Engineer", Rank: 3},
		{ID: uuid.NewString(), Name: "Engineering Manager", Rank: 5},
		{ID: uuid.NewString(), Name: "HR Officer", Rank: 2},
		{ID: uuid.NewString(), Name: "Accountant", Rank: 3},
	}

	employees := []models.Employee{
		{
			ID: uuid.NewString(), EmployeeNo: "EMP-0001",
			FirstName: "Thandi", Surname: "Nkosi", Email: "thandi.nkosi@example.com",
			Phone: "082-555-0101", BirthDate: "1990-04-12",
			Status: "active", EmployeeType: "permanent", HireDate: "2018-02-01",
			Rank: "senior", IsManager: true,
			City: "Johannesburg", Province: "Gauteng", PostalCode: "2000",
			DepartmentID: departments[0].ID, PositionID: positions[1].ID,
		},
		{
			ID: uuid.NewString(), EmployeeNo: "EMP-0002",
			FirstName: "Pieter", Surname: "van der Merwe", Email: "pieter.vdm@example.com",
			Phone: "083-555-0102", BirthDate: "1994-09-30",
			Status: "active", EmployeeType: "permanent", HireDate: "2020-07-15",
			Rank: "intermediate", IsManager: false,
			City: "Cape Town", Province: "Western Cape", PostalCode: "8001",
			DepartmentID: departments[0].ID, PositionID: positions[0].ID,
		},
		{
			ID: uuid.NewString(), EmployeeNo: "EMP-0003",
			FirstName: "Lerato", Surname: "Mokoena", Email: "lerato.mokoena@example.com",
			Phone: "084-555-0103", BirthDate: "1988-01-22",
			Status: "on-leave", EmployeeType: "permanent", HireDate: "2016-11-01",
			Rank: "senior", IsManager: false,
			City: "Pretoria", Province: "Gauteng", PostalCode: "0002",
			DepartmentID: departments[1].ID, PositionID: positions[2].ID,
		},
		{
			ID: uuid.NewString(), EmployeeNo: "EMP-0004",
			FirstName: "Sipho", Surname: "Dlamini", Email: "sipho.dlamini@example.com",
			Phone: "081-555-0104", BirthDate: "1999-06-05",
			Status: "active", EmployeeType: "contract", HireDate: "2023-03-20",
			Rank: "junior", IsManager: false,
			City: "Durban", Province: "KwaZulu-Natal", PostalCode: "4001",
			DepartmentID: departments[2].ID, PositionID: positions[3].ID,
		},
		{
			ID: uuid.NewString(), EmployeeNo: "EMP-0005",
			FirstName: "Anika", Surname: "Botha", Email: "anika.botha@example.com",
			Phone: "082-555-0105", BirthDate: "2001-12-17",
			Status: "inactive", EmployeeType: "intern", HireDate: "2024-01-08",
			Rank: "junior", IsManager: false,
			City: "Stellenbosch", Province: "Western Cape", PostalCode: "7600",
			DepartmentID: departments[2].ID, PositionID: positions[3].ID,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&departments).Error; err != nil {
			return fmt.Errorf("departments: %w", err)
		}
		if err := tx.Create(&positions).Error; err != nil {
			return fmt.Errorf("positions: %w", err)
		}
		if err := tx.Create(&employees).Error; err != nil {
			return fmt.Errorf("employees: %w", err)
		}
		logger.Info("Seeded %d departments, %d positions, %d employees",
			len(departments), len(positions), len(employees))
		return nil
	})
}
