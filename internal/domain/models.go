package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a looked-up office row does not exist.
var ErrNotFound = errors.New("not found")

// Department represents the office.department table
type Department struct {
	ID       int64   `json:"dept_id" db:"dept_id"`
	Name     string  `json:"dept_name" db:"dept_name"`
	Location *string `json:"location" db:"location"`
}

// Employee represents the office.employee table
type Employee struct {
	ID           int64     `json:"emp_id" db:"emp_id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	HireDate     time.Time `json:"hire_date" db:"hire_date"`
	DepartmentID *int64    `json:"dept_id" db:"dept_id"`
}

// Salary represents the office.salary table
type Salary struct {
	ID            int64           `json:"salary_id" db:"salary_id"`
	EmployeeID    int64           `json:"emp_id" db:"emp_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	EffectiveFrom time.Time       `json:"effective_from" db:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to" db:"effective_to"`
}

// Business represents the office.business table
type Business struct {
	ID            int64               `json:"business_id" db:"business_id"`
	Name          string              `json:"business_name" db:"business_name"`
	Industry      *string             `json:"industry" db:"industry"`
	AnnualRevenue decimal.NullDecimal `json:"annual_revenue" db:"annual_revenue"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
}

// EmployeeDetail is an employee with its department and salary history.
type EmployeeDetail struct {
	Employee   Employee    `json:"employee"`
	Department *Department `json:"department"`
	Salaries   []Salary    `json:"salaries"`
}

// DepartmentDetail is a department with the employees assigned to it.
type DepartmentDetail struct {
	Department Department `json:"department"`
	Employees  []Employee `json:"employees"`
}

// OfficeSummary holds the row count of every office table.
type OfficeSummary struct {
	Departments int64 `json:"departments"`
	Employees   int64 `json:"employees"`
	Salaries    int64 `json:"salaries"`
	Businesses  int64 `json:"businesses"`
}

// OfficeSnapshot is the full content of the office schema, used for exports.
type OfficeSnapshot struct {
	Departments []Department
	Employees   []Employee
	Salaries    []Salary
	Businesses  []Business
}
