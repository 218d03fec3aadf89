package domain

import "context"

// PageFilter defines paging for list queries
type PageFilter struct {
	Limit  int
	Offset int
}

// DepartmentRepository defines data access for office.department
type DepartmentRepository interface {
	// InsertIfAbsent inserts d unless its name already exists. It reports
	// whether a row was written and fills d.ID when it was.
	InsertIfAbsent(ctx context.Context, d *Department) (bool, error)
	GetByID(ctx context.Context, id int64) (*Department, error)
	List(ctx context.Context) ([]Department, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// EmployeeRepository defines data access for office.employee
type EmployeeRepository interface {
	// InsertIfAbsent inserts e unless its email already exists.
	InsertIfAbsent(ctx context.Context, e *Employee) (bool, error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context, filter PageFilter) ([]Employee, error)
	ListByDepartment(ctx context.Context, deptID int64) ([]Employee, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// SalaryRepository defines data access for office.salary
type SalaryRepository interface {
	Insert(ctx context.Context, s *Salary) error
	List(ctx context.Context) ([]Salary, error)
	ListByEmployee(ctx context.Context, empID int64) ([]Salary, error)
	Count(ctx context.Context) (int64, error)
}

// BusinessRepository defines data access for office.business
type BusinessRepository interface {
	Insert(ctx context.Context, b *Business) error
	List(ctx context.Context, filter PageFilter) ([]Business, error)
	Count(ctx context.Context) (int64, error)
}
