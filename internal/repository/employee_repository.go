package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/repository/builder"
)

var employeeColumns = []string{"emp_id", "first_name", "last_name", "email", "hire_date", "dept_id"}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db DBTX) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) InsertIfAbsent(ctx context.Context, e *domain.Employee) (bool, error) {
	query, args := builder.NewSQLBuilder().
		Insert(domain.EmployeeTable, "first_name", "last_name", "email", "hire_date", "dept_id").
		Values(e.FirstName, e.LastName, e.Email, e.HireDate, e.DepartmentID).
		OnConflictDoNothing("email").
		Returning("emp_id").
		Build()

	id, inserted, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("failed to insert employee %q: %w", e.Email, err)
	}
	if inserted {
		e.ID = id
	}
	return inserted, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(domain.EmployeeTable).
		Where("emp_id = ?", id).
		Build()

	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.HireDate, &e.DepartmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter domain.PageFilter) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder()
	b.Select(employeeColumns...).
		From(domain.EmployeeTable).
		OrderBy("emp_id ASC")

	if filter.Limit > 0 {
		b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b.Offset(filter.Offset)
	}

	query, args := b.Build()
	return r.query(ctx, query, args)
}

func (r *employeeRepository) ListByDepartment(ctx context.Context, deptID int64) ([]domain.Employee, error) {
	query, args := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From(domain.EmployeeTable).
		Where("dept_id = ?", deptID).
		OrderBy("emp_id ASC").
		Build()
	return r.query(ctx, query, args)
}

func (r *employeeRepository) query(ctx context.Context, query string, args []interface{}) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.HireDate, &e.DepartmentID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return employees, nil
}

func (r *employeeRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query, args := builder.NewSQLBuilder().
		Select("emp_id").
		From(domain.EmployeeTable).
		OrderBy("emp_id ASC").
		Build()

	ids, err := queryIDs(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	return ids, nil
}

// Delete removes an employee together with its salary rows (ON DELETE CASCADE).
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().
		Delete(domain.EmployeeTable).
		Where("emp_id = ?", id).
		Build()

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	query, args := builder.NewSQLBuilder().Select("COUNT(*)").From(domain.EmployeeTable).Build()
	n, err := queryCount(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}
