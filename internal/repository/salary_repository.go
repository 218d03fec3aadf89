package repository

import (
	"context"
	"fmt"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/repository/builder"
)

var salaryColumns = []string{"salary_id", "emp_id", "amount", "effective_from", "effective_to"}

type salaryRepository struct {
	db DBTX
}

// NewSalaryRepository creates a new instance of SalaryRepository
func NewSalaryRepository(db DBTX) domain.SalaryRepository {
	return &salaryRepository{db: db}
}

// Insert writes a salary row and fills s.ID.
func (r *salaryRepository) Insert(ctx context.Context, s *domain.Salary) error {
	query, args := builder.NewSQLBuilder().
		Insert(domain.SalaryTable, "emp_id", "amount", "effective_from", "effective_to").
		Values(s.EmployeeID, s.Amount, s.EffectiveFrom, s.EffectiveTo).
		Returning("salary_id").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to insert salary for employee %d: %w", s.EmployeeID, err)
	}
	return nil
}

// List returns every salary row ordered by id.
func (r *salaryRepository) List(ctx context.Context) ([]domain.Salary, error) {
	query, args := builder.NewSQLBuilder().
		Select(salaryColumns...).
		From(domain.SalaryTable).
		OrderBy("salary_id ASC").
		Build()
	return r.query(ctx, query, args)
}

// ListByEmployee returns the salary history of one employee, newest first.
func (r *salaryRepository) ListByEmployee(ctx context.Context, empID int64) ([]domain.Salary, error) {
	query, args := builder.NewSQLBuilder().
		Select(salaryColumns...).
		From(domain.SalaryTable).
		Where("emp_id = ?", empID).
		OrderBy("effective_from DESC").
		OrderBy("salary_id DESC").
		Build()
	return r.query(ctx, query, args)
}

func (r *salaryRepository) query(ctx context.Context, query string, args []interface{}) ([]domain.Salary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []domain.Salary
	for rows.Next() {
		var s domain.Salary
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Amount, &s.EffectiveFrom, &s.EffectiveTo); err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return salaries, nil
}

// Count returns the number of salary rows.
func (r *salaryRepository) Count(ctx context.Context) (int64, error) {
	query, args := builder.NewSQLBuilder().Select("COUNT(*)").From(domain.SalaryTable).Build()
	n, err := queryCount(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to count salaries: %w", err)
	}
	return n, nil
}
