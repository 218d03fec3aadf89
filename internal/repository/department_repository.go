package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/repository/builder"
)

var departmentColumns = []string{"dept_id", "dept_name", "location"}

type departmentRepository struct {
	db DBTX
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db DBTX) domain.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) InsertIfAbsent(ctx context.Context, d *domain.Department) (bool, error) {
	query, args := builder.NewSQLBuilder().
		Insert(domain.DepartmentTable, "dept_name", "location").
		Values(d.Name, d.Location).
		OnConflictDoNothing("dept_name").
		Returning("dept_id").
		Build()

	id, inserted, err := insertReturningID(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("failed to insert department %q: %w", d.Name, err)
	}
	if inserted {
		d.ID = id
	}
	return inserted, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	query, args := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From(domain.DepartmentTable).
		Where("dept_id = ?", id).
		Build()

	var d domain.Department
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("department %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	query, args := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From(domain.DepartmentTable).
		OrderBy("dept_id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Location); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return departments, nil
}

func (r *departmentRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query, args := builder.NewSQLBuilder().
		Select("dept_id").
		From(domain.DepartmentTable).
		OrderBy("dept_id ASC").
		Build()

	ids, err := queryIDs(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list department ids: %w", err)
	}
	return ids, nil
}

// Delete removes a department. Employees referencing it keep existing with a
// NULL dept_id (ON DELETE SET NULL).
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	query, args := builder.NewSQLBuilder().
		Delete(domain.DepartmentTable).
		Where("dept_id = ?", id).
		Build()

	if err := execAffectingOne(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("failed to delete department %d: %w", id, err)
	}
	return nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	query, args := builder.NewSQLBuilder().Select("COUNT(*)").From(domain.DepartmentTable).Build()
	n, err := queryCount(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}
	return n, nil
}
