package repository

import (
	"context"
	"fmt"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/repository/builder"
)

type businessRepository struct {
	db DBTX
}

// NewBusinessRepository creates a new instance of BusinessRepository
func NewBusinessRepository(db DBTX) domain.BusinessRepository {
	return &businessRepository{db: db}
}

// Insert writes a business row. created_at is left to the column default and
// read back together with the id.
func (r *businessRepository) Insert(ctx context.Context, b *domain.Business) error {
	query, args := builder.NewSQLBuilder().
		Insert(domain.BusinessTable, "business_name", "industry", "annual_revenue").
		Values(b.Name, b.Industry, b.AnnualRevenue).
		Returning("business_id", "created_at").
		Build()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert business %q: %w", b.Name, err)
	}
	return nil
}

// List returns businesses ordered by id.
func (r *businessRepository) List(ctx context.Context, filter domain.PageFilter) ([]domain.Business, error) {
	qb := builder.NewSQLBuilder()
	qb.Select("business_id", "business_name", "industry", "annual_revenue", "created_at").
		From(domain.BusinessTable).
		OrderBy("business_id ASC")
	if filter.Limit > 0 {
		qb.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		qb.Offset(filter.Offset)
	}
	query, args := qb.Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Industry, &b.AnnualRevenue, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return businesses, nil
}

// Count returns the number of business rows.
func (r *businessRepository) Count(ctx context.Context) (int64, error) {
	query, args := builder.NewSQLBuilder().Select("COUNT(*)").From(domain.BusinessTable).Build()
	n, err := queryCount(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return n, nil
}
