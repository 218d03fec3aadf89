package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/locvowork/office_management_sample/internal/domain"
)

// SchemaStatements returns the DDL for the office namespace in dependency
// order. Every statement is a no-op when its object already exists.
func SchemaStatements() []string {
	return []string{
		"CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(domain.SchemaName),

		`CREATE TABLE IF NOT EXISTS ` + domain.DepartmentTable + ` (
			dept_id   SERIAL PRIMARY KEY,
			dept_name VARCHAR(100) UNIQUE NOT NULL,
			location  VARCHAR(100)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + domain.EmployeeTable + ` (
			emp_id     SERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name  VARCHAR(100) NOT NULL,
			email      VARCHAR(150) UNIQUE NOT NULL,
			hire_date  DATE NOT NULL,
			dept_id    INT REFERENCES ` + domain.DepartmentTable + `(dept_id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ` + domain.SalaryTable + ` (
			salary_id      SERIAL PRIMARY KEY,
			emp_id         INT NOT NULL REFERENCES ` + domain.EmployeeTable + `(emp_id) ON DELETE CASCADE,
			amount         NUMERIC(12,2) NOT NULL,
			effective_from DATE NOT NULL,
			effective_to   DATE
		)`,

		`CREATE TABLE IF NOT EXISTS ` + domain.BusinessTable + ` (
			business_id    SERIAL PRIMARY KEY,
			business_name  VARCHAR(150) NOT NULL,
			industry       VARCHAR(100),
			annual_revenue NUMERIC(15,2),
			created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// CreateSchema idempotently creates the office namespace and its tables.
// The DDL runs in a single transaction of its own, so a privilege failure
// halfway leaves nothing behind.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range SchemaStatements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
