package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertDepartmentSQL = regexp.QuoteMeta("INSERT INTO office.department (dept_name, location) VALUES ($1, $2) ON CONFLICT (dept_name) DO NOTHING RETURNING dept_id")
	insertEmployeeSQL   = regexp.QuoteMeta("INSERT INTO office.employee (first_name, last_name, email, hire_date, dept_id) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING RETURNING emp_id")
	insertSalarySQL     = regexp.QuoteMeta("INSERT INTO office.salary (emp_id, amount, effective_from, effective_to) VALUES ($1, $2, $3, $4) RETURNING salary_id")
	insertBusinessSQL   = regexp.QuoteMeta("INSERT INTO office.business (business_name, industry, annual_revenue) VALUES ($1, $2, $3) RETURNING business_id, created_at")
	listDepartmentIDs   = regexp.QuoteMeta("SELECT dept_id FROM office.department ORDER BY dept_id ASC")
	listEmployeeIDs     = regexp.QuoteMeta("SELECT emp_id FROM office.employee ORDER BY emp_id ASC")
)

// oneOf matches an int64 argument drawn from a known id set.
type oneOf []int64

func (o oneOf) Match(v driver.Value) bool {
	id, ok := v.(int64)
	if !ok {
		return false
	}
	for _, want := range o {
		if id == want {
			return true
		}
	}
	return false
}

// decimalBetween matches a decimal argument, sent as its string form.
type decimalBetween struct{ min, max decimal.Decimal }

func (d decimalBetween) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return got.GreaterThanOrEqual(d.min) && got.LessThanOrEqual(d.max)
}

var (
	seedNow   = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	seedToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
)

func newSeeder(t *testing.T) (*DataSeeder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDataSeeder(db, WithRandomSeed(2024), WithClock(func() time.Time { return seedNow })), mock
}

func TestDataSeeder_SeedData(t *testing.T) {
	seeder, mock := newSeeder(t)

	mock.ExpectBegin()

	// the second department name already exists in the table
	mock.ExpectQuery(insertDepartmentSQL).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(1))
	mock.ExpectQuery(insertDepartmentSQL).WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}))
	mock.ExpectQuery(listDepartmentIDs).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(1).AddRow(5))

	for _, id := range []int64{10, 11} {
		mock.ExpectQuery(insertEmployeeSQL).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), seedToday, oneOf{1, 5}).
			WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(id))
	}
	mock.ExpectQuery(listEmployeeIDs).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(3).AddRow(10).AddRow(11))

	for i := 0; i < 3; i++ {
		mock.ExpectQuery(insertSalarySQL).
			WithArgs(oneOf{3, 10, 11}, decimalBetween{MinSalaryAmount, MaxSalaryAmount}, seedToday, nil).
			WillReturnRows(sqlmock.NewRows([]string{"salary_id"}).AddRow(i + 1))
	}

	mock.ExpectQuery(insertBusinessSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), decimalBetween{MinAnnualRevenue, MaxAnnualRevenue}).
		WillReturnRows(sqlmock.NewRows([]string{"business_id", "created_at"}).AddRow(1, seedNow))

	mock.ExpectCommit()

	res, err := seeder.SeedData(context.Background(), SeedCounts{Departments: 2, Employees: 2, Salaries: 3, Businesses: 1})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, TableResult{Inserted: 1, Skipped: 1}, res.Departments)
	assert.Equal(t, TableResult{Inserted: 2}, res.Employees)
	assert.Equal(t, TableResult{Inserted: 3}, res.Salaries)
	assert.Equal(t, TableResult{Inserted: 1}, res.Businesses)
}

func TestDataSeeder_SeedData_RollsBackOnFailure(t *testing.T) {
	seeder, mock := newSeeder(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertDepartmentSQL).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(1))
	mock.ExpectQuery(listDepartmentIDs).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(1))
	mock.ExpectQuery(insertEmployeeSQL).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(1))
	mock.ExpectQuery(listEmployeeIDs).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(1))
	mock.ExpectQuery(insertSalarySQL).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := seeder.SeedData(context.Background(), SeedCounts{Departments: 1, Employees: 1, Salaries: 1, Businesses: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDataSeeder_SeedData_EmployeeConflictIsSkipped(t *testing.T) {
	seeder, mock := newSeeder(t)

	mock.ExpectBegin()
	mock.ExpectQuery(listDepartmentIDs).
		WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(4))
	mock.ExpectQuery(insertEmployeeSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), seedToday, int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}))
	mock.ExpectQuery(listEmployeeIDs).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(8))
	mock.ExpectCommit()

	res, err := seeder.SeedData(context.Background(), SeedCounts{Employees: 1})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, TableResult{Skipped: 1}, res.Employees)
}

func TestDataSeeder_SeedData_TodayIsUTCDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// 01:30 on the 16th at UTC+5 is still the 15th in UTC
	local := time.Date(2025, 6, 16, 1, 30, 0, 0, time.FixedZone("UTC+5", 5*60*60))
	seeder := NewDataSeeder(db, WithRandomSeed(7), WithClock(func() time.Time { return local }))

	mock.ExpectBegin()
	mock.ExpectQuery(listDepartmentIDs).WillReturnRows(sqlmock.NewRows([]string{"dept_id"}))
	mock.ExpectQuery(insertEmployeeSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), seedToday, nil).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(1))
	mock.ExpectQuery(listEmployeeIDs).WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(1))
	mock.ExpectQuery(insertSalarySQL).
		WithArgs(int64(1), sqlmock.AnyArg(), seedToday, nil).
		WillReturnRows(sqlmock.NewRows([]string{"salary_id"}).AddRow(1))
	mock.ExpectCommit()

	_, err = seeder.SeedData(context.Background(), SeedCounts{Employees: 1, Salaries: 1})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDataSeeder_SeedData_NoEmployeesSkipsSalaries(t *testing.T) {
	seeder, mock := newSeeder(t)

	mock.ExpectBegin()
	mock.ExpectQuery(listDepartmentIDs).WillReturnRows(sqlmock.NewRows([]string{"dept_id"}))
	mock.ExpectQuery(listEmployeeIDs).WillReturnRows(sqlmock.NewRows([]string{"emp_id"}))
	mock.ExpectCommit()

	res, err := seeder.SeedData(context.Background(), SeedCounts{Salaries: 3})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, TableResult{Skipped: 3}, res.Salaries)
}

func TestDataSeeder_SeedData_RejectsNegativeCounts(t *testing.T) {
	seeder, mock := newSeeder(t)

	_, err := seeder.SeedData(context.Background(), SeedCounts{Businesses: -1})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDataSeeder_ClearData(t *testing.T) {
	seeder, mock := newSeeder(t)

	mock.ExpectBegin()
	for _, table := range []string{"office.business", "office.salary", "office.employee", "office.department"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table)).WillReturnResult(sqlmock.NewResult(0, 3))
	}
	mock.ExpectCommit()

	require.NoError(t, seeder.ClearData(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaStatements_Idempotent(t *testing.T) {
	stmts := SchemaStatements()
	require.Len(t, stmts, 5)
	assert.Equal(t, `CREATE SCHEMA IF NOT EXISTS "office"`, stmts[0])
	for _, stmt := range stmts[1:] {
		assert.Contains(t, stmt, "CREATE TABLE IF NOT EXISTS office.")
	}
	assert.Contains(t, stmts[2], "ON DELETE SET NULL")
	assert.Contains(t, stmts[3], "ON DELETE CASCADE")
	assert.Contains(t, stmts[4], "DEFAULT CURRENT_TIMESTAMP")
}

func TestCreateSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for range SchemaStatements() {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, CreateSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchema_PropagatesFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	denied := errors.New("permission denied for database office")
	mock.ExpectBegin()
	mock.ExpectExec("CREATE SCHEMA").WillReturnError(denied)
	mock.ExpectRollback()

	err = CreateSchema(context.Background(), db)
	require.ErrorIs(t, err, denied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfig_DSN(t *testing.T) {
	dsn, err := Config{Host: "localhost", Port: 5432, User: "office", Password: "it's", DBName: "office", SSLMode: "disable"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, `host='localhost' port='5432' user='office' password='it\'s' dbname='office' sslmode='disable'`, dsn)

	dsn, err = Config{URL: "postgres://office:secret@db:5433/office?sslmode=require", Host: "ignored"}.DSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "host='db'")
	assert.Contains(t, dsn, "port='5433'")
	assert.NotContains(t, dsn, "ignored")
}
