package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/logger"
	"github.com/locvowork/office_management_sample/internal/repository"
)

// SeedCounts is the number of candidate rows generated per table.
type SeedCounts struct {
	Departments int
	Employees   int
	Salaries    int
	Businesses  int
}

// DefaultSeedCounts generates 100 rows for every table.
var DefaultSeedCounts = SeedCounts{Departments: 100, Employees: 100, Salaries: 100, Businesses: 100}

func (c SeedCounts) validate() error {
	if c.Departments < 0 || c.Employees < 0 || c.Salaries < 0 || c.Businesses < 0 {
		return fmt.Errorf("seed counts must not be negative: %+v", c)
	}
	return nil
}

// TableResult reports what happened to the candidates of one table.
type TableResult struct {
	Inserted int
	Skipped  int
}

// SeedResult summarises one SeedData run.
type SeedResult struct {
	RunID       string
	Departments TableResult
	Employees   TableResult
	Salaries    TableResult
	Businesses  TableResult
}

type DataSeeder struct {
	db   *sql.DB
	seed uint64
	now  func() time.Time
}

// SeederOption customises a DataSeeder.
type SeederOption func(*DataSeeder)

// WithRandomSeed makes generated rows reproducible. Zero means random.
func WithRandomSeed(seed uint64) SeederOption {
	return func(ds *DataSeeder) { ds.seed = seed }
}

// WithClock overrides the source of "today" for hire and effective dates.
func WithClock(now func() time.Time) SeederOption {
	return func(ds *DataSeeder) { ds.now = now }
}

func NewDataSeeder(db *sql.DB, opts ...SeederOption) *DataSeeder {
	ds := &DataSeeder{db: db, now: time.Now}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// SeedData inserts synthetic rows in foreign-key order: departments,
// employees, salaries, then businesses. Everything happens in one
// transaction on one connection; any failure rolls the whole batch back.
// Rows whose unique key already exists are skipped, not reported as errors.
func (ds *DataSeeder) SeedData(ctx context.Context, counts SeedCounts) (SeedResult, error) {
	if err := counts.validate(); err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{RunID: uuid.NewString()}
	ctx = logger.WithLogger(ctx, map[string]interface{}{"run_id": result.RunID})
	start := time.Now()
	logger.InfoLog(ctx, "Seeding office data: %d departments, %d employees, %d salaries, %d businesses",
		counts.Departments, counts.Employees, counts.Salaries, counts.Businesses)

	conn, err := ds.db.Conn(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	gen := NewFakeGenerator(ds.seed)
	t := ds.now().UTC()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	deptIDs, err := ds.seedDepartments(ctx, tx, gen, counts.Departments, &result.Departments)
	if err != nil {
		return result, err
	}

	empIDs, err := ds.seedEmployees(ctx, tx, gen, counts.Employees, deptIDs, today, &result.Employees)
	if err != nil {
		return result, err
	}

	if err := ds.seedSalaries(ctx, tx, gen, counts.Salaries, empIDs, today, &result.Salaries); err != nil {
		return result, err
	}

	if err := ds.seedBusinesses(ctx, tx, gen, counts.Businesses, &result.Businesses); err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit seed data: %w", err)
	}

	logger.InfoLog(ctx, "Seeding done in %v", time.Since(start))
	return result, nil
}

// seedDepartments inserts n departments and returns every department id in
// the table, including rows that existed before this run.
func (ds *DataSeeder) seedDepartments(ctx context.Context, tx *sql.Tx, gen *FakeGenerator, n int, res *TableResult) ([]int64, error) {
	repo := repository.NewDepartmentRepository(tx)
	for i := 0; i < n; i++ {
		d := gen.Department()
		inserted, err := repo.InsertIfAbsent(ctx, &d)
		if err != nil {
			return nil, err
		}
		tally(res, inserted)
	}
	logger.InfoLog(ctx, "Departments: %d inserted, %d skipped", res.Inserted, res.Skipped)

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// seedEmployees inserts n employees spread uniformly over deptIDs and returns
// every employee id in the table.
func (ds *DataSeeder) seedEmployees(ctx context.Context, tx *sql.Tx, gen *FakeGenerator, n int, deptIDs []int64, hireDate time.Time, res *TableResult) ([]int64, error) {
	if n > 0 && len(deptIDs) == 0 {
		logger.WarnLog(ctx, "No departments exist, employees are created without one")
	}

	repo := repository.NewEmployeeRepository(tx)
	for i := 0; i < n; i++ {
		e := gen.Employee(deptIDs, hireDate)
		inserted, err := repo.InsertIfAbsent(ctx, &e)
		if err != nil {
			return nil, err
		}
		tally(res, inserted)
	}
	logger.InfoLog(ctx, "Employees: %d inserted, %d skipped", res.Inserted, res.Skipped)

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *DataSeeder) seedSalaries(ctx context.Context, tx *sql.Tx, gen *FakeGenerator, n int, empIDs []int64, effectiveFrom time.Time, res *TableResult) error {
	if n > 0 && len(empIDs) == 0 {
		logger.WarnLog(ctx, "No employees exist, skipping %d salaries", n)
		res.Skipped = n
		return nil
	}

	repo := repository.NewSalaryRepository(tx)
	for i := 0; i < n; i++ {
		s := gen.Salary(empIDs, effectiveFrom)
		if err := repo.Insert(ctx, &s); err != nil {
			return err
		}
		res.Inserted++
	}
	logger.InfoLog(ctx, "Salaries: %d inserted", res.Inserted)
	return nil
}

func (ds *DataSeeder) seedBusinesses(ctx context.Context, tx *sql.Tx, gen *FakeGenerator, n int, res *TableResult) error {
	repo := repository.NewBusinessRepository(tx)
	for i := 0; i < n; i++ {
		b := gen.Business()
		if err := repo.Insert(ctx, &b); err != nil {
			return err
		}
		res.Inserted++
	}
	logger.InfoLog(ctx, "Businesses: %d inserted", res.Inserted)
	return nil
}

func tally(res *TableResult, inserted bool) {
	if inserted {
		res.Inserted++
	} else {
		res.Skipped++
	}
}

// ClearData deletes every office row in one transaction, children first.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	logger.InfoLog(ctx, "Clearing office data...")

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{domain.BusinessTable, domain.SalaryTable, domain.EmployeeTable, domain.DepartmentTable} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	logger.InfoLog(ctx, "Cleared office data")
	return nil
}
