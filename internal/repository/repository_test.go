package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/office_management_sample/internal/domain"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, func() DBTX) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return mock, func() DBTX { return db }
}

func TestDepartmentRepository_InsertIfAbsent(t *testing.T) {
	insertSQL := regexp.QuoteMeta(`INSERT INTO office.department (dept_name, location) VALUES ($1, $2) ON CONFLICT (dept_name) DO NOTHING RETURNING dept_id`)
	location := "Oslo"

	t.Run("new name", func(t *testing.T) {
		mock, db := newMock(t)
		mock.ExpectQuery(insertSQL).
			WithArgs("Finance", "Oslo").
			WillReturnRows(sqlmock.NewRows([]string{"dept_id"}).AddRow(41))

		d := &domain.Department{Name: "Finance", Location: &location}
		inserted, err := NewDepartmentRepository(db()).InsertIfAbsent(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, int64(41), d.ID)
	})

	t.Run("existing name is skipped", func(t *testing.T) {
		mock, db := newMock(t)
		mock.ExpectQuery(insertSQL).
			WithArgs("Finance", "Oslo").
			WillReturnRows(sqlmock.NewRows([]string{"dept_id"}))

		d := &domain.Department{Name: "Finance", Location: &location}
		inserted, err := NewDepartmentRepository(db()).InsertIfAbsent(context.Background(), d)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Zero(t, d.ID)
	})
}

func TestDepartmentRepository_DeleteMissing(t *testing.T) {
	mock, db := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM office.department WHERE dept_id = $1`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewDepartmentRepository(db()).Delete(context.Background(), 9)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepartmentRepository_GetByIDMissing(t *testing.T) {
	mock, db := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT dept_id, dept_name, location FROM office.department WHERE dept_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(departmentColumns))

	_, err := NewDepartmentRepository(db()).GetByID(context.Background(), 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeRepository_ListPaging(t *testing.T) {
	mock, db := newMock(t)
	hired := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT emp_id, first_name, last_name, email, hire_date, dept_id FROM office.employee ORDER BY emp_id ASC LIMIT 2 OFFSET 4`)).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(5, "Ada", "Lovelace", "ada@example.com", hired, 1).
			AddRow(6, "Alan", "Turing", "alan@example.com", hired, nil))

	employees, err := NewEmployeeRepository(db()).List(context.Background(), domain.PageFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.NotNil(t, employees[0].DepartmentID)
	assert.Equal(t, int64(1), *employees[0].DepartmentID)
	assert.Nil(t, employees[1].DepartmentID)
}

func TestEmployeeRepository_ListIDs(t *testing.T) {
	mock, db := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT emp_id FROM office.employee ORDER BY emp_id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"emp_id"}).AddRow(1).AddRow(2).AddRow(7))

	ids, err := NewEmployeeRepository(db()).ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 7}, ids)
}

func TestSalaryRepository_Insert(t *testing.T) {
	mock, db := newMock(t)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("45210.55")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO office.salary (emp_id, amount, effective_from, effective_to) VALUES ($1, $2, $3, $4) RETURNING salary_id`)).
		WithArgs(int64(12), "45210.55", from, nil).
		WillReturnRows(sqlmock.NewRows([]string{"salary_id"}).AddRow(3))

	s := &domain.Salary{EmployeeID: 12, Amount: amount, EffectiveFrom: from}
	require.NoError(t, NewSalaryRepository(db()).Insert(context.Background(), s))
	assert.Equal(t, int64(3), s.ID)
}

func TestBusinessRepository_Count(t *testing.T) {
	mock, db := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM office.business`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	n, err := NewBusinessRepository(db()).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), n)
}

func TestConstructors_ReturnDomainRepositories(t *testing.T) {
	_, db := newMock(t)

	assert.Implements(t, (*domain.DepartmentRepository)(nil), NewDepartmentRepository(db()))
	assert.Implements(t, (*domain.EmployeeRepository)(nil), NewEmployeeRepository(db()))
	assert.Implements(t, (*domain.SalaryRepository)(nil), NewSalaryRepository(db()))
	assert.Implements(t, (*domain.BusinessRepository)(nil), NewBusinessRepository(db()))
}
