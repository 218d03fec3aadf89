package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/locvowork/office_management_sample/internal/domain"
)

func TestWriteOfficeWorkbook(t *testing.T) {
	oslo := "Oslo"
	deptID := int64(1)
	hired := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	industry := "Logistics"

	snap := domain.OfficeSnapshot{
		Departments: []domain.Department{{ID: 1, Name: "Finance", Location: &oslo}, {ID: 2, Name: "Legal"}},
		Employees: []domain.Employee{
			{ID: 10, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", HireDate: hired, DepartmentID: &deptID},
			{ID: 11, FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", HireDate: hired},
		},
		Salaries: []domain.Salary{
			{ID: 100, EmployeeID: 10, Amount: decimal.RequireFromString("45210.50"), EffectiveFrom: hired},
		},
		Businesses: []domain.Business{
			{ID: 7, Name: "Acme", Industry: &industry, AnnualRevenue: decimal.NewNullDecimal(decimal.NewFromInt(2_000_000)), CreatedAt: hired},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOfficeWorkbook(&buf, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetDepartments, SheetEmployees, SheetSalaries, SheetBusinesses}, f.GetSheetList())

	rows, err := f.GetRows(SheetDepartments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"dept_id", "dept_name", "location"}, rows[0])
	assert.Equal(t, []string{"1", "Finance", "Oslo"}, rows[1])
	assert.Equal(t, []string{"2", "Legal"}, rows[2])

	rows, err = f.GetRows(SheetEmployees)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"10", "Ada", "Lovelace", "ada@example.com", "2025-06-15", "1"}, rows[1])
	assert.Equal(t, []string{"11", "Alan", "Turing", "alan@example.com", "2025-06-15"}, rows[2])

	rows, err = f.GetRows(SheetSalaries)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "45210.5", rows[1][2])

	rows, err = f.GetRows(SheetBusinesses)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"7", "Acme", "Logistics", "2000000", "2025-06-15 00:00:00"}, rows[1])
}

func TestWriteOfficeWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOfficeWorkbook(&buf, domain.OfficeSnapshot{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSalaries)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"salary_id", "emp_id", "amount", "effective_from", "effective_to"}, rows[0])
}
