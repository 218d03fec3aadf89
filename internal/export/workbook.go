package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/locvowork/office_management_sample/internal/domain"
)

// Sheet names of the office workbook, in order.
const (
	SheetDepartments = "Departments"
	SheetEmployees   = "Employees"
	SheetSalaries    = "Salaries"
	SheetBusinesses  = "Businesses"
)

type column struct {
	Header string
	Width  float64
}

type sheetData struct {
	Name    string
	Columns []column
	Rows    [][]interface{}
}

// WriteOfficeWorkbook renders snap as an XLSX workbook with one sheet per
// office table and writes it to w.
func WriteOfficeWorkbook(w io.Writer, snap domain.OfficeSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sheet := range officeSheets(snap) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}
		if err := renderSheet(f, sheet, headerStyle); err != nil {
			return fmt.Errorf("render sheet %s: %w", sheet.Name, err)
		}
	}

	return f.Write(w)
}

func renderSheet(f *excelize.File, sheet sheetData, headerStyle int) error {
	headers := make([]interface{}, len(sheet.Columns))
	for i, col := range sheet.Columns {
		headers[i] = col.Header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet.Name, cell, &r); err != nil {
			return err
		}
	}

	lastRow := len(sheet.Rows) + 1
	if err := f.AutoFilter(sheet.Name, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return err
	}
	return f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func officeSheets(snap domain.OfficeSnapshot) []sheetData {
	departments := sheetData{
		Name:    SheetDepartments,
		Columns: []column{{"dept_id", 10}, {"dept_name", 40}, {"location", 25}},
	}
	for _, d := range snap.Departments {
		departments.Rows = append(departments.Rows, []interface{}{d.ID, d.Name, str(d.Location)})
	}

	employees := sheetData{
		Name: SheetEmployees,
		Columns: []column{{"emp_id", 10}, {"first_name", 20}, {"last_name", 20},
			{"email", 35}, {"hire_date", 14}, {"dept_id", 10}},
	}
	for _, e := range snap.Employees {
		employees.Rows = append(employees.Rows, []interface{}{
			e.ID, e.FirstName, e.LastName, e.Email, date(&e.HireDate), id(e.DepartmentID),
		})
	}

	salaries := sheetData{
		Name: SheetSalaries,
		Columns: []column{{"salary_id", 10}, {"emp_id", 10}, {"amount", 14},
			{"effective_from", 16}, {"effective_to", 16}},
	}
	for _, s := range snap.Salaries {
		salaries.Rows = append(salaries.Rows, []interface{}{
			s.ID, s.EmployeeID, money(s.Amount), date(&s.EffectiveFrom), date(s.EffectiveTo),
		})
	}

	businesses := sheetData{
		Name: SheetBusinesses,
		Columns: []column{{"business_id", 12}, {"business_name", 40}, {"industry", 30},
			{"annual_revenue", 18}, {"created_at", 22}},
	}
	for _, b := range snap.Businesses {
		revenue := interface{}("")
		if b.AnnualRevenue.Valid {
			revenue = money(b.AnnualRevenue.Decimal)
		}
		businesses.Rows = append(businesses.Rows, []interface{}{
			b.ID, b.Name, str(b.Industry), revenue, b.CreatedAt.Format(time.DateTime),
		})
	}

	return []sheetData{departments, employees, salaries, businesses}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func id(v *int64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
