package domain

// SchemaName is the PostgreSQL namespace holding every office table.
const SchemaName = "office"

// Qualified table names
const (
	DepartmentTable = SchemaName + ".department"
	EmployeeTable   = SchemaName + ".employee"
	SalaryTable     = SchemaName + ".salary"
	BusinessTable   = SchemaName + ".business"
)
