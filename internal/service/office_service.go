package service

import (
	"context"
	"fmt"
	"io"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/export"
)

// OfficeService is the read/delete surface over the office schema.
type OfficeService interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	GetDepartment(ctx context.Context, id int64) (*domain.DepartmentDetail, error)
	DeleteDepartment(ctx context.Context, id int64) error
	ListEmployees(ctx context.Context, filter domain.PageFilter) ([]domain.Employee, error)
	GetEmployeeDetail(ctx context.Context, id int64) (*domain.EmployeeDetail, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListBusinesses(ctx context.Context, filter domain.PageFilter) ([]domain.Business, error)
	Summary(ctx context.Context) (*domain.OfficeSummary, error)
	ExportWorkbook(ctx context.Context, w io.Writer) error
}

type officeService struct {
	departments domain.DepartmentRepository
	employees   domain.EmployeeRepository
	salaries    domain.SalaryRepository
	businesses  domain.BusinessRepository
}

// NewOfficeService creates a new OfficeService instance
func NewOfficeService(
	departments domain.DepartmentRepository,
	employees domain.EmployeeRepository,
	salaries domain.SalaryRepository,
	businesses domain.BusinessRepository,
) OfficeService {
	return &officeService{
		departments: departments,
		employees:   employees,
		salaries:    salaries,
		businesses:  businesses,
	}
}

func (s *officeService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

func (s *officeService) GetDepartment(ctx context.Context, id int64) (*domain.DepartmentDetail, error) {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	employees, err := s.employees.ListByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.DepartmentDetail{Department: *d, Employees: nonNil(employees)}, nil
}

func (s *officeService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departments.Delete(ctx, id)
}

func (s *officeService) ListEmployees(ctx context.Context, filter domain.PageFilter) ([]domain.Employee, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must not be negative")
	}
	employees, err := s.employees.List(ctx, filter)
	return nonNil(employees), err
}

func (s *officeService) GetEmployeeDetail(ctx context.Context, id int64) (*domain.EmployeeDetail, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.EmployeeDetail{Employee: *e}
	if e.DepartmentID != nil {
		d, err := s.departments.GetByID(ctx, *e.DepartmentID)
		if err != nil {
			return nil, err
		}
		detail.Department = d
	}

	salaries, err := s.salaries.ListByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Salaries = nonNil(salaries)
	return detail, nil
}

func (s *officeService) DeleteEmployee(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}

func (s *officeService) ListBusinesses(ctx context.Context, filter domain.PageFilter) ([]domain.Business, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("limit and offset must not be negative")
	}
	businesses, err := s.businesses.List(ctx, filter)
	return nonNil(businesses), err
}

func (s *officeService) Summary(ctx context.Context) (*domain.OfficeSummary, error) {
	var (
		sum domain.OfficeSummary
		err error
	)
	if sum.Departments, err = s.departments.Count(ctx); err != nil {
		return nil, err
	}
	if sum.Employees, err = s.employees.Count(ctx); err != nil {
		return nil, err
	}
	if sum.Salaries, err = s.salaries.Count(ctx); err != nil {
		return nil, err
	}
	if sum.Businesses, err = s.businesses.Count(ctx); err != nil {
		return nil, err
	}
	return &sum, nil
}

// ExportWorkbook writes every office table to w as an XLSX workbook.
func (s *officeService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	var (
		snap domain.OfficeSnapshot
		err  error
	)
	if snap.Departments, err = s.departments.List(ctx); err != nil {
		return err
	}
	if snap.Employees, err = s.employees.List(ctx, domain.PageFilter{}); err != nil {
		return err
	}
	if snap.Salaries, err = s.salaries.List(ctx); err != nil {
		return err
	}
	if snap.Businesses, err = s.businesses.List(ctx, domain.PageFilter{}); err != nil {
		return err
	}
	return export.WriteOfficeWorkbook(w, snap)
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
