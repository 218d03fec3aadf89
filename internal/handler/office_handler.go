package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/office_management_sample/internal/domain"
	"github.com/locvowork/office_management_sample/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OfficeHandler struct {
	svc service.OfficeService
}

func NewOfficeHandler(svc service.OfficeService) *OfficeHandler {
	return &OfficeHandler{svc: svc}
}

func (h *OfficeHandler) ListDepartmentsHandler(c echo.Context) error {
	departments, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to list departments", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Departments listed successfully", departments)
}

func (h *OfficeHandler) GetDepartmentHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	detail, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to get department", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Department retrieved successfully", detail)
}

func (h *OfficeHandler) DeleteDepartmentHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	if err := h.svc.DeleteDepartment(c.Request().Context(), id); err != nil {
		return ResponseError(c, statusFor(err), "Failed to delete department", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Department deleted successfully", nil)
}

func (h *OfficeHandler) ListEmployeesHandler(c echo.Context) error {
	filter, err := pageFilter(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid paging parameters", err)
	}

	employees, err := h.svc.ListEmployees(c.Request().Context(), filter)
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to list employees", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Employees listed successfully", employees)
}

func (h *OfficeHandler) GetEmployeeHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	detail, err := h.svc.GetEmployeeDetail(c.Request().Context(), id)
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to get employee", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", detail)
}

func (h *OfficeHandler) DeleteEmployeeHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	if err := h.svc.DeleteEmployee(c.Request().Context(), id); err != nil {
		return ResponseError(c, statusFor(err), "Failed to delete employee", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Employee deleted successfully", nil)
}

func (h *OfficeHandler) ListBusinessesHandler(c echo.Context) error {
	filter, err := pageFilter(c)
	if err != nil {
		return ResponseError(c, http.StatusBadRequest, "Invalid paging parameters", err)
	}

	businesses, err := h.svc.ListBusinesses(c.Request().Context(), filter)
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to list businesses", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Businesses listed successfully", businesses)
}

func (h *OfficeHandler) SummaryHandler(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return ResponseError(c, statusFor(err), "Failed to summarise office data", err)
	}
	return ResponseSuccess(c, http.StatusOK, "Summary generated successfully", summary)
}

// ExportHandler returns the whole office schema as an XLSX workbook.
func (h *OfficeHandler) ExportHandler(c echo.Context) error {
	// buffer first so a failed export still gets a JSON error response
	var buf bytes.Buffer
	if err := h.svc.ExportWorkbook(c.Request().Context(), &buf); err != nil {
		return ResponseError(c, statusFor(err), "Failed to export office data", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="office.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func pageFilter(c echo.Context) (domain.PageFilter, error) {
	var filter domain.PageFilter
	var err error
	if v := c.QueryParam("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return filter, fmt.Errorf("limit and offset must not be negative")
	}
	return filter, nil
}
