package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

// employeeHandler handles HTTP requests related to staff records.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(employeeService portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService: employeeService,
	}
}

// createEmployee godoc
// @Summary Add an employee
// @Description Adds a staff record to a pump
// @Tags employees
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /pumps/{pump_id}/employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), pumpID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		}
		return
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Get an employee
// @Description Retrieves an employee by their ID
// @Tags employees
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param employee_id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /pumps/{pump_id}/employees/{employee_id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	employeeID := c.Param("employee_id")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), pumpID, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to get employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employee"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Description Retrieves a paginated list of active employees for a pump
// @Tags employees
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListEmployeesResponse
// @Router /pumps/{pump_id}/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), pumpID, limit, offset)
	if err != nil {
		logger.Error("Failed to list employees", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list employees"})
		return
	}

	resp := dto.ListEmployeesResponse{Employees: make([]dto.EmployeeResponse, 0, len(employees))}
	for i := range employees {
		resp.Employees = append(resp.Employees, dto.ToEmployeeResponse(&employees[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateEmployee godoc
// @Summary Update an employee
// @Description Updates an employee's details
// @Tags employees
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param employee_id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /pumps/{pump_id}/employees/{employee_id} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	employeeID := c.Param("employee_id")

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), pumpID, employeeID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to update employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Description Soft-deletes a staff record; historical references stay resolvable
// @Tags employees
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param employee_id path string true "Employee ID"
// @Success 204 "Deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /pumps/{pump_id}/employees/{employee_id} [delete]
func (h *employeeHandler) deactivateEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	employeeID := c.Param("employee_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.employeeService.DeactivateEmployee(c.Request.Context(), pumpID, employeeID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to deactivate employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate employee"})
		return
	}

	logger.Info("Employee deactivated", slog.String("employee_id", employeeID))
	c.Status(http.StatusNoContent)
}

// registerEmployeeRoutes registers employee specific routes
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	handler := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", handler.createEmployee)
		employees.GET("", handler.listEmployees)
		employees.GET("/:employee_id", handler.getEmployee)
		employees.PUT("/:employee_id", handler.updateEmployee)
		employees.DELETE("/:employee_id", handler.deactivateEmployee)
	}
}
