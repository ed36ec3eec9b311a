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

// customerHandler handles HTTP requests related to credit customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: customerService,
	}
}

// createCustomer godoc
// @Summary Register a credit customer
// @Description Registers a credit customer, optionally linked to a receivable account
// @Tags customers
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /pumps/{pump_id}/customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), pumpID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create customer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		}
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer
// @Description Retrieves a customer by their ID
// @Tags customers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /pumps/{pump_id}/customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	customerID := c.Param("customer_id")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), pumpID, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to get customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves a paginated list of customers for a pump
// @Tags customers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListCustomersResponse
// @Router /pumps/{pump_id}/customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	customers, err := h.customerService.ListCustomers(c.Request.Context(), pumpID, limit, offset)
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	resp := dto.ListCustomersResponse{Customers: make([]dto.CustomerResponse, 0, len(customers))}
	for i := range customers {
		resp.Customers = append(resp.Customers, dto.ToCustomerResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates a customer's details
// @Tags customers
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param customer_id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /pumps/{pump_id}/customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	customerID := c.Param("customer_id")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), pumpID, customerID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Marks a customer as inactive
// @Tags customers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param customer_id path string true "Customer ID"
// @Success 204 "Deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /pumps/{pump_id}/customers/{customer_id} [delete]
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	customerID := c.Param("customer_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), pumpID, customerID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate customer"})
		return
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}

// registerCustomerRoutes registers customer specific routes
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	handler := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", handler.createCustomer)
		customers.GET("", handler.listCustomers)
		customers.GET("/:customer_id", handler.getCustomer)
		customers.PUT("/:customer_id", handler.updateCustomer)
		customers.DELETE("/:customer_id", handler.deactivateCustomer)
	}
}
