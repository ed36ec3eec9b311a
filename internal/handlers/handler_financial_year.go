package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

// financialYearHandler handles HTTP requests for fiscal periods.
type financialYearHandler struct {
	financialYearService portssvc.FinancialYearSvcFacade
}

// newFinancialYearHandler creates a new financialYearHandler.
func newFinancialYearHandler(financialYearService portssvc.FinancialYearSvcFacade) *financialYearHandler {
	return &financialYearHandler{
		financialYearService: financialYearService,
	}
}

// createFinancialYear godoc
// @Summary Create a financial year
// @Description Opens a new (inactive) fiscal period for the pump or globally
// @Tags financial-years
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param year body dto.CreateFinancialYearRequest true "Financial year details"
// @Success 201 {object} dto.FinancialYearResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Overlapping or duplicate year"
// @Router /pumps/{pump_id}/financial-years [post]
func (h *financialYearHandler) createFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFinancialYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fy, err := h.financialYearService.CreateFinancialYear(c.Request.Context(), pumpID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create financial year", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create financial year"})
		}
		return
	}

	logger.Info("Financial year created", slog.String("financial_year_id", fy.FinancialYearID), slog.String("name", fy.Name))
	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(fy))
}

// activateFinancialYear godoc
// @Summary Activate a financial year
// @Description Atomically swaps the active year of the target scope
// @Tags financial-years
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param fy_id path string true "Financial year ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Financial year not found"
// @Router /pumps/{pump_id}/financial-years/{fy_id}/activate [post]
func (h *financialYearHandler) activateFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fyID := c.Param("fy_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fy, err := h.financialYearService.ActivateFinancialYear(c.Request.Context(), fyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial year not found"})
			return
		}
		logger.Error("Failed to activate financial year", slog.String("error", err.Error()), slog.String("financial_year_id", fyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate financial year"})
		return
	}

	logger.Info("Financial year activated", slog.String("financial_year_id", fyID))
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// getActiveFinancialYear godoc
// @Summary Get the active financial year
// @Description Returns the active year for the pump, falling back to the active global year
// @Tags financial-years
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} map[string]string "No active financial year"
// @Router /pumps/{pump_id}/financial-years/active [get]
func (h *financialYearHandler) getActiveFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	fy, err := h.financialYearService.GetActiveFinancialYear(c.Request.Context(), pumpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active financial year"})
			return
		}
		logger.Error("Failed to get active financial year", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve active financial year"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

// listFinancialYears godoc
// @Summary List financial years
// @Description Lists the years visible to a pump (its own plus global ones), newest first
// @Tags financial-years
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Success 200 {object} dto.ListFinancialYearsResponse
// @Router /pumps/{pump_id}/financial-years [get]
func (h *financialYearHandler) listFinancialYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	years, err := h.financialYearService.ListFinancialYears(c.Request.Context(), pumpID)
	if err != nil {
		logger.Error("Failed to list financial years", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list financial years"})
		return
	}

	resp := dto.ListFinancialYearsResponse{FinancialYears: make([]dto.FinancialYearResponse, 0, len(years))}
	for i := range years {
		resp.FinancialYears = append(resp.FinancialYears, dto.ToFinancialYearResponse(&years[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// classifyDate godoc
// @Summary Classify a date against the active year
// @Description Positions a date relative to the active financial year of the scope (PAST, CURRENT or FUTURE)
// @Tags financial-years
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No active financial year"
// @Router /pumps/{pump_id}/financial-years/classify [get]
func (h *financialYearHandler) classifyDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	class, err := h.financialYearService.Classify(c.Request.Context(), pumpID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active financial year"})
			return
		}
		logger.Error("Failed to classify date", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify date"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"class": class,
	})
}

// registerFinancialYearRoutes registers financial year specific routes
func registerFinancialYearRoutes(rg *gin.RouterGroup, financialYearService portssvc.FinancialYearSvcFacade) {
	handler := newFinancialYearHandler(financialYearService)

	years := rg.Group("/financial-years")
	{
		years.POST("", handler.createFinancialYear)
		years.GET("", handler.listFinancialYears)
		years.GET("/active", handler.getActiveFinancialYear)
		years.GET("/classify", handler.classifyDate)
		years.POST("/:fy_id/activate", handler.activateFinancialYear)
	}
}
