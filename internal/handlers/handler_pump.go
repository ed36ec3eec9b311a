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

// pumpHandler handles HTTP requests related to pumps.
type pumpHandler struct {
	pumpService portssvc.PumpSvcFacade
}

// newPumpHandler creates a new pumpHandler.
func newPumpHandler(pumpService portssvc.PumpSvcFacade) *pumpHandler {
	return &pumpHandler{
		pumpService: pumpService,
	}
}

// createPump godoc
// @Summary Register a new pump
// @Description Registers a new fuel station unit
// @Tags pumps
// @Accept json
// @Produce json
// @Param pump body dto.CreatePumpRequest true "Pump details"
// @Success 201 {object} dto.PumpResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /pumps [post]
func (h *pumpHandler) createPump(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPump", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pump, err := h.pumpService.CreatePump(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create pump", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pump"})
		return
	}

	logger.Info("Pump created", slog.String("pump_id", pump.PumpID))
	c.JSON(http.StatusCreated, dto.ToPumpResponse(pump))
}

// getPump godoc
// @Summary Get a pump
// @Description Retrieves a pump by its ID
// @Tags pumps
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Success 200 {object} dto.PumpResponse
// @Failure 404 {object} map[string]string "Pump not found"
// @Router /pumps/{pump_id} [get]
func (h *pumpHandler) getPump(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	pump, err := h.pumpService.GetPumpByID(c.Request.Context(), pumpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pump not found"})
			return
		}
		logger.Error("Failed to get pump", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pump"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPumpResponse(pump))
}

// listPumps godoc
// @Summary List pumps
// @Description Retrieves a paginated list of registered pumps
// @Tags pumps
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListPumpsResponse
// @Router /pumps [get]
func (h *pumpHandler) listPumps(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	pumps, err := h.pumpService.ListPumps(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list pumps", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pumps"})
		return
	}

	resp := dto.ListPumpsResponse{Pumps: make([]dto.PumpResponse, 0, len(pumps))}
	for i := range pumps {
		resp.Pumps = append(resp.Pumps, dto.ToPumpResponse(&pumps[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updatePump godoc
// @Summary Update a pump
// @Description Updates a pump's details
// @Tags pumps
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param pump body dto.UpdatePumpRequest true "Fields to update"
// @Success 200 {object} dto.PumpResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Pump not found"
// @Router /pumps/{pump_id} [put]
func (h *pumpHandler) updatePump(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.UpdatePumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updatePump", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pump, err := h.pumpService.UpdatePump(c.Request.Context(), pumpID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pump not found"})
			return
		}
		logger.Error("Failed to update pump", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pump"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPumpResponse(pump))
}

// registerPumpRoutes registers pump specific routes
func registerPumpRoutes(rg *gin.RouterGroup, pumpService portssvc.PumpSvcFacade) {
	handler := newPumpHandler(pumpService)

	pumps := rg.Group("/pumps")
	{
		pumps.POST("", handler.createPump)
		pumps.GET("", handler.listPumps)
		pumps.GET("/:pump_id", handler.getPump)
		pumps.PUT("/:pump_id", handler.updatePump)
	}
}
