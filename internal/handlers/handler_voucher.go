package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

// voucherHandler handles HTTP requests for the voucher lifecycle.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(voucherService portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService: voucherService,
	}
}

// voucherErrorResponse maps the service error classes shared by the voucher
// lifecycle endpoints to HTTP statuses. Lock timeouts are reported as 503 so
// clients know the posting may be retried.
func (h *voucherHandler) voucherErrorResponse(c *gin.Context, logger *slog.Logger, err error, action string, voucherID string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriod):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " voucher"})
	}
}

// createVoucher godoc
// @Summary Create a draft voucher
// @Description Starts a DRAFT voucher from the given lines
// @Tags vouchers
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /pumps/{pump_id}/vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.CreateDraftVoucher(c.Request.Context(), pumpID, req, creatorID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "create", "")
		return
	}

	logger.Info("Draft voucher created", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its entries
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /pumps/{pump_id}/vouchers/{voucher_id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), pumpID, voucherID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "retrieve", voucherID)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Retrieves a token-paginated list of vouchers for a pump, newest first
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Continuation token from the previous page"
// @Param status query string false "Filter by voucher status"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /pumps/{pump_id}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), pumpID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vouchers"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// addVoucherEntry godoc
// @Summary Add a line to a draft voucher
// @Description Appends one debit/credit line to a DRAFT voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Param entry body dto.AddVoucherEntryRequest true "Entry details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Voucher is not a draft"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/entries [post]
func (h *voucherHandler) addVoucherEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	var req dto.AddVoucherEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addVoucherEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.AddVoucherEntry(c.Request.Context(), pumpID, voucherID, req, userID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "amend", voucherID)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// validateVoucher godoc
// @Summary Validate a draft voucher
// @Description Re-runs the structural checks without changing state
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 204 "Voucher is valid"
// @Failure 400 {object} map[string]string "Voucher is invalid"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/validate [post]
func (h *voucherHandler) validateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	if err := h.voucherService.ValidateVoucher(c.Request.Context(), pumpID, voucherID); err != nil {
		h.voucherErrorResponse(c, logger, err, "validate", voucherID)
		return
	}

	c.Status(http.StatusNoContent)
}

// approveVoucher godoc
// @Summary Approve a draft voucher
// @Description Validates a DRAFT voucher and transitions it to APPROVED
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not a draft"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/approve [post]
func (h *voucherHandler) approveVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.ApproveVoucher(c.Request.Context(), pumpID, voucherID, userID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "approve", voucherID)
		return
	}

	logger.Info("Voucher approved", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// postVoucher godoc
// @Summary Post an approved voucher
// @Description Assigns the voucher number, writes the ledger entries and flips the voucher to POSTED atomically
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.PostingResultResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not approved"
// @Failure 422 {object} map[string]string "Date outside the open financial year"
// @Failure 503 {object} map[string]string "Account locks unavailable, retry later"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/post [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.voucherService.PostVoucher(c.Request.Context(), pumpID, voucherID, userID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "post", voucherID)
		return
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucherID),
		slog.String("voucher_number", result.VoucherNumber),
	)
	c.JSON(http.StatusOK, dto.PostingResultResponse{
		VoucherID:      result.VoucherID,
		VoucherNumber:  result.VoucherNumber,
		PostedEntryIDs: result.PostedEntryIDs,
	})
}

// cancelVoucher godoc
// @Summary Cancel a voucher
// @Description Cancels a DRAFT or APPROVED voucher with a mandatory reason; POSTED vouchers cannot be cancelled
// @Tags vouchers
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Param reason body dto.CancelVoucherRequest true "Cancellation reason"
// @Success 204 "Cancelled"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher cannot be cancelled"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/cancel [post]
func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	var req dto.CancelVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for cancelVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format, reason is required"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.voucherService.CancelVoucher(c.Request.Context(), pumpID, voucherID, req.Reason, userID); err != nil {
		h.voucherErrorResponse(c, logger, err, "cancel", voucherID)
		return
	}

	logger.Info("Voucher cancelled", slog.String("voucher_id", voucherID))
	c.Status(http.StatusNoContent)
}

// reverseVoucher godoc
// @Summary Reverse a posted voucher
// @Description Creates, approves and posts a new voucher that offsets a POSTED one
// @Tags vouchers
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param voucher_id path string true "Voucher ID"
// @Success 201 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not posted or already reversed"
// @Router /pumps/{pump_id}/vouchers/{voucher_id}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.voucherService.ReverseVoucher(c.Request.Context(), pumpID, voucherID, userID)
	if err != nil {
		h.voucherErrorResponse(c, logger, err, "reverse", voucherID)
		return
	}

	logger.Info("Voucher reversed",
		slog.String("voucher_id", voucherID),
		slog.String("reversal_voucher_id", reversal.VoucherID),
	)
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(reversal))
}

// registerVoucherRoutes registers voucher specific routes
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	handler := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", handler.createVoucher)
		vouchers.GET("", handler.listVouchers)
		vouchers.GET("/:voucher_id", handler.getVoucher)
		vouchers.POST("/:voucher_id/entries", handler.addVoucherEntry)
		vouchers.POST("/:voucher_id/validate", handler.validateVoucher)
		vouchers.POST("/:voucher_id/approve", handler.approveVoucher)
		vouchers.POST("/:voucher_id/post", handler.postVoucher)
		vouchers.POST("/:voucher_id/cancel", handler.cancelVoucher)
		vouchers.POST("/:voucher_id/reverse", handler.reverseVoucher)
	}
}
