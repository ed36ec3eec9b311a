package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pumpsoft/fuel_station_backend/internal/apperrors"
	portssvc "github.com/pumpsoft/fuel_station_backend/internal/core/ports/services"
	"github.com/pumpsoft/fuel_station_backend/internal/dto"
	"github.com/pumpsoft/fuel_station_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a new account in the pump's chart of accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /pumps/{pump_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), pumpID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account by its ID
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), pumpID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a paginated list of accounts for a pump
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListAccountsResponse
// @Router /pumps/{pump_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), pumpID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("pump_id", pumpID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(accounts))}
	for i := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's descriptive fields
// @Tags accounts
// @Accept json
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), pumpID, accountID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// lockAccount godoc
// @Summary Lock an account
// @Description Blocks new postings to the account
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 204 "Locked"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/lock [post]
func (h *accountHandler) lockAccount(c *gin.Context) {
	h.setLockState(c, true)
}

// unlockAccount godoc
// @Summary Unlock an account
// @Description Re-enables postings to the account
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 204 "Unlocked"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/unlock [post]
func (h *accountHandler) unlockAccount(c *gin.Context) {
	h.setLockState(c, false)
}

func (h *accountHandler) setLockState(c *gin.Context, locked bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var err error
	if locked {
		err = h.accountService.LockAccount(c.Request.Context(), pumpID, accountID, userID)
	} else {
		err = h.accountService.UnlockAccount(c.Request.Context(), pumpID, accountID, userID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to change account lock state", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change account lock state"})
		return
	}

	logger.Info("Account lock state changed", slog.String("account_id", accountID), slog.Bool("locked", locked))
	c.Status(http.StatusNoContent)
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account as inactive; accounts are never deleted
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account cannot be deactivated"
// @Router /pumps/{pump_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	userID, ok := middleware.GetEmployeeIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), pumpID, accountID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getParentChain godoc
// @Summary Resolve an account's parent chain
// @Description Walks the parent links from the account up to the root
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/parents [get]
func (h *accountHandler) getParentChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	chain, err := h.accountService.ResolveParentChain(c.Request.Context(), pumpID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve parent chain", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve parent chain"})
		}
		return
	}

	resp := dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, 0, len(chain))}
	for i := range chain {
		resp.Accounts = append(resp.Accounts, dto.ToAccountResponse(&chain[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getBalance godoc
// @Summary Get an account balance as of a date
// @Description Reconstructs the balance at end of day from the ledger, so backdated postings are reflected
// @Tags accounts
// @Produce json
// @Param pump_id path string true "Pump ID"
// @Param account_id path string true "Account ID"
// @Param asOf query string false "Date (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /pumps/{pump_id}/accounts/{account_id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pumpID := c.Param("pump_id")
	accountID := c.Param("account_id")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	balance, err := h.accountService.BalanceAsOf(c.Request.Context(), pumpID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balance:   balance,
	})
}

// registerAccountRoutes registers account specific routes
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	handler := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", handler.createAccount)
		accounts.GET("", handler.listAccounts)
		accounts.GET("/:account_id", handler.getAccount)
		accounts.PUT("/:account_id", handler.updateAccount)
		accounts.DELETE("/:account_id", handler.deactivateAccount)
		accounts.POST("/:account_id/lock", handler.lockAccount)
		accounts.POST("/:account_id/unlock", handler.unlockAccount)
		accounts.GET("/:account_id/parents", handler.getParentChain)
		accounts.GET("/:account_id/balance", handler.getBalance)
	}
}
