package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AccountGroup    string             `json:"accountGroup"`
	BalanceType     domain.BalanceType `json:"balanceType" binding:"omitempty,oneof=DEBIT CREDIT"` // Defaults from account type
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
	ParentAccountID *string            `json:"parentAccountID"`
	Description     string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	AccountGroup *string `json:"accountGroup"`
	Description  *string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID         string             `json:"accountID"`
	PumpID            string             `json:"pumpID"`
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	AccountType       domain.AccountType `json:"accountType"`
	AccountGroup      string             `json:"accountGroup"`
	BalanceType       domain.BalanceType `json:"balanceType"`
	OpeningBalance    decimal.Decimal    `json:"openingBalance"`
	CurrentBalance    decimal.Decimal    `json:"currentBalance"`
	ReconciledBalance decimal.Decimal    `json:"reconciledBalance"`
	ParentAccountID   string             `json:"parentAccountID"`
	Description       string             `json:"description"`
	IsSystemAccount   bool               `json:"isSystemAccount"`
	IsActive          bool               `json:"isActive"`
	IsLocked          bool               `json:"isLocked"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		PumpID:            acc.PumpID,
		Code:              acc.Code,
		Name:              acc.Name,
		AccountType:       acc.AccountType,
		AccountGroup:      acc.AccountGroup,
		BalanceType:       acc.BalanceType,
		OpeningBalance:    acc.OpeningBalance,
		CurrentBalance:    acc.CurrentBalance,
		ReconciledBalance: acc.ReconciledBalance,
		ParentAccountID:   acc.ParentAccountID,
		Description:       acc.Description,
		IsSystemAccount:   acc.IsSystemAccount,
		IsActive:          acc.IsActive,
		IsLocked:          acc.IsLocked,
		CreatedAt:         acc.CreatedAt,
		CreatedBy:         acc.CreatedBy,
	}
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// BalanceResponse is the result of a point-in-time balance query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}
