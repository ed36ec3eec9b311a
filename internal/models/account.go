package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// BalanceType mirrors domain.BalanceType for DB storage.
type BalanceType string

// Account is the DB representation of a chart-of-accounts node.
type Account struct {
	AccountID         string          `db:"account_id"`
	PumpID            string          `db:"pump_id"`
	Code              string          `db:"code"`
	Name              string          `db:"name"`
	AccountType       AccountType     `db:"account_type"`
	AccountGroup      string          `db:"account_group"`
	BalanceType       BalanceType     `db:"balance_type"`
	OpeningBalance    decimal.Decimal `db:"opening_balance"`
	CurrentBalance    decimal.Decimal `db:"current_balance"`
	ReconciledBalance decimal.Decimal `db:"reconciled_balance"`
	ParentAccountID   string          `db:"parent_account_id"` // Nullable in DB
	Description       string          `db:"description"`
	IsSystemAccount   bool            `db:"is_system_account"`
	IsActive          bool            `db:"is_active"`
	IsLocked          bool            `db:"is_locked"`
	AuditFields
}
