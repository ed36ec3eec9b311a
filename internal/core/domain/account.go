package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceType is the normal balance side of an account. An entry on the same
// side increases the balance, an entry on the opposite side decreases it.
type BalanceType string

const (
	DebitBalance  BalanceType = "DEBIT"
	CreditBalance BalanceType = "CREDIT"
)

// NormalBalanceFor returns the conventional normal balance for an account type.
func NormalBalanceFor(accountType AccountType) BalanceType {
	switch accountType {
	case Asset, Expense:
		return DebitBalance
	default:
		return CreditBalance
	}
}

// Account is one node of the chart of accounts, owned by a pump.
// Accounts are created at setup and only deactivated, never deleted.
type Account struct {
	AccountID         string          `json:"accountID"` // Primary Key (UUID)
	PumpID            string          `json:"pumpID"`    // Owning scope
	Code              string          `json:"code"`      // Unique within the pump
	Name              string          `json:"name"`
	AccountType       AccountType     `json:"accountType"`
	AccountGroup      string          `json:"accountGroup"` // Free-form grouping (e.g. "Current Assets")
	BalanceType       BalanceType     `json:"balanceType"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`    // Cached; authoritative value derives from the ledger
	ReconciledBalance decimal.Decimal `json:"reconciledBalance"` // Running balance of the latest reconciled entry
	ParentAccountID   string          `json:"parentAccountID"`   // Empty for root accounts
	Description       string          `json:"description"`
	IsSystemAccount   bool            `json:"isSystemAccount"` // Seeded accounts; cannot be deactivated
	IsActive          bool            `json:"isActive"`
	IsLocked          bool            `json:"isLocked"` // Locked accounts reject new postings
	AuditFields
}

// AcceptsPostings reports whether new ledger entries may target this account.
func (a Account) AcceptsPostings() bool {
	return a.IsActive && !a.IsLocked
}
