package domain

import "github.com/shopspring/decimal"

// Customer is a credit customer of a pump. A customer may be linked to a
// receivable account in the chart so fuel credit flows through the ledger.
type Customer struct {
	CustomerID  string          `json:"customerID"` // Primary Key (UUID)
	PumpID      string          `json:"pumpID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	AccountID   *string         `json:"accountID,omitempty"` // Linked receivable account, optional
	CreditLimit decimal.Decimal `json:"creditLimit"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}
