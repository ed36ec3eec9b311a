package models

import "github.com/shopspring/decimal"

// Customer is the DB representation of a credit customer.
type Customer struct {
	CustomerID  string          `db:"customer_id"`
	PumpID      string          `db:"pump_id"`
	Name        string          `db:"name"`
	Phone       string          `db:"phone"`
	Address     string          `db:"address"`
	AccountID   *string         `db:"account_id"`
	CreditLimit decimal.Decimal `db:"credit_limit"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
