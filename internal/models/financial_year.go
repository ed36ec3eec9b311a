package models

import "time"

// FinancialYear is the DB representation of a fiscal period.
type FinancialYear struct {
	FinancialYearID string    `db:"financial_year_id"`
	Name            string    `db:"name"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	IsActive        bool      `db:"is_active"`
	PumpID          *string   `db:"pump_id"` // NULL = global scope
	AuditFields
}
