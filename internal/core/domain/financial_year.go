package domain

import "time"

// DateClass positions a date relative to a financial year.
type DateClass string

const (
	DateWithinYear DateClass = "CURRENT"
	DateBeforeYear DateClass = "PAST"
	DateAfterYear  DateClass = "FUTURE"
)

// FinancialYear is a bounded accounting period. At most one may be active per
// scope at any instant; a nil PumpID makes the year global.
type FinancialYear struct {
	FinancialYearID string    `json:"financialYearID"` // Primary Key (UUID)
	Name            string    `json:"name"`            // e.g. "FY2025-26", unique
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsActive        bool      `json:"isActive"`
	PumpID          *string   `json:"pumpID,omitempty"` // nil = global scope
	AuditFields
}

// Classify positions date relative to [StartDate, EndDate], comparing whole
// days so a voucher dated any time on the boundary days is inside the year.
func (fy FinancialYear) Classify(date time.Time) DateClass {
	d := date.Truncate(24 * time.Hour)
	if d.Before(fy.StartDate.Truncate(24 * time.Hour)) {
		return DateBeforeYear
	}
	if d.After(fy.EndDate.Truncate(24 * time.Hour)) {
		return DateAfterYear
	}
	return DateWithinYear
}

// Contains reports whether date falls inside the year.
func (fy FinancialYear) Contains(date time.Time) bool {
	return fy.Classify(date) == DateWithinYear
}
