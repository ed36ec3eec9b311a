package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// CreateFinancialYearRequest defines the data needed to open a fiscal period.
type CreateFinancialYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
	Global    bool      `json:"global"` // True for a year shared by all pumps
}

// FinancialYearResponse defines the data returned for a financial year.
type FinancialYearResponse struct {
	FinancialYearID string    `json:"financialYearID"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsActive        bool      `json:"isActive"`
	PumpID          *string   `json:"pumpID,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToFinancialYearResponse converts a domain.FinancialYear to FinancialYearResponse
func ToFinancialYearResponse(fy *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID: fy.FinancialYearID,
		Name:            fy.Name,
		StartDate:       fy.StartDate,
		EndDate:         fy.EndDate,
		IsActive:        fy.IsActive,
		PumpID:          fy.PumpID,
		CreatedAt:       fy.CreatedAt,
	}
}

// ListFinancialYearsResponse wraps the years visible to a pump.
type ListFinancialYearsResponse struct {
	FinancialYears []FinancialYearResponse `json:"financialYears"`
}
