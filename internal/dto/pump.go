package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// CreatePumpRequest defines the data needed to register a pump.
type CreatePumpRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

// UpdatePumpRequest defines the data allowed for updating a pump.
type UpdatePumpRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}

// PumpResponse defines the data returned for a pump.
type PumpResponse struct {
	PumpID    string    `json:"pumpID"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	GSTIN     string    `json:"gstin,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPumpResponse converts a domain.Pump to PumpResponse
func ToPumpResponse(p *domain.Pump) PumpResponse {
	return PumpResponse{
		PumpID:    p.PumpID,
		Name:      p.Name,
		Address:   p.Address,
		GSTIN:     p.GSTIN,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// ListPumpsResponse wraps all registered pumps.
type ListPumpsResponse struct {
	Pumps []PumpResponse `json:"pumps"`
}
