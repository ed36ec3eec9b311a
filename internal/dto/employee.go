package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to add a staff record.
type CreateEmployeeRequest struct {
	Name        string    `json:"name" binding:"required"`
	Phone       string    `json:"phone"`
	Designation string    `json:"designation"`
	JoinedOn    time.Time `json:"joinedOn" time_format:"2006-01-02"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID  string    `json:"employeeID"`
	PumpID      string    `json:"pumpID"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Designation string    `json:"designation"`
	JoinedOn    time.Time `json:"joinedOn"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:  e.EmployeeID,
		PumpID:      e.PumpID,
		Name:        e.Name,
		Phone:       e.Phone,
		Designation: e.Designation,
		JoinedOn:    e.JoinedOn,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

// ListEmployeesResponse wraps the employees of a pump.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
