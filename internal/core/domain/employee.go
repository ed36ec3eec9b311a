package domain

import "time"

// Employee is a staff record referenced by audit fields, postings and
// reconciliations. Credentials live outside this system.
type Employee struct {
	EmployeeID  string     `json:"employeeID"` // Primary Key (UUID)
	PumpID      string     `json:"pumpID"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Designation string     `json:"designation"`
	JoinedOn    time.Time  `json:"joinedOn"`
	IsActive    bool       `json:"isActive"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"` // Soft delete
	AuditFields
}
