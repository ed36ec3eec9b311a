package models

import "time"

// Employee is the DB representation of a staff record.
type Employee struct {
	EmployeeID  string     `db:"employee_id"`
	PumpID      string     `db:"pump_id"`
	Name        string     `db:"name"`
	Phone       string     `db:"phone"`
	Designation string     `db:"designation"`
	JoinedOn    time.Time  `db:"joined_on"`
	IsActive    bool       `db:"is_active"`
	DeletedAt   *time.Time `db:"deleted_at"`
	AuditFields
}
