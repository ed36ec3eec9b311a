package models

// Pump is the DB representation of a station unit.
type Pump struct {
	PumpID   string `db:"pump_id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	GSTIN    string `db:"gstin"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
