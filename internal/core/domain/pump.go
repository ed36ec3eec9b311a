package domain

// Pump is the owning scope for accounts, vouchers and financial years: one
// station unit with its own chart of accounts and ledger.
type Pump struct {
	PumpID   string `json:"pumpID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Address  string `json:"address"`
	GSTIN    string `json:"gstin,omitempty"` // Tax registration, optional
	IsActive bool   `json:"isActive"`
	AuditFields
}
