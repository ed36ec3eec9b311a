package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType mirrors domain.VoucherType for DB storage.
type VoucherType string

// VoucherStatus mirrors domain.VoucherStatus for DB storage.
type VoucherStatus string

// EntryType mirrors domain.EntryType for DB storage.
type EntryType string

// Voucher is the DB representation of a voucher header.
type Voucher struct {
	VoucherID           string          `db:"voucher_id"`
	PumpID              string          `db:"pump_id"`
	VoucherNumber       string          `db:"voucher_number"` // Nullable until posted
	VoucherType         VoucherType     `db:"voucher_type"`
	VoucherDate         time.Time       `db:"voucher_date"`
	Narration           string          `db:"narration"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	Status              VoucherStatus   `db:"status"`
	CancelReason        string          `db:"cancel_reason"`
	PostedAt            *time.Time      `db:"posted_at"`
	PostedBy            string          `db:"posted_by"`
	ReversesVoucherID   *string         `db:"reverses_voucher_id"`
	ReversedByVoucherID *string         `db:"reversed_by_voucher_id"`
	AuditFields
}

// VoucherEntry is the DB representation of one voucher line.
type VoucherEntry struct {
	EntryID   string          `db:"entry_id"`
	VoucherID string          `db:"voucher_id"`
	AccountID string          `db:"account_id"`
	EntryType EntryType       `db:"entry_type"`
	Amount    decimal.Decimal `db:"amount"`
	Narration string          `db:"narration"`
	LineNo    int             `db:"line_no"`
	AuditFields
}
