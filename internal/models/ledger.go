package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the DB representation of one immutable posted ledger row.
type LedgerEntry struct {
	LedgerEntryID   string          `db:"ledger_entry_id"`
	EntryNo         int64           `db:"entry_no"`
	PumpID          string          `db:"pump_id"`
	AccountID       string          `db:"account_id"`
	VoucherID       string          `db:"voucher_id"`
	VoucherNumber   string          `db:"voucher_number"`
	TransactionDate time.Time       `db:"transaction_date"`
	EntryType       EntryType       `db:"entry_type"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	RunningBalance  decimal.Decimal `db:"running_balance"`
	Narration       string          `db:"narration"`
	IsReconciled    bool            `db:"is_reconciled"`
	ReconciledAt    *time.Time      `db:"reconciled_at"`
	ReconciledBy    string          `db:"reconciled_by"`
	AuditFields
}
