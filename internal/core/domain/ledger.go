package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the immutable record of one account-side effect of a posted
// voucher, produced one-per-VoucherEntry at posting time. Rows are write-once;
// only the reconciliation metadata may change afterwards.
type LedgerEntry struct {
	LedgerEntryID   string          `json:"ledgerEntryID"` // Primary Key (UUID)
	EntryNo         int64           `json:"entryNo"`       // Monotonic sequence; tie-break within a transaction date
	PumpID          string          `json:"pumpID"`
	AccountID       string          `json:"accountID"` // Non-owning reference
	VoucherID       string          `json:"voucherID"` // Non-owning reference
	VoucherNumber   string          `json:"voucherNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	EntryType       EntryType       `json:"entryType"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`  // Zero for credit entries
	CreditAmount    decimal.Decimal `json:"creditAmount"` // Zero for debit entries
	// RunningBalance is the account balance immediately after this entry, in
	// (transactionDate, entryNo) order.
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Narration      string          `json:"narration"`
	IsReconciled   bool            `json:"isReconciled"`
	ReconciledAt   *time.Time      `json:"reconciledAt,omitempty"`
	ReconciledBy   string          `json:"reconciledBy,omitempty"`
	AuditFields
}

// Amount returns the positive amount of the entry regardless of side.
func (e LedgerEntry) Amount() decimal.Decimal {
	if e.EntryType == Debit {
		return e.DebitAmount
	}
	return e.CreditAmount
}
