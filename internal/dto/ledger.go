package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse is one posted ledger row in API responses.
type LedgerEntryResponse struct {
	LedgerEntryID   string           `json:"ledgerEntryID"`
	EntryNo         int64            `json:"entryNo"`
	AccountID       string           `json:"accountID"`
	VoucherID       string           `json:"voucherID"`
	VoucherNumber   string           `json:"voucherNumber"`
	TransactionDate time.Time        `json:"transactionDate"`
	EntryType       domain.EntryType `json:"entryType"`
	DebitAmount     decimal.Decimal  `json:"debitAmount"`
	CreditAmount    decimal.Decimal  `json:"creditAmount"`
	RunningBalance  decimal.Decimal  `json:"runningBalance"`
	Narration       string           `json:"narration"`
	IsReconciled    bool             `json:"isReconciled"`
	ReconciledAt    *time.Time       `json:"reconciledAt,omitempty"`
	ReconciledBy    string           `json:"reconciledBy,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID:   e.LedgerEntryID,
		EntryNo:         e.EntryNo,
		AccountID:       e.AccountID,
		VoucherID:       e.VoucherID,
		VoucherNumber:   e.VoucherNumber,
		TransactionDate: e.TransactionDate,
		EntryType:       e.EntryType,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		RunningBalance:  e.RunningBalance,
		Narration:       e.Narration,
		IsReconciled:    e.IsReconciled,
		ReconciledAt:    e.ReconciledAt,
		ReconciledBy:    e.ReconciledBy,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return out
}

// StatementParams bounds a statement query.
type StatementParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// StatementResponse is an ordered account statement with running balances.
type StatementResponse struct {
	AccountID      string                `json:"accountID"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
}

// ReconcileRequest marks one ledger entry as matched against a statement.
type ReconcileRequest struct {
	AsOf *time.Time `json:"asOf"` // Defaults to now
}

// UnreconciledResponse lists entries still awaiting statement matching.
type UnreconciledResponse struct {
	AccountID string                `json:"accountID"`
	Entries   []LedgerEntryResponse `json:"entries"`
}
