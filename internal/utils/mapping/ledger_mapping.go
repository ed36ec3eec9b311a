package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:   d.LedgerEntryID,
		EntryNo:         d.EntryNo,
		PumpID:          d.PumpID,
		AccountID:       d.AccountID,
		VoucherID:       d.VoucherID,
		VoucherNumber:   d.VoucherNumber,
		TransactionDate: d.TransactionDate,
		EntryType:       models.EntryType(d.EntryType),
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		RunningBalance:  d.RunningBalance,
		Narration:       d.Narration,
		IsReconciled:    d.IsReconciled,
		ReconciledAt:    d.ReconciledAt,
		ReconciledBy:    d.ReconciledBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:   m.LedgerEntryID,
		EntryNo:         m.EntryNo,
		PumpID:          m.PumpID,
		AccountID:       m.AccountID,
		VoucherID:       m.VoucherID,
		VoucherNumber:   m.VoucherNumber,
		TransactionDate: m.TransactionDate,
		EntryType:       domain.EntryType(m.EntryType),
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		RunningBalance:  m.RunningBalance,
		Narration:       m.Narration,
		IsReconciled:    m.IsReconciled,
		ReconciledAt:    m.ReconciledAt,
		ReconciledBy:    m.ReconciledBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
