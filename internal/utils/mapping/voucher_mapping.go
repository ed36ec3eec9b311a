package mapping

import (
	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/pumpsoft/fuel_station_backend/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:           d.VoucherID,
		PumpID:              d.PumpID,
		VoucherNumber:       d.VoucherNumber,
		VoucherType:         models.VoucherType(d.VoucherType),
		VoucherDate:         d.VoucherDate,
		Narration:           d.Narration,
		TotalAmount:         d.TotalAmount,
		Status:              models.VoucherStatus(d.Status),
		CancelReason:        d.CancelReason,
		PostedAt:            d.PostedAt,
		PostedBy:            d.PostedBy,
		ReversesVoucherID:   d.ReversesVoucherID,
		ReversedByVoucherID: d.ReversedByVoucherID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:           m.VoucherID,
		PumpID:              m.PumpID,
		VoucherNumber:       m.VoucherNumber,
		VoucherType:         domain.VoucherType(m.VoucherType),
		VoucherDate:         m.VoucherDate,
		Narration:           m.Narration,
		TotalAmount:         m.TotalAmount,
		Status:              domain.VoucherStatus(m.Status),
		CancelReason:        m.CancelReason,
		PostedAt:            m.PostedAt,
		PostedBy:            m.PostedBy,
		ReversesVoucherID:   m.ReversesVoucherID,
		ReversedByVoucherID: m.ReversedByVoucherID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherEntry converts a domain VoucherEntry to a model VoucherEntry
func ToModelVoucherEntry(d domain.VoucherEntry) models.VoucherEntry {
	return models.VoucherEntry{
		EntryID:     d.EntryID,
		VoucherID:   d.VoucherID,
		AccountID:   d.AccountID,
		EntryType:   models.EntryType(d.EntryType),
		Amount:      d.Amount,
		Narration:   d.Narration,
		LineNo:      d.LineNo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucherEntry converts a model VoucherEntry to a domain VoucherEntry
func ToDomainVoucherEntry(m models.VoucherEntry) domain.VoucherEntry {
	return domain.VoucherEntry{
		EntryID:     m.EntryID,
		VoucherID:   m.VoucherID,
		AccountID:   m.AccountID,
		EntryType:   domain.EntryType(m.EntryType),
		Amount:      m.Amount,
		Narration:   m.Narration,
		LineNo:      m.LineNo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherEntrySlice converts a slice of model VoucherEntries to domain
func ToDomainVoucherEntrySlice(ms []models.VoucherEntry) []domain.VoucherEntry {
	ds := make([]domain.VoucherEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucherEntry(m)
	}
	return ds
}
