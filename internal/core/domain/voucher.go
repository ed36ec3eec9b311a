package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies the business transaction a voucher records.
type VoucherType string

const (
	Receipt        VoucherType = "RECEIPT"
	Payment        VoucherType = "PAYMENT"
	JournalVoucher VoucherType = "JOURNAL"
	Contra         VoucherType = "CONTRA"
	Sales          VoucherType = "SALES"
	Purchase       VoucherType = "PURCHASE"
	SalesReturn    VoucherType = "SALES_RETURN"
	PurchaseReturn VoucherType = "PURCHASE_RETURN"
	DebitNote      VoucherType = "DEBIT_NOTE"
	CreditNote     VoucherType = "CREDIT_NOTE"
)

// NumberPrefix returns the short code used when composing voucher numbers.
func (t VoucherType) NumberPrefix() string {
	switch t {
	case Receipt:
		return "RCT"
	case Payment:
		return "PMT"
	case JournalVoucher:
		return "JRN"
	case Contra:
		return "CTR"
	case Sales:
		return "SAL"
	case Purchase:
		return "PUR"
	case SalesReturn:
		return "SRN"
	case PurchaseReturn:
		return "PRN"
	case DebitNote:
		return "DBN"
	case CreditNote:
		return "CRN"
	default:
		return "VCH"
	}
}

// VoucherStatus is the single tagged state of a voucher's lifecycle.
// POSTED and CANCELLED are terminal.
type VoucherStatus string

const (
	VoucherDraft     VoucherStatus = "DRAFT"
	VoucherApproved  VoucherStatus = "APPROVED"
	VoucherPosted    VoucherStatus = "POSTED"
	VoucherCancelled VoucherStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// DRAFT -> APPROVED -> POSTED; DRAFT/APPROVED -> CANCELLED.
func (s VoucherStatus) CanTransitionTo(next VoucherStatus) bool {
	switch s {
	case VoucherDraft:
		return next == VoucherApproved || next == VoucherCancelled
	case VoucherApproved:
		return next == VoucherPosted || next == VoucherCancelled
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s VoucherStatus) IsTerminal() bool {
	return s == VoucherPosted || s == VoucherCancelled
}

// Voucher is a balanced set of debit/credit instructions representing one
// business transaction. It exclusively owns its entries while DRAFT/APPROVED;
// once POSTED the voucher and its entries are frozen and corrections are
// modeled as new reversing vouchers.
type Voucher struct {
	VoucherID     string          `json:"voucherID"`     // Primary Key (UUID)
	PumpID        string          `json:"pumpID"`        // Owning scope
	VoucherNumber string          `json:"voucherNumber"` // Assigned at posting; unique within the pump
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherDate   time.Time       `json:"voucherDate"`
	Narration     string          `json:"narration"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Sum of the debit side
	Status        VoucherStatus   `json:"status"`
	CancelReason  string          `json:"cancelReason,omitempty"`
	PostedAt      *time.Time      `json:"postedAt,omitempty"`
	PostedBy      string          `json:"postedBy,omitempty"`
	// Set on the reversing voucher / the reversed original respectively.
	ReversesVoucherID   *string `json:"reversesVoucherID,omitempty"`
	ReversedByVoucherID *string `json:"reversedByVoucherID,omitempty"`
	AuditFields

	// Entries are loaded on demand; nil when only the header was fetched.
	Entries []VoucherEntry `json:"entries,omitempty"`
}

// EntryType indicates whether a voucher line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Opposite returns the reversing side.
func (t EntryType) Opposite() EntryType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// VoucherEntry is a single debit or credit line inside a voucher. It exists
// only as part of its voucher and holds a non-owning reference to the account.
type VoucherEntry struct {
	EntryID   string          `json:"entryID"`   // Primary Key (UUID)
	VoucherID string          `json:"voucherID"` // FK -> Voucher (owning)
	AccountID string          `json:"accountID"` // FK -> Account (lookup only)
	EntryType EntryType       `json:"entryType"`
	Amount    decimal.Decimal `json:"amount"` // Always positive
	Narration string          `json:"narration"`
	LineNo    int             `json:"lineNo"` // Order within the voucher
	AuditFields
}
