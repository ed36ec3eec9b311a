package dto

import (
	"time"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVoucherEntryRequest is one debit/credit line of a draft voucher.
type CreateVoucherEntryRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	EntryType domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal  `json:"amount" binding:"required,decimalgtzero"`
	Narration string           `json:"narration"`
}

// CreateVoucherRequest defines the data needed to start a draft voucher.
type CreateVoucherRequest struct {
	VoucherType domain.VoucherType          `json:"voucherType" binding:"required,oneof=RECEIPT PAYMENT JOURNAL CONTRA SALES PURCHASE SALES_RETURN PURCHASE_RETURN DEBIT_NOTE CREDIT_NOTE"`
	Date        time.Time                   `json:"date" binding:"required"`
	Narration   string                      `json:"narration" binding:"required"`
	Entries     []CreateVoucherEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// AddVoucherEntryRequest appends one line to an existing draft voucher.
type AddVoucherEntryRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	EntryType domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal  `json:"amount" binding:"required,decimalgtzero"`
	Narration string           `json:"narration"`
}

// CancelVoucherRequest carries the mandatory cancellation reason.
type CancelVoucherRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// VoucherEntryResponse is one line of a voucher in API responses.
type VoucherEntryResponse struct {
	EntryID   string           `json:"entryID"`
	AccountID string           `json:"accountID"`
	EntryType domain.EntryType `json:"entryType"`
	Amount    decimal.Decimal  `json:"amount"`
	Narration string           `json:"narration"`
	LineNo    int              `json:"lineNo"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID           string                 `json:"voucherID"`
	PumpID              string                 `json:"pumpID"`
	VoucherNumber       string                 `json:"voucherNumber,omitempty"`
	VoucherType         domain.VoucherType     `json:"voucherType"`
	VoucherDate         time.Time              `json:"voucherDate"`
	Narration           string                 `json:"narration"`
	TotalAmount         decimal.Decimal        `json:"totalAmount"`
	Status              domain.VoucherStatus   `json:"status"`
	CancelReason        string                 `json:"cancelReason,omitempty"`
	PostedAt            *time.Time             `json:"postedAt,omitempty"`
	PostedBy            string                 `json:"postedBy,omitempty"`
	ReversesVoucherID   *string                `json:"reversesVoucherID,omitempty"`
	ReversedByVoucherID *string                `json:"reversedByVoucherID,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	CreatedBy           string                 `json:"createdBy"`
	Entries             []VoucherEntryResponse `json:"entries,omitempty"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:           v.VoucherID,
		PumpID:              v.PumpID,
		VoucherNumber:       v.VoucherNumber,
		VoucherType:         v.VoucherType,
		VoucherDate:         v.VoucherDate,
		Narration:           v.Narration,
		TotalAmount:         v.TotalAmount,
		Status:              v.Status,
		CancelReason:        v.CancelReason,
		PostedAt:            v.PostedAt,
		PostedBy:            v.PostedBy,
		ReversesVoucherID:   v.ReversesVoucherID,
		ReversedByVoucherID: v.ReversedByVoucherID,
		CreatedAt:           v.CreatedAt,
		CreatedBy:           v.CreatedBy,
	}
	for _, e := range v.Entries {
		resp.Entries = append(resp.Entries, VoucherEntryResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			EntryType: e.EntryType,
			Amount:    e.Amount,
			Narration: e.Narration,
			LineNo:    e.LineNo,
		})
	}
	return resp
}

// PostingResultResponse reports a successful posting.
type PostingResultResponse struct {
	VoucherID      string   `json:"voucherID"`
	VoucherNumber  string   `json:"voucherNumber"`
	PostedEntryIDs []string `json:"postedEntryIDs"`
}

// ListVouchersParams holds parameters for listing vouchers.
type ListVouchersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// ListVouchersResponse wraps a page of vouchers with the next-page token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}
