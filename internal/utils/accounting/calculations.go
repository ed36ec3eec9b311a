package accounting

import (
	"fmt"
	"sort"

	"github.com/pumpsoft/fuel_station_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to an entry amount based on the
// account's normal balance. This is used in both services and repositories to
// keep the balance arithmetic in one place.
//
// Convention:
//
//	DEBIT entry to a DEBIT-balance account   -> Positive (+)
//	CREDIT entry to a DEBIT-balance account  -> Negative (-)
//	DEBIT entry to a CREDIT-balance account  -> Negative (-)
//	CREDIT entry to a CREDIT-balance account -> Positive (+)
func SignedAmount(entryType domain.EntryType, amount decimal.Decimal, balanceType domain.BalanceType) (decimal.Decimal, error) {
	isDebit := entryType == domain.Debit

	switch balanceType {
	case domain.DebitBalance:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.CreditBalance:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown balance type '%s'", balanceType)
	}
	return amount, nil
}

// SumEntrySides returns the debit and credit totals of a set of voucher lines.
func SumEntrySides(entries []domain.VoucherEntry) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		if e.EntryType == domain.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits
}

// ValidateVoucherEntries checks the structural rules of a voucher's lines:
// at least two lines, at least one debit and one credit, every amount
// positive, and the double-entry invariant debits == credits.
func ValidateVoucherEntries(entries []domain.VoucherEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("voucher must have at least two entries, got %d", len(entries))
	}

	hasDebit, hasCredit := false, false
	for _, e := range entries {
		if e.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("entry amount must be positive for account %s, got %s", e.AccountID, e.Amount.String())
		}
		if e.EntryType == domain.Debit {
			hasDebit = true
		} else {
			hasCredit = true
		}
	}
	if !hasDebit || !hasCredit {
		return fmt.Errorf("voucher must contain at least one debit and one credit entry")
	}

	debits, credits := SumEntrySides(entries)
	if !debits.Equal(credits) {
		return fmt.Errorf("voucher does not balance: debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// ChainRunningBalances rebuilds the running balance of every entry starting
// from openingBalance, in (TransactionDate, EntryNo) order. It returns the
// entries in chain order and the final balance of the chain.
//
// The function is pure and idempotent: feeding its own output back in yields
// identical running balances, which is what makes backdated re-chaining safe
// to repeat.
func ChainRunningBalances(openingBalance decimal.Decimal, balanceType domain.BalanceType, entries []domain.LedgerEntry) ([]domain.LedgerEntry, decimal.Decimal, error) {
	chained := make([]domain.LedgerEntry, len(entries))
	copy(chained, entries)

	sort.SliceStable(chained, func(i, j int) bool {
		if !chained[i].TransactionDate.Equal(chained[j].TransactionDate) {
			return chained[i].TransactionDate.Before(chained[j].TransactionDate)
		}
		return chained[i].EntryNo < chained[j].EntryNo
	})

	balance := openingBalance
	for i := range chained {
		signed, err := SignedAmount(chained[i].EntryType, chained[i].Amount(), balanceType)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("entry %s: %w", chained[i].LedgerEntryID, err)
		}
		balance = balance.Add(signed)
		chained[i].RunningBalance = balance
	}
	return chained, balance, nil
}
