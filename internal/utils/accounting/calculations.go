package accounting

import (
	"fmt"

	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedEffect returns the polarity-normalized effect of a debit/credit pair
// on an account of the given type.
// Debit-normal types (ASSET, EXPENSE) grow with debits; credit-normal types
// (LIABILITY, EQUITY, REVENUE) grow with credits.
func SignedEffect(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Totals sums the debit and credit legs of a prospective transaction.
func Totals(entries []domain.EntryInput) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// ValidateBalanced checks the double-entry invariant for a prospective
// transaction: a non-empty entry set with non-negative amounts whose debit
// and credit totals are exactly equal. The comparison is exact decimal
// equality, never tolerance-based.
func ValidateBalanced(entries []domain.EntryInput) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: transaction requires at least one entry", apperrors.ErrValidation)
	}
	for i, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: entry %d has a negative amount", apperrors.ErrValidation, i+1)
		}
	}
	debits, credits := Totals(entries)
	if !debits.Equal(credits) {
		return &apperrors.UnbalancedTransactionError{Debits: debits, Credits: credits}
	}
	return nil
}
