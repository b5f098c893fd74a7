package accounting

import (
	"errors"
	"fmt"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrEntryUnbalanced is returned when an entry's debit and credit sides differ.
	ErrEntryUnbalanced = errors.New("journal entry does not balance: debits must equal credits")

	// ErrEntryMinLines is returned when an entry has fewer than two lines.
	ErrEntryMinLines = errors.New("journal entry must have at least two lines")

	// ErrEntryMinAccounts is returned when an entry affects fewer than two accounts.
	ErrEntryMinAccounts = errors.New("journal entry must affect at least two different accounts")

	// ErrUnknownAccount is returned when a line references an account that is
	// not part of the projection input. A distinct error, not a zero-valued
	// fallback, so data-integrity bugs upstream are not masked.
	ErrUnknownAccount = errors.New("journal line references an unknown account")
)

// SignedAmount applies the correct sign to a line amount based on the account
// type and the line side.
//
// DEBIT to ASSET/EXPENSE -> positive
// CREDIT to ASSET/EXPENSE -> negative
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative
// CREDIT to LIABILITY/EQUITY/REVENUE -> positive
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !domain.IsValidAccountType(accountType) {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
	signed := line.Amount
	isDebit := line.Side == domain.Debit
	if accountType.IsDebitNormal() != isDebit {
		signed = signed.Neg()
	}
	return signed, nil
}

// NormalBalance computes the normal-side balance of an account from its raw
// debit and credit totals: debit-credit for debit-normal types, credit-debit
// for credit-normal types.
func NormalBalance(accountType domain.AccountType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// ValidateEntryBalance checks the double-entry invariant on a set of lines:
// at least two lines over at least two accounts, every amount strictly
// positive, and the debit side summing to exactly the credit side.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}

	accountSet := make(map[string]struct{}, len(lines))
	debitSum := decimal.Zero
	creditSum := decimal.Zero

	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line amount must be positive for account %s: got %s", line.AccountID, line.Amount.String())
		}
		switch line.Side {
		case domain.Debit:
			debitSum = debitSum.Add(line.Amount)
		case domain.Credit:
			creditSum = creditSum.Add(line.Amount)
		default:
			return fmt.Errorf("unknown line side %q for account %s", line.Side, line.AccountID)
		}
		accountSet[line.AccountID] = struct{}{}
	}

	if len(accountSet) < 2 {
		return ErrEntryMinAccounts
	}

	if !debitSum.Equal(creditSum) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			ErrEntryUnbalanced, debitSum.String(), creditSum.String())
	}

	return nil
}

// EntryAmount computes the economic value of a balanced entry: the sum of its
// debit side (equal to the credit side once validated).
func EntryAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Side == domain.Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}
