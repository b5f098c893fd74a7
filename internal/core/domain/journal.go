package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether a journal line is a debit or a credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	// Draft entries are work in progress: excluded from reports, deletable.
	Draft EntryStatus = "DRAFT"
	// Validated entries are immutable and contribute to the ledger.
	Validated EntryStatus = "VALIDATED"
	// Reversed marks a validated entry that has been cancelled by a reversal entry.
	Reversed EntryStatus = "REVERSED"
)

// ReferenceType links a journal entry back to the business event that produced it.
type ReferenceType string

const (
	RefPOSSale      ReferenceType = "POS_SALE"
	RefExpenseClaim ReferenceType = "EXPENSE_CLAIM"
	RefInventory    ReferenceType = "INVENTORY"
	RefPayroll      ReferenceType = "PAYROLL"
	RefManual       ReferenceType = "MANUAL"
)

// FormatPieceNumber renders a piece number sequence value in its
// human-readable form, e.g. PC-000042.
func FormatPieceNumber(seq int64) string {
	return fmt.Sprintf("PC-%06d", seq)
}

// JournalEntry represents a single, balanced financial event composed of
// debit and credit lines.
type JournalEntry struct {
	EntryID       string        `json:"entryID"`     // Primary key (UUID)
	RestaurantID  string        `json:"restaurantID"`
	EntryDate     time.Time     `json:"entryDate"`   // Date the event occurred
	PieceNumber   string        `json:"pieceNumber"` // Sequential human-readable reference, e.g. PC-000042
	Description   string        `json:"description"`
	ReferenceType ReferenceType `json:"referenceType"`
	ReferenceID   *string       `json:"referenceID,omitempty"` // ID of the source transaction, if any
	Status        EntryStatus   `json:"status"`
	// Reversal linkage: a reversing entry points at its original through
	// OriginalEntryID, and a reversed original points forward through
	// ReversingEntryID.
	OriginalEntryID  *string         `json:"originalEntryID,omitempty"`
	ReversingEntryID *string         `json:"reversingEntryID,omitempty"`
	Amount           decimal.Decimal `json:"amount"` // Economic value: sum of the debit side
	Lines            []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit within a journal entry, affecting
// one account. Amount is always strictly positive; the direction is carried
// by Side, so a line can never be both a debit and a credit.
type JournalLine struct {
	LineID         string          `json:"lineID"`  // Primary key (UUID)
	EntryID        string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"` // Strictly positive
	Side           Side            `json:"side"`
	Notes          string          `json:"notes"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line, set at save time
	// Denormalized entry fields, populated on account statement reads.
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryPieceNumber string    `json:"entryPieceNumber,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`
	AuditFields
}
