package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence layer.
type EntryStatus string

// Side mirrors domain.Side at the persistence layer.
type Side string

// JournalEntry is the persistence model for a journal entry header.
type JournalEntry struct {
	EntryID          string
	RestaurantID     string
	EntryDate        time.Time
	PieceNumber      string
	Description      string
	ReferenceType    string
	ReferenceID      *string
	Status           EntryStatus
	OriginalEntryID  *string
	ReversingEntryID *string
	Amount           decimal.Decimal
	AuditFields
}

// JournalLine is the persistence model for a single debit or credit line.
type JournalLine struct {
	LineID         string
	EntryID        string
	AccountID      string
	Amount         decimal.Decimal
	Side           Side
	Notes          string
	RunningBalance decimal.Decimal
	// Denormalized entry columns, populated by statement queries.
	EntryDate        time.Time
	EntryPieceNumber string
	EntryDescription string
	AuditFields
}
