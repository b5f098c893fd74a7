package dto

import (
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines one debit or credit line of a new entry.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Side      domain.Side     `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Notes     string          `json:"notes"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
// Entries post as VALIDATED unless Draft is set.
type CreateJournalEntryRequest struct {
	EntryDate     time.Time                  `json:"entryDate" binding:"required"`
	Description   string                     `json:"description" binding:"required"`
	ReferenceType domain.ReferenceType       `json:"referenceType" binding:"omitempty,oneof=POS_SALE EXPENSE_CLAIM INVENTORY PAYROLL MANUAL"`
	ReferenceID   *string                    `json:"referenceID"`
	Draft         bool                       `json:"draft"`
	Lines         []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	Side           domain.Side     `json:"side"`
	Notes          string          `json:"notes,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	RestaurantID     string                `json:"restaurantID"`
	EntryDate        time.Time             `json:"entryDate"`
	PieceNumber      string                `json:"pieceNumber"`
	Description      string                `json:"description"`
	ReferenceType    domain.ReferenceType  `json:"referenceType"`
	ReferenceID      *string               `json:"referenceID,omitempty"`
	Status           domain.EntryStatus    `json:"status"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	Amount           decimal.Decimal       `json:"amount"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:         line.LineID,
		EntryID:        line.EntryID,
		AccountID:      line.AccountID,
		Amount:         line.Amount,
		Side:           line.Side,
		Notes:          line.Notes,
		RunningBalance: line.RunningBalance,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalLine to DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToJournalLineResponse(&line)
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:          entry.EntryID,
		RestaurantID:     entry.RestaurantID,
		EntryDate:        entry.EntryDate,
		PieceNumber:      entry.PieceNumber,
		Description:      entry.Description,
		ReferenceType:    entry.ReferenceType,
		ReferenceID:      entry.ReferenceID,
		Status:           entry.Status,
		OriginalEntryID:  entry.OriginalEntryID,
		ReversingEntryID: entry.ReversingEntryID,
		Amount:           entry.Amount,
		Lines:            ToJournalLineResponses(entry.Lines),
		CreatedAt:        entry.CreatedAt,
		CreatedBy:        entry.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
// NextToken carries the cursor returned by the previous page.
type ListEntriesParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	FromDate         *string `form:"fromDate"` // YYYY-MM-DD
	ToDate           *string `form:"toDate"`   // YYYY-MM-DD
	Status           *string `form:"status"`
	ReferenceType    *string `form:"referenceType"`
	IncludeReversals bool    `form:"includeReversals,default=true"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a slice of domain.JournalEntry to a page DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	list := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		list[i] = ToJournalEntryResponse(&e)
	}
	return ListEntriesResponse{Entries: list, NextToken: nextToken}
}

// StatementLineResponse is one row of an account statement: a journal line
// with its parent entry's date and description attached.
type StatementLineResponse struct {
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryPieceNumber string          `json:"entryPieceNumber"`
	EntryDescription string          `json:"entryDescription"`
	Amount           decimal.Decimal `json:"amount"`
	Side             domain.Side     `json:"side"`
	RunningBalance   decimal.Decimal `json:"runningBalance"`
}

// ListLinesParams defines query parameters for listing an account's lines.
type ListLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse wraps a page of account statement lines.
type ListLinesResponse struct {
	Lines     []StatementLineResponse `json:"lines"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToListLinesResponse converts domain lines to a statement page DTO.
func ToListLinesResponse(lines []domain.JournalLine, nextToken *string) ListLinesResponse {
	list := make([]StatementLineResponse, len(lines))
	for i, line := range lines {
		list[i] = StatementLineResponse{
			LineID:           line.LineID,
			EntryID:          line.EntryID,
			EntryDate:        line.EntryDate,
			EntryPieceNumber: line.EntryPieceNumber,
			EntryDescription: line.EntryDescription,
			Amount:           line.Amount,
			Side:             line.Side,
			RunningBalance:   line.RunningBalance,
		}
	}
	return ListLinesResponse{Lines: list, NextToken: nextToken}
}
