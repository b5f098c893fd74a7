package services

import (
	"context"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry by its ID, lines included.
	GetEntryByID(ctx context.Context, restaurantID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries in a restaurant.
	ListEntries(ctx context.Context, restaurantID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new journal entry with its lines.
	CreateEntry(ctx context.Context, restaurantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ValidateEntry promotes a draft entry to VALIDATED, making it immutable
	// and visible to reports.
	ValidateEntry(ctx context.Context, restaurantID string, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry. Validated entries cannot be deleted.
	DeleteEntry(ctx context.Context, restaurantID string, entryID string, userID string) error

	// ReverseEntry creates a reversal entry mirroring an existing validated entry.
	ReverseEntry(ctx context.Context, restaurantID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// LineReaderSvc defines read operations for journal lines
type LineReaderSvc interface {
	// ListLinesByAccount retrieves the posted lines for a specific account.
	ListLinesByAccount(ctx context.Context, restaurantID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	LineReaderSvc
}
