package repositories

import (
	"context"
	"time"

	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesFilter narrows a journal entry listing.
type ListEntriesFilter struct {
	From          *time.Time
	To            *time.Time
	Status        *domain.EntryStatus
	ReferenceType *domain.ReferenceType
	// IncludeReversals controls whether reversed originals and their
	// reversing entries appear in the listing.
	IncludeReversals bool
}

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry (header only) by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByRestaurant retrieves a filtered, cursor-paginated list of
	// entries ordered by entry date then piece number.
	ListEntriesByRestaurant(ctx context.Context, restaurantID string, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveEntry persists an entry with its lines and applies the account
	// balance deltas, all within a single database transaction. The piece
	// number is allocated inside the transaction and set on the returned entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error)

	// SaveReversalEntry persists the reversing entry, applies its balance
	// deltas and marks the original entry REVERSED, all within one database
	// transaction. It fails with a conflict when the original is no longer
	// VALIDATED.
	SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalEntryID string) (*domain.JournalEntry, error)

	// ValidateDraftEntry atomically promotes a draft entry to VALIDATED and
	// applies its account balance deltas, which drafts defer until validation.
	ValidateDraftEntry(ctx context.Context, entryID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// DeleteDraftEntry removes a draft entry and its lines. Drafts never
	// touched account balances, so nothing is reverted. It must refuse
	// non-draft entries.
	DeleteDraftEntry(ctx context.Context, entryID string) error
}

// JournalLineReader defines read operations for journal line data.
type JournalLineReader interface {
	// FindLinesByEntryID retrieves all lines of a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a cursor-paginated account statement.
	ListLinesByAccountID(ctx context.Context, restaurantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
