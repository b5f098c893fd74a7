package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	"github.com/restopilot/resto_books_app/internal/models"
	"github.com/restopilot/resto_books_app/internal/utils/accounting"
	"github.com/restopilot/resto_books_app/internal/utils/mapping"
	"github.com/restopilot/resto_books_app/internal/utils/pagination"
)

const entryColumns = `entry_id, restaurant_id, entry_date, piece_number, description, reference_type, reference_id, status, original_entry_id, reversing_entry_id, amount, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, amount, side, notes, running_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveEntry saves a journal entry with its lines, allocates the piece number
// from the restaurant's sequence, and applies account balance deltas, all
// within a single database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	saved, err := r.saveEntryInTx(ctx, tx, entry, lines, balanceChanges)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit transaction for entry "+entry.EntryID, err)
	}
	return saved, nil
}

// SaveReversalEntry saves the reversing entry, applies its balance deltas and
// marks the original entry REVERSED, all within one transaction. The status
// flip is guarded on VALIDATED, so a concurrent second reversal of the same
// entry fails with a conflict instead of double-reversing.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalEntryID string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.saveEntryInTx(ctx, tx, reversal, lines, balanceChanges)
	if err != nil {
		return nil, err
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND status = 'VALIDATED';
	`, originalEntryID, saved.EntryID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" as reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: entry %s is not validated", apperrors.ErrConflict, originalEntryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit reversal of entry "+originalEntryID, err)
	}
	return saved, nil
}

// saveEntryInTx performs the entry save inside the caller's transaction.
func (r *PgxJournalRepository) saveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	now := entry.CreatedAt
	userID := entry.CreatedBy

	// 1. Allocate the next piece number from the restaurant row. The UPDATE
	// takes a row lock, so concurrent saves serialize here and the sequence
	// never gaps backwards or duplicates.
	var seq int64
	err := tx.QueryRow(ctx, `
		UPDATE restaurants
		SET next_piece_number = next_piece_number + 1
		WHERE restaurant_id = $1
		RETURNING next_piece_number - 1;
	`, entry.RestaurantID).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: restaurant %s", apperrors.ErrNotFound, entry.RestaurantID)
		}
		return nil, apperrors.NewAppError(500, "failed to allocate piece number for restaurant "+entry.RestaurantID, err)
	}
	entry.PieceNumber = domain.FormatPieceNumber(seq)

	// 2. Insert the entry header
	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.RestaurantID,
		modelEntry.EntryDate,
		modelEntry.PieceNumber,
		modelEntry.Description,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.Status,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.Amount,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	// 3. Lock the affected accounts and read their pre-change balances.
	// Draft entries carry no balance changes, so nothing is locked for them.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 4. Apply the balance deltas
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 5. Insert the lines with per-account running balances
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Sort by LineID for a deterministic running-balance order within the entry
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].LineID < lines[j].LineID
	})

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		modelLine.CreatedAt = now
		modelLine.CreatedBy = userID
		modelLine.LastUpdatedAt = now
		modelLine.LastUpdatedBy = userID

		if lockedAcc, ok := lockedAccounts[line.AccountID]; ok {
			signed, err := accounting.SignedAmount(line, lockedAcc.AccountType)
			if err != nil {
				return nil, apperrors.NewAppError(500, "failed to calculate signed amount for line "+line.LineID, err)
			}
			newRunningBalance := currentRunningBalances[line.AccountID].Add(signed)
			modelLine.RunningBalance = newRunningBalance
			currentRunningBalances[line.AccountID] = newRunningBalance
		}

		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Amount,
			modelLine.Side,
			modelLine.Notes,
			modelLine.RunningBalance,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}

	entry.Lines = lines
	return &entry, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	modelEntry, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(*modelEntry)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines associated with a specific entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		modelLine, err := scanLineRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		modelLines = append(modelLines, *modelLine)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// FindLinesByEntryIDs retrieves all lines for a given list of entry IDs,
// grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry IDs", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		modelLine, err := scanLineRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", err)
		}
		domainLine := mapping.ToDomainJournalLine(*modelLine)
		linesMap[domainLine.EntryID] = append(linesMap[domainLine.EntryID], domainLine)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	// Entries with no lines still get an empty slice
	for _, eid := range entryIDs {
		if _, exists := linesMap[eid]; !exists {
			linesMap[eid] = []domain.JournalLine{}
		}
	}

	return linesMap, nil
}

// ListEntriesByRestaurant retrieves a filtered, cursor-paginated list of
// journal entries, newest first.
func (r *PgxJournalRepository) ListEntriesByRestaurant(ctx context.Context, restaurantID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE restaurant_id = $1`
	args := []interface{}{restaurantID}

	if filter.From != nil {
		args = append(args, *filter.From)
		filterClause += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		filterClause += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.ReferenceType != nil {
		args = append(args, string(*filter.ReferenceType))
		filterClause += ` AND reference_type = $` + strconv.Itoa(len(args))
	}
	if !filter.IncludeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_entry_id IS NULL`
	}

	// The cursor needs a total order; piece_number is unique per restaurant,
	// so two entries sharing an entry_date never tie and no row can be
	// skipped across a page boundary.
	orderByClause := `ORDER BY entry_date DESC, piece_number DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastPiece, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastPiece)
		filterClause += ` AND (entry_date, piece_number) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for restaurant "+restaurantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		modelEntry, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for restaurant "+restaurantID, scanErr)
		}
		modelEntries = append(modelEntries, *modelEntry)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for restaurant "+restaurantID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.PieceNumber)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}

	return domainEntries, nextTokenVal, nil
}

// ListLinesByAccountID retrieves a cursor-paginated account statement: the
// account's validated lines joined with their entry's date and description.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, restaurantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.amount, l.side, l.notes, l.running_balance,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date, e.piece_number, e.description
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.restaurant_id = $2 AND e.status = 'VALIDATED' AND e.original_entry_id IS NULL
	`
	// Same total order as the entry listing: piece_number breaks entry_date ties
	orderByClause := `ORDER BY e.entry_date DESC, e.piece_number DESC, l.line_id`

	args := []interface{}{accountID, restaurantID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastPiece, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastPiece)
		baseQuery += ` AND (e.entry_date, e.piece_number) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID+" in restaurant "+restaurantID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0, fetchLimit)
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Amount,
			&l.Side,
			&l.Notes,
			&l.RunningBalance,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
			&l.EntryDate,
			&l.EntryPieceNumber,
			&l.EntryDescription,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		modelLines = append(modelLines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelLines
	if len(modelLines) > limit {
		lastLine := modelLines[limit-1]
		token := pagination.EncodeToken(lastLine.EntryDate, lastLine.EntryPieceNumber)
		nextTokenVal = &token
		results = modelLines[:limit]
	}

	return mapping.ToDomainJournalLineSlice(results), nextTokenVal, nil
}

// ValidateDraftEntry atomically promotes a draft entry to VALIDATED, applies
// the deferred balance deltas and backfills the running balances of its lines.
func (r *PgxJournalRepository) ValidateDraftEntry(ctx context.Context, entryID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'VALIDATED', last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT';
	`, entryID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to promote draft entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for draft validation", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, updatedByUserID, updatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances for draft validation", err)
	}

	// Backfill running balances, which drafts leave at zero
	rows, err := tx.Query(ctx, `
		SELECT `+lineColumns+`
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query lines for draft validation of "+entryID, err)
	}

	modelLines := []models.JournalLine{}
	for rows.Next() {
		modelLine, scanErr := scanLineRow(rows)
		if scanErr != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan line row for draft validation of "+entryID, scanErr)
		}
		modelLines = append(modelLines, *modelLine)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating line rows for draft validation of "+entryID, err)
	}

	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	batch := &pgx.Batch{}
	for _, modelLine := range modelLines {
		domainLine := mapping.ToDomainJournalLine(modelLine)
		lockedAcc, ok := lockedAccounts[domainLine.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: account "+domainLine.AccountID+" not locked during draft validation", nil)
		}
		signed, err := accounting.SignedAmount(domainLine, lockedAcc.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for line "+domainLine.LineID, err)
		}
		newRunningBalance := currentRunningBalances[domainLine.AccountID].Add(signed)
		currentRunningBalances[domainLine.AccountID] = newRunningBalance

		batch.Queue(`
			UPDATE journal_lines
			SET running_balance = $2, last_updated_at = $3, last_updated_by = $4
			WHERE line_id = $1;
		`, domainLine.LineID, newRunningBalance, updatedAt, updatedByUserID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to backfill running balances for entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Delete the header first, guarded on DRAFT status; lines follow only
	// when the guard held.
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM journal_entries
		WHERE entry_id = $1 AND status = 'DRAFT';
	`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete draft entry "+entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journal_entries WHERE entry_id = $1)`, entryID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check entry existence for "+entryID, err)
		}
		if exists {
			return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
		}
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of draft entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

func scanEntryRow(row scanTarget) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.RestaurantID,
		&m.EntryDate,
		&m.PieceNumber,
		&m.Description,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Status,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLineRow(row scanTarget) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Amount,
		&m.Side,
		&m.Notes,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
