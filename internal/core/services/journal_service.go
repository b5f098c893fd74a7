package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/restopilot/resto_books_app/internal/utils/accounting"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEntryImmutable     = errors.New("validated entries are immutable")
	ErrDescriptionMissing = errors.New("journal entry description is required")
)

// journalService provides core journal entry operations.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalRepositoryWithTx
	accountSvc    portssvc.AccountSvcFacade
	restaurantSvc portssvc.RestaurantSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, restaurantSvc portssvc.RestaurantSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
		restaurantSvc: restaurantSvc,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a new journal entry with its lines.
// Entries post as VALIDATED unless the request marks them as drafts; draft
// entries defer their balance deltas until validation.
func (s *journalService) CreateEntry(ctx context.Context, restaurantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, creatorUserID, restaurantID, domain.RoleManager); err != nil {
		logger.Warn("Authorization failed for CreateEntry",
			slog.String("user_id", creatorUserID),
			slog.String("restaurant_id", restaurantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	referenceType := req.ReferenceType
	if referenceType == "" {
		referenceType = domain.RefManual
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	domainLines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, lineReq.AccountID)
		}
		domainLines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: lineReq.AccountID,
			Amount:    lineReq.Amount,
			Side:      lineReq.Side,
			Notes:     lineReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance is calculated and set by the repository
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	// Double-entry invariant: debits must equal credits, at least two lines
	// across at least two accounts, all amounts positive.
	if err := accounting.ValidateEntryBalance(domainLines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, restaurantID, uniqueAccountIDs, creatorUserID)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", restaurantID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
		accountTypes[id] = acc.AccountType
	}

	status := domain.Validated
	if req.Draft {
		status = domain.Draft
	}

	// Net signed delta per account; the repository applies these under row
	// locks in the same transaction that stores the entry.
	balanceChanges := make(map[string]decimal.Decimal)
	if status == domain.Validated {
		balanceChanges, err = s.calculateBalanceChanges(domainLines, accountTypes)
		if err != nil {
			logger.Error("Error calculating balance changes", slog.String("error", err.Error()))
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
	}

	entry := domain.JournalEntry{
		EntryID:       entryID,
		RestaurantID:  restaurantID,
		EntryDate:     req.EntryDate,
		Description:   req.Description,
		ReferenceType: referenceType,
		ReferenceID:   req.ReferenceID,
		Status:        status,
		Amount:        accounting.EntryAmount(domainLines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, domainLines, balanceChanges)
	if err != nil {
		logger.Error("Failed to save journal entry",
			slog.String("error", err.Error()),
			slog.String("restaurant_id", restaurantID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("piece_number", saved.PieceNumber),
		slog.String("status", string(saved.Status)),
		slog.String("restaurant_id", restaurantID))
	saved.Lines = nil
	return saved, nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, restaurantID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, requestingUserID, restaurantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID",
				slog.String("error", err.Error()),
				slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	if entry.RestaurantID != restaurantID {
		// Obscure existence of entries in other restaurants
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	logger.Debug("Journal entry retrieved",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)))
	return entry, nil
}

// ListEntries retrieves a filtered, cursor-paginated list of journal entries.
func (s *journalService) ListEntries(ctx context.Context, restaurantID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntries", "error", err)
		return nil, err
	}

	filter, err := buildEntriesFilter(params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByRestaurant(ctx, restaurantID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			logger.Warn("Failed to fetch lines for listed entries", "error", err)
			// Continue with headers only rather than failing the whole request
		} else {
			for i := range entries {
				entries[i].Lines = linesMap[entries[i].EntryID]
			}
		}
	}

	resp := dto.ToListEntriesResponse(entries, nextToken)
	logger.Info("Journal entries listed", "count", len(entries))
	return &resp, nil
}

// ValidateEntry promotes a draft entry to VALIDATED. The entry's balance
// deltas, deferred at creation, are applied atomically with the status flip.
func (s *journalService) ValidateEntry(ctx context.Context, restaurantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, restaurantID, entryID, userID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry status is %s, expected DRAFT", apperrors.ErrConflict, entry.Status)
	}

	accountTypes, err := s.fetchAccountTypes(ctx, restaurantID, entry.Lines, userID)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := s.calculateBalanceChanges(entry.Lines, accountTypes)
	if err != nil {
		logger.Error("Error calculating balance changes for validation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.ValidateDraftEntry(ctx, entryID, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to validate draft entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to validate entry: %w", err)
	}

	entry.Status = domain.Validated
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("Draft entry validated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a draft entry. Validated and reversed entries are
// immutable and must be corrected through reversal instead.
func (s *journalService) DeleteEntry(ctx context.Context, restaurantID string, entryID string, userID string) error {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		return err
	}

	entry, err := s.GetEntryByID(ctx, restaurantID, entryID, userID)
	if err != nil {
		return err
	}

	if entry.Status != domain.Draft {
		logger.Warn("Attempted to delete a non-draft entry",
			slog.String("entry_id", entryID),
			slog.String("status", string(entry.Status)))
		return fmt.Errorf("%w: entry %s has status %s", ErrEntryImmutable, entry.PieceNumber, entry.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete draft entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete draft entry: %w", err)
	}

	logger.Info("Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ReverseEntry creates a counter-entry mirroring a validated entry: same
// accounts and amounts with debit and credit swapped. The original is marked
// REVERSED and both entries stay linked, keeping the audit trail intact.
func (s *journalService) ReverseEntry(ctx context.Context, restaurantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, userID, restaurantID, domain.RoleManager); err != nil {
		logger.Warn("Authorization failed for ReverseEntry", "error", err)
		return nil, err
	}

	original, err := s.GetEntryByID(ctx, restaurantID, entryID, userID)
	if err != nil {
		return nil, err
	}

	if original.Status != domain.Validated {
		logger.Warn("Attempted to reverse a non-validated entry", "status", original.Status)
		return nil, fmt.Errorf("%w: entry status is %s, expected VALIDATED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalEntryID != nil {
		logger.Warn("Attempted to reverse an entry that is already a reversal", "entryID", entryID)
		return nil, fmt.Errorf("%w: cannot reverse a reversal entry", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversingLines := make([]domain.JournalLine, len(original.Lines))
	for i, origLine := range original.Lines {
		side := domain.Credit
		if origLine.Side == domain.Credit {
			side = domain.Debit
		}
		reversingLines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   reversingID,
			AccountID: origLine.AccountID,
			Amount:    origLine.Amount,
			Side:      side,
			Notes:     origLine.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountTypes, err := s.fetchAccountTypes(ctx, restaurantID, reversingLines, userID)
	if err != nil {
		return nil, err
	}
	balanceChanges, err := s.calculateBalanceChanges(reversingLines, accountTypes)
	if err != nil {
		logger.Error("Failed to calculate balance changes for reversal", "error", err)
		return nil, fmt.Errorf("failed to calculate reversal balance changes: %w", err)
	}

	reversingEntry := domain.JournalEntry{
		EntryID:         reversingID,
		RestaurantID:    restaurantID,
		EntryDate:       original.EntryDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.PieceNumber, original.Description),
		ReferenceType:   original.ReferenceType,
		ReferenceID:     original.ReferenceID,
		Status:          domain.Validated,
		OriginalEntryID: &original.EntryID,
		Amount:          original.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// One transaction covers the reversing entry, the balance deltas and the
	// status flip of the original, so a failure leaves nothing half-reversed.
	saved, err := s.journalRepo.SaveReversalEntry(ctx, reversingEntry, reversingLines, balanceChanges, original.EntryID)
	if err != nil {
		logger.Error("Failed to save reversing entry", "originalEntryID", original.EntryID, "error", err)
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		"originalEntryID", original.EntryID,
		"reversingEntryID", saved.EntryID,
		"reversingPiece", saved.PieceNumber)
	saved.Lines = nil
	return saved, nil
}

// ListLinesByAccount retrieves an account statement: the account's lines with
// their parent entry dates and descriptions, cursor paginated.
func (s *journalService) ListLinesByAccount(ctx context.Context, restaurantID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	logger := s.GetLogger(ctx)

	if err := s.restaurantSvc.AuthorizeUserAction(ctx, userID, restaurantID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListLinesByAccount", "error", err)
		return nil, err
	}

	// Ensure the account belongs to the restaurant before listing.
	if _, err := s.accountSvc.GetAccountByID(ctx, restaurantID, accountID, userID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, restaurantID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list lines by account", "error", err)
		return nil, fmt.Errorf("failed to retrieve account lines: %w", err)
	}

	resp := dto.ToListLinesResponse(lines, nextToken)
	logger.Info("Account lines listed", "count", len(lines))
	return &resp, nil
}

// fetchAccountTypes loads the account types referenced by a set of lines,
// failing with ErrAccountNotFound when any account is missing.
func (s *journalService) fetchAccountTypes(ctx context.Context, restaurantID string, lines []domain.JournalLine, userID string) (map[string]domain.AccountType, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	uniqueIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, restaurantID, uniqueIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(uniqueIDs))
	for _, id := range uniqueIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		accountTypes[id] = acc.AccountType
	}
	return accountTypes, nil
}

// calculateBalanceChanges nets the signed amount of every line per account.
func (s *journalService) calculateBalanceChanges(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		signed, err := accounting.SignedAmount(line, accountTypes[line.AccountID])
		if err != nil {
			return nil, err
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}
	return balanceChanges, nil
}

func buildEntriesFilter(params dto.ListEntriesParams) (portsrepo.ListEntriesFilter, error) {
	filter := portsrepo.ListEntriesFilter{IncludeReversals: params.IncludeReversals}

	if params.FromDate != nil {
		from, err := time.Parse("2006-01-02", *params.FromDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid fromDate %q", apperrors.ErrValidation, *params.FromDate)
		}
		filter.From = &from
	}
	if params.ToDate != nil {
		to, err := time.Parse("2006-01-02", *params.ToDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid toDate %q", apperrors.ErrValidation, *params.ToDate)
		}
		// Inclusive of the whole day
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &to
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		switch status {
		case domain.Draft, domain.Validated, domain.Reversed:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
	}
	if params.ReferenceType != nil {
		refType := domain.ReferenceType(*params.ReferenceType)
		switch refType {
		case domain.RefPOSSale, domain.RefExpenseClaim, domain.RefInventory, domain.RefPayroll, domain.RefManual:
			filter.ReferenceType = &refType
		default:
			return filter, fmt.Errorf("%w: unknown reference type %q", apperrors.ErrValidation, *params.ReferenceType)
		}
	}
	return filter, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
