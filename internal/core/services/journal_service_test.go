package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/core/services"
	"github.com/restopilot/resto_books_app/internal/dto"
	"github.com/restopilot/resto_books_app/internal/utils/accounting"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByRestaurant(ctx context.Context, restaurantID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, restaurantID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reversal, lines, balanceChanges, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ValidateDraftEntry(ctx context.Context, entryID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, balanceChanges, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, restaurantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, restaurantID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, restaurantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, restaurantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, restaurantID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, restaurantID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, restaurantID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, restaurantID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, restaurantID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, restaurantID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, restaurantID string, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, restaurantID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, restaurantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, restaurantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, restaurantID string, accountID string, userID string) error {
	args := m.Called(ctx, restaurantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) CalculateAccountBalance(ctx context.Context, restaurantID string, accountID string, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, restaurantID, accountID, userID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RestaurantService ---
type MockRestaurantService struct {
	mock.Mock
}

var _ portssvc.RestaurantSvcFacade = (*MockRestaurantService)(nil)

func (m *MockRestaurantService) CreateRestaurant(ctx context.Context, name, description, defaultCurrencyCode, creatorUserID string) (*domain.Restaurant, error) {
	args := m.Called(ctx, name, description, defaultCurrencyCode, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) ListRestaurants(ctx context.Context, userID string, limit int, offset int) ([]domain.Restaurant, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) UpdateRestaurant(ctx context.Context, restaurantID string, req dto.UpdateRestaurantRequest, requestingUserID string) (*domain.Restaurant, error) {
	args := m.Called(ctx, restaurantID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) DeactivateRestaurant(ctx context.Context, restaurantID string, requestingUserID string) error {
	args := m.Called(ctx, restaurantID, requestingUserID)
	return args.Error(0)
}

func (m *MockRestaurantService) AuthorizeUserAction(ctx context.Context, userID, restaurantID string, requiredRole domain.RestaurantRole) error {
	args := m.Called(ctx, userID, restaurantID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountSvc    *MockAccountService
	mockRestaurantSvc *MockRestaurantService
	service           portssvc.JournalSvcFacade
	cashAccount       domain.Account
	salesAccount      domain.Account
	vatAccount        domain.Account
	expenseAccount    domain.Account
	restaurantID      string
	userID            string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockRestaurantSvc = new(MockRestaurantService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockRestaurantSvc)

	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Code:         "512",
		Name:         "Banque",
		AccountType:  domain.Asset,
		IsActive:     true,
	}
	suite.salesAccount = domain.Account{
		AccountID:    uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Code:         "701",
		Name:         "Ventes restaurant",
		AccountType:  domain.Revenue,
		IsActive:     true,
	}
	suite.vatAccount = domain.Account{
		AccountID:    uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Code:         "445",
		Name:         "TVA collectée",
		AccountType:  domain.Liability,
		IsActive:     true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		RestaurantID: suite.restaurantID,
		Code:         "601",
		Name:         "Achats matières premières",
		AccountType:  domain.Expense,
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Dinner service sales",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(110), Side: domain.Debit},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Credit},
			{AccountID: suite.vatAccount.AccountID, Amount: decimal.NewFromInt(10), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
		suite.vatAccount.AccountID:   suite.vatAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			balanceChanges := args.Get(3).(map[string]decimal.Decimal)
			suite.Equal(domain.Validated, entry.Status)
			suite.True(entry.Amount.Equal(decimal.NewFromInt(110)))
			// Debit to the asset raises its balance, credits raise the
			// liability and revenue normal-side balances.
			suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(110)))
			suite.True(balanceChanges[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(100)))
			suite.True(balanceChanges[suite.vatAccount.AccountID].Equal(decimal.NewFromInt(10)))
		}).
		Return(&domain.JournalEntry{
			EntryID:      uuid.NewString(),
			RestaurantID: suite.restaurantID,
			PieceNumber:  "PC-000001",
			Status:       domain.Validated,
			Amount:       decimal.NewFromInt(110),
		}, nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("PC-000001", created.PieceNumber)
	suite.Equal(domain.Validated, created.Status)
	suite.Nil(created.Lines)

	suite.mockRestaurantSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Draft_DefersBalanceChanges() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Pending supplier invoice",
		Draft:       true,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, Amount: decimal.NewFromInt(250), Side: domain.Debit},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(250), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			balanceChanges := args.Get(3).(map[string]decimal.Decimal)
			suite.Equal(domain.Draft, entry.Status)
			suite.Empty(balanceChanges)
		}).
		Return(&domain.JournalEntry{
			EntryID:     uuid.NewString(),
			PieceNumber: "PC-000002",
			Status:      domain.Draft,
		}, nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, created.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Unbalanced entry",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(90), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrEntryUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Both sides on one account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrEntryMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{Description: "nope"}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountNotFound() {
	ctx := context.Background()
	unknownAccountID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Entry with unknown account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(100), Side: domain.Debit},
			{AccountID: unknownAccountID, Amount: decimal.NewFromInt(100), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		// unknownAccountID is missing
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.expenseAccount
	inactive.IsActive = false
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Entry hitting a closed account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: inactive.AccountID, Amount: decimal.NewFromInt(40), Side: domain.Debit},
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(40), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	accountsMap := map[string]domain.Account{
		inactive.AccountID:          inactive,
		suite.cashAccount.AccountID: suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(10), Side: domain.Debit},
			{AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(10), Side: domain.Credit},
		},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_WrongRestaurant() {
	ctx := context.Background()
	entryID := uuid.NewString()
	otherRestaurantEntry := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: uuid.NewString(), // Different restaurant
		Status:       domain.Validated,
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(otherRestaurantEntry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestValidateEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		PieceNumber:  "PC-000007",
		Status:       domain.Draft,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, Amount: decimal.NewFromInt(75), Side: domain.Debit},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(75), Side: domain.Credit},
	}

	// ValidateEntry authorizes as MANAGER itself, then loads via GetEntryByID
	// which authorizes again as READONLY.
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    suite.cashAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("ValidateDraftEntry", ctx, entryID, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			balanceChanges := args.Get(2).(map[string]decimal.Decimal)
			// Debit raises the expense, credit lowers the asset.
			suite.True(balanceChanges[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(75)))
			suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-75)))
		}).
		Return(nil).Once()

	validated, err := suite.service.ValidateEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Validated, validated.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestValidateEntry_AlreadyValidated() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		Status:       domain.Validated,
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ValidateEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ValidateDraftEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_ValidatedIsImmutable() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		PieceNumber:  "PC-000010",
		Status:       domain.Validated,
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryImmutable)
	suite.Contains(err.Error(), "PC-000010")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraftEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_DraftSuccess() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		Status:       domain.Draft,
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockJournalRepo.On("DeleteDraftEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		PieceNumber:  "PC-000003",
		Description:  "Dinner service sales",
		Status:       domain.Validated,
		Amount:       decimal.NewFromInt(110),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(110), Side: domain.Debit},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(110), Side: domain.Credit},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	reversalID := uuid.NewString()
	suite.mockJournalRepo.On("SaveReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal"), entryID).
		Run(func(args mock.Arguments) {
			reversal := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.JournalLine)
			balanceChanges := args.Get(3).(map[string]decimal.Decimal)

			suite.Require().NotNil(reversal.OriginalEntryID)
			suite.Equal(entryID, *reversal.OriginalEntryID)
			suite.Contains(reversal.Description, "PC-000003")

			// Sides swapped relative to the original
			suite.Equal(domain.Credit, lines[0].Side)
			suite.Equal(domain.Debit, lines[1].Side)

			// Deltas undo the original posting
			suite.True(balanceChanges[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-110)))
			suite.True(balanceChanges[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(-110)))
		}).
		Return(&domain.JournalEntry{
			EntryID:         reversalID,
			RestaurantID:    suite.restaurantID,
			PieceNumber:     "PC-000004",
			Status:          domain.Validated,
			OriginalEntryID: &entryID,
		}, nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("PC-000004", reversal.PieceNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ConcurrentReversalConflict() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		PieceNumber:  "PC-000003",
		Status:       domain.Validated,
		Amount:       decimal.NewFromInt(110),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Amount: decimal.NewFromInt(110), Side: domain.Debit},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.salesAccount.AccountID, Amount: decimal.NewFromInt(110), Side: domain.Credit},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.restaurantID, mock.AnythingOfType("[]string"), suite.userID).Return(accountsMap, nil).Once()

	// A concurrent reversal won the race: the guarded status flip finds the
	// original no longer VALIDATED and the whole transaction rolls back.
	suite.mockJournalRepo.On("SaveReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal"), entryID).
		Return(nil, fmt.Errorf("%w: entry %s is not validated", apperrors.ErrConflict, entryID)).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_CannotReverseReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()
	reversalEntry := &domain.JournalEntry{
		EntryID:         entryID,
		RestaurantID:    suite.restaurantID,
		Status:          domain.Validated,
		OriginalEntryID: &originalID, // Already a reversal
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversalEntry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftNotReversible() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:      entryID,
		RestaurantID: suite.restaurantID,
		Status:       domain.Draft,
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.restaurantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestListEntries_InvalidFromDate() {
	ctx := context.Background()
	badDate := "28/08/2026"
	params := dto.ListEntriesParams{FromDate: &badDate}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()

	_, err := suite.service.ListEntries(ctx, suite.restaurantID, suite.userID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntriesByRestaurant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_Success() {
	ctx := context.Background()
	params := dto.ListEntriesParams{Limit: 2, IncludeReversals: true}
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), RestaurantID: suite.restaurantID, PieceNumber: "PC-000005"},
		{EntryID: uuid.NewString(), RestaurantID: suite.restaurantID, PieceNumber: "PC-000006"},
	}
	linesMap := map[string][]domain.JournalLine{
		entries[0].EntryID: {{LineID: uuid.NewString(), EntryID: entries[0].EntryID}},
		entries[1].EntryID: {},
	}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockJournalRepo.On("ListEntriesByRestaurant", ctx, suite.restaurantID, mock.AnythingOfType("repositories.ListEntriesFilter"), 2, (*string)(nil)).Return(entries, "token-abc", nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, mock.AnythingOfType("[]string")).Return(linesMap, nil).Once()

	page, err := suite.service.ListEntries(ctx, suite.restaurantID, suite.userID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(page)
	suite.Len(page.Entries, 2)
	suite.Require().NotNil(page.NextToken)
	suite.Equal("token-abc", *page.NextToken)
	suite.Len(page.Entries[0].Lines, 1)
}

func (suite *JournalServiceTestSuite) TestListEntries_ToDateInclusiveOfWholeDay() {
	ctx := context.Background()
	toDate := "2026-08-28"
	params := dto.ListEntriesParams{ToDate: &toDate}

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()

	// An entry dated 2026-08-28T19:30:00Z must satisfy toDate=2026-08-28, so
	// the upper bound handed to the repository is the last instant of the day.
	var gotFilter portsrepo.ListEntriesFilter
	suite.mockJournalRepo.On("ListEntriesByRestaurant", ctx, suite.restaurantID, mock.AnythingOfType("repositories.ListEntriesFilter"), mock.AnythingOfType("int"), (*string)(nil)).
		Run(func(args mock.Arguments) {
			gotFilter = args.Get(2).(portsrepo.ListEntriesFilter)
		}).
		Return([]domain.JournalEntry{}, nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string][]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ListEntries(ctx, suite.restaurantID, suite.userID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(gotFilter.To)
	wantTo := time.Date(2026, 8, 28, 23, 59, 59, 999999999, time.UTC)
	suite.True(gotFilter.To.Equal(wantTo), "To bound should be the end of the requested day, got %s", gotFilter.To)
}

func (suite *JournalServiceTestSuite) TestListLinesByAccount_AccountMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRestaurantSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.restaurantID, accountID, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListLinesByAccount(ctx, suite.restaurantID, accountID, suite.userID, dto.ListLinesParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListLinesByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
