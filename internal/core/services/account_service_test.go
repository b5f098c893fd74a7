package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/core/services"
	"github.com/restopilot/resto_books_app/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, restaurantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, restaurantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, restaurantID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, restaurantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock RestaurantAuthorizer ---
type MockRestaurantAuthorizer struct {
	mock.Mock
}

var _ portssvc.RestaurantAuthorizerSvc = (*MockRestaurantAuthorizer)(nil)

func (m *MockRestaurantAuthorizer) AuthorizeUserAction(ctx context.Context, userID, restaurantID string, requiredRole domain.RestaurantRole) error {
	args := m.Called(ctx, userID, restaurantID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockAuthorizer *MockRestaurantAuthorizer
	service        portssvc.AccountSvcFacade
	restaurantID   string
	userID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockRestaurantAuthorizer)
	suite.service = services.NewAccountService(suite.mockRepo,
		services.WithRestaurantAuthorizer(suite.mockAuthorizer))
	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesTypeFromClass() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "607", Name: "Achats de marchandises"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.Account)
			suite.Equal(domain.Expense, acc.AccountType)
			suite.Equal(suite.restaurantID, acc.RestaurantID)
			suite.True(acc.IsActive)
			suite.True(acc.Balance.IsZero())
		}).
		Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("607", created.Code)
	suite.Equal(domain.Expense, created.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ReceivableOverride() {
	ctx := context.Background()
	// Class 4 defaults to LIABILITY; 411 Clients is a receivable and must be
	// createable as an ASSET through the explicit type override.
	assetType := domain.Asset
	req := dto.CreateAccountRequest{Code: "411", Name: "Clients", AccountType: &assetType}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.Account)
			suite.Equal(domain.Asset, acc.AccountType)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Asset, created.AccountType)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCode() {
	ctx := context.Background()

	for _, code := range []string{"9", "901", "8xx", "5", "abc", ""} {
		suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()

		_, err := suite.service.CreateAccount(ctx, suite.restaurantID, dto.CreateAccountRequest{Code: code, Name: "Bad"}, suite.userID)

		suite.Require().Error(err, "code %q should be rejected", code)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "512", Name: "Banque"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "512")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "512", Name: "Banque"}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateAccount(ctx, suite.restaurantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongRestaurant() {
	ctx := context.Background()
	accountID := uuid.NewString()
	foreign := &domain.Account{
		AccountID:    accountID,
		RestaurantID: uuid.NewString(), // Different restaurant
		Code:         "512",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(foreign, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.restaurantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_FiltersForeignAccounts() {
	ctx := context.Background()
	ownID := uuid.NewString()
	foreignID := uuid.NewString()
	accounts := map[string]domain.Account{
		ownID:     {AccountID: ownID, RestaurantID: suite.restaurantID, Code: "701"},
		foreignID: {AccountID: foreignID, RestaurantID: uuid.NewString(), Code: "701"},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountsByIDs", ctx, []string{ownID, foreignID}).Return(accounts, nil).Once()

	result, err := suite.service.GetAccountsByIDs(ctx, suite.restaurantID, []string{ownID, foreignID}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Contains(result, ownID)
	suite.NotContains(result, foreignID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsIsNoOp() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:    accountID,
		RestaurantID: suite.restaurantID,
		Code:         "512",
		Name:         "Banque",
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.restaurantID, accountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Banque", updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameSuccess() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:    accountID,
		RestaurantID: suite.restaurantID,
		Code:         "512",
		Name:         "Banque",
	}
	newName := "Banque principale"

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(domain.Account)
			suite.Equal(newName, acc.Name)
			suite.Equal(suite.userID, acc.LastUpdatedBy)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.restaurantID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:    accountID,
		RestaurantID: suite.restaurantID,
		Code:         "512",
		Balance:      decimal.NewFromInt(1500),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.restaurantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:    accountID,
		RestaurantID: suite.restaurantID,
		Code:         "627",
		Balance:      decimal.Zero,
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleManager).Return(nil).Once()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.restaurantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepositoryError() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("ListAccounts", ctx, suite.restaurantID, 50, 0).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListAccounts(ctx, suite.restaurantID, suite.userID, 0, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:    accountID,
		RestaurantID: suite.restaurantID,
		Code:         "512",
		Balance:      decimal.NewFromFloat(1234.56),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, suite.restaurantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromFloat(1234.56)))
}

// --- Run Suite ---
func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
