package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portssvc "github.com/restopilot/resto_books_app/internal/core/ports/services"
	"github.com/restopilot/resto_books_app/internal/core/services"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAuthorizer *MockRestaurantAuthorizer
	service        portssvc.LedgerService
	restaurantID   string
	userID         string
	asOf           time.Time
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockRestaurantAuthorizer)
	suite.service = services.NewLedgerService(suite.mockRepo,
		services.WithLedgerRestaurantAuthorizer(suite.mockAuthorizer))
	suite.restaurantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *LedgerServiceTestSuite) ledgerData() []domain.LedgerAccount {
	return []domain.LedgerAccount{
		{AccountID: uuid.NewString(), Code: "701", Name: "Ventes restaurant", AccountType: domain.Revenue,
			DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(300)},
		{AccountID: uuid.NewString(), Code: "512", Name: "Banque", AccountType: domain.Asset,
			DebitTotal: decimal.NewFromInt(300), CreditTotal: decimal.NewFromInt(100)},
		{AccountID: uuid.NewString(), Code: "627", Name: "Frais bancaires", AccountType: domain.Expense,
			DebitTotal: decimal.Zero, CreditTotal: decimal.Zero},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestGetLedger_DerivesBalancesAndSorts() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("GetLedgerData", ctx, suite.restaurantID, suite.asOf).Return(suite.ledgerData(), nil).Once()

	accounts, err := suite.service.GetLedger(ctx, suite.restaurantID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 3)

	// Sorted by code
	suite.Equal("512", accounts[0].Code)
	suite.Equal("627", accounts[1].Code)
	suite.Equal("701", accounts[2].Code)

	// Normal-side balances: asset debit-credit, revenue credit-debit
	suite.True(accounts[0].Balance.Equal(decimal.NewFromInt(200)))
	suite.True(accounts[2].Balance.Equal(decimal.NewFromInt(300)))

	// Zero-activity account kept with zero balance
	suite.True(accounts[1].Balance.IsZero())
}

func (suite *LedgerServiceTestSuite) TestGetLedger_AuthorizationFail() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.GetLedger(ctx, suite.restaurantID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetLedgerData", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetAccountLedger_Found() {
	ctx := context.Background()
	data := suite.ledgerData()
	target := data[1] // Banque

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("GetLedgerData", ctx, suite.restaurantID, suite.asOf).Return(data, nil).Once()

	account, err := suite.service.GetAccountLedger(ctx, suite.restaurantID, target.AccountID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("512", account.Code)
	suite.True(account.Balance.Equal(decimal.NewFromInt(200)))
}

func (suite *LedgerServiceTestSuite) TestGetAccountLedger_NotFound() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.restaurantID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("GetLedgerData", ctx, suite.restaurantID, suite.asOf).Return(suite.ledgerData(), nil).Once()

	_, err := suite.service.GetAccountLedger(ctx, suite.restaurantID, uuid.NewString(), suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
