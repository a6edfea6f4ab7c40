package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/instituteapps/coa_backend/internal/core/services"
	"github.com/instituteapps/coa_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	MockAccountReader
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func kindPtr(k domain.AccountKind) *domain.AccountKind { return &k }
func strPtr(s string) *string                          { return &s }

func (suite *AccountServiceTestSuite) TestCreateAccount_Root() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name: "Assets",
		Kind: kindPtr(domain.Asset),
	}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("1", created.Code)
	suite.Equal(domain.Asset, created.Kind)
	suite.Empty(created.ParentAccountID)
	suite.Equal("user-1", created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RootWithoutKindRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Assets"}

	_, err := suite.service.CreateAccount(ctx, req, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildInheritsParentKind() {
	ctx := context.Background()
	parent := domain.Account{AccountID: "p1", Code: "1", Kind: domain.Asset}
	req := dto.CreateAccountRequest{
		Name:            "Bank",
		ParentAccountID: strPtr("p1"),
	}

	suite.mockRepo.On("FindAccountByID", ctx, "p1").Return(&parent, nil).Once()
	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{parent}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.Asset, created.Kind)
	suite.Equal("11", created.Code)
	suite.Equal("p1", created.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:            "Bank",
		ParentAccountID: strPtr("missing"),
	}

	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, req, "user-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesOnCodeConflict() {
	ctx := context.Background()
	parent := domain.Account{AccountID: "p1", Code: "1", Kind: domain.Asset}
	req := dto.CreateAccountRequest{
		Name:            "Bank",
		ParentAccountID: strPtr("p1"),
	}

	suite.mockRepo.On("FindAccountByID", ctx, "p1").Return(&parent, nil).Once()

	// First attempt: sibling set empty, code "11" collides with a concurrent
	// writer. Second attempt re-fetches, sees the winner, allocates "12".
	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{parent}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "11"
	})).Return(apperrors.ErrDuplicate).Once()

	winner := domain.Account{AccountID: "other", Code: "11", ParentAccountID: "p1", Kind: domain.Asset}
	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{parent, winner}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "12"
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("12", created.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ConflictRetriesExhausted() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Assets", Kind: kindPtr(domain.Asset)}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{}, nil).Times(3)
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Times(3)

	_, err := suite.service.CreateAccount(ctx, req, "user-1")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnderVirtualParentRejected() {
	ctx := context.Background()
	parent := domain.Account{AccountID: "v1", Code: "S0001", Kind: domain.Asset, IsVirtual: true}
	req := dto.CreateAccountRequest{
		Name:            "Sub",
		ParentAccountID: strPtr("v1"),
	}

	suite.mockRepo.On("FindAccountByID", ctx, "v1").Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveErrorPropagates() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Assets", Kind: kindPtr(domain.Asset)}

	expectedErr := assert.AnError
	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	_, err := suite.service.CreateAccount(ctx, req, "user-1")
	suite.ErrorIs(err, expectedErr)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PatchesFields() {
	ctx := context.Background()
	existing := domain.Account{AccountID: "a1", Code: "11", Name: "Old", Kind: domain.Asset}

	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "New" && a.Code == "11"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "a1", dto.UpdateAccountRequest{Name: strPtr("New")}, "user-2")

	suite.Require().NoError(err)
	suite.Equal("New", updated.Name)
	suite.Equal("user-2", updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedWithChildren() {
	ctx := context.Background()
	existing := domain.Account{AccountID: "a1", Code: "1", Kind: domain.Asset}

	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&existing, nil).Once()
	suite.mockRepo.On("ListChildAccounts", ctx, "a1").Return([]domain.Account{
		{AccountID: "c1", Code: "11", ParentAccountID: "a1"},
	}, nil).Once()

	err := suite.service.DeleteAccount(ctx, "a1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_LeafSucceeds() {
	ctx := context.Background()
	existing := domain.Account{AccountID: "a1", Code: "11", Kind: domain.Asset, IsLeaf: true}

	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&existing, nil).Once()
	suite.mockRepo.On("ListChildAccounts", ctx, "a1").Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, "a1").Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "a1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountPath() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "r1", Code: "1", Kind: domain.Asset},
		{AccountID: "c1", Code: "11", ParentAccountID: "r1", Kind: domain.Asset},
	}
	suite.mockRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	path, err := suite.service.GetAccountPath(ctx, "c1")

	suite.Require().NoError(err)
	suite.Equal([]string{"1", "11"}, path)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
