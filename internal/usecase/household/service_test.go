package household

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// MockKidRepository is a mock implementation of KidRepository for testing
type MockKidRepository struct {
	mock.Mock
}

func (m *MockKidRepository) Create(ctx context.Context, kid *domain.Kid) error {
	args := m.Called(ctx, kid)
	return args.Error(0)
}

func (m *MockKidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Kid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kid), args.Error(1)
}

func (m *MockKidRepository) List(ctx context.Context) ([]*domain.Kid, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Kid), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByKid(ctx context.Context, kidID uuid.UUID) ([]*domain.Account, error) {
	args := m.Called(ctx, kidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func TestCreateKid(t *testing.T) {
	ctx := context.Background()
	kidRepo := new(MockKidRepository)
	service := NewHouseholdService(kidRepo, new(MockAccountRepository))

	kidRepo.On("Create", ctx, mock.MatchedBy(func(k *domain.Kid) bool {
		return k.Name == "Avery"
	})).Return(nil)

	kid, err := service.CreateKid(ctx, "  Avery ")

	require.NoError(t, err)
	assert.Equal(t, "Avery", kid.Name)
	assert.NotEqual(t, uuid.Nil, kid.ID)
	kidRepo.AssertExpectations(t)
}

func TestCreateKid_BlankName(t *testing.T) {
	kidRepo := new(MockKidRepository)
	service := NewHouseholdService(kidRepo, new(MockAccountRepository))

	_, err := service.CreateKid(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrRequired)
	kidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAccount(t *testing.T) {
	kidID := uuid.New()
	kid := &domain.Kid{ID: kidID, Name: "Avery"}

	tests := []struct {
		name        string
		kidID       string
		accountName string
		accountType string
		setupMock   func(*MockKidRepository, *MockAccountRepository)
		wantErr     error
		wantKind    domain.AccountKind
	}{
		{
			name:        "market account",
			kidID:       kidID.String(),
			accountName: "College fund",
			accountType: "MARKET",
			setupMock: func(k *MockKidRepository, a *MockAccountRepository) {
				k.On("GetByID", mock.Anything, kidID).Return(kid, nil)
				a.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)
			},
			wantKind: domain.AccountKindMarket,
		},
		{
			name:        "lowercase type is rejected",
			kidID:       kidID.String(),
			accountName: "Savings",
			accountType: "savings",
			setupMock:   func(k *MockKidRepository, a *MockAccountRepository) {},
			wantErr:     domain.ErrInvalidType,
		},
		{
			name:        "unknown type",
			kidID:       kidID.String(),
			accountName: "Crypto",
			accountType: "CRYPTO",
			setupMock:   func(k *MockKidRepository, a *MockAccountRepository) {},
			wantErr:     domain.ErrInvalidType,
		},
		{
			name:        "missing name",
			kidID:       kidID.String(),
			accountName: " ",
			accountType: "CHECKING",
			setupMock:   func(k *MockKidRepository, a *MockAccountRepository) {},
			wantErr:     domain.ErrRequired,
		},
		{
			name:        "missing type",
			kidID:       kidID.String(),
			accountName: "Spending",
			setupMock:   func(k *MockKidRepository, a *MockAccountRepository) {},
			wantErr:     domain.ErrRequired,
		},
		{
			name:        "missing kid",
			accountName: "Spending",
			accountType: "CHECKING",
			setupMock:   func(k *MockKidRepository, a *MockAccountRepository) {},
			wantErr:     domain.ErrRequired,
		},
		{
			name:        "unknown kid",
			kidID:       kidID.String(),
			accountName: "Spending",
			accountType: "CHECKING",
			setupMock: func(k *MockKidRepository, a *MockAccountRepository) {
				k.On("GetByID", mock.Anything, kidID).Return(nil, fmt.Errorf("kid: %w", domain.ErrNotFound))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kidRepo := new(MockKidRepository)
			accountRepo := new(MockAccountRepository)
			tt.setupMock(kidRepo, accountRepo)
			service := NewHouseholdService(kidRepo, accountRepo)

			account, err := service.CreateAccount(context.Background(), tt.kidID, tt.accountName, tt.accountType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
				accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, account.Kind)
			assert.Equal(t, kidID, account.KidID)
			accountRepo.AssertExpectations(t)
		})
	}
}
