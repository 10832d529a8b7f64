package household

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// HouseholdService manages kids and their accounts
type HouseholdService struct {
	KidRepo     domain.KidRepository
	AccountRepo domain.AccountRepository
}

// NewHouseholdService creates a new HouseholdService instance
func NewHouseholdService(kidRepo domain.KidRepository, accountRepo domain.AccountRepository) *HouseholdService {
	return &HouseholdService{
		KidRepo:     kidRepo,
		AccountRepo: accountRepo,
	}
}

// CreateKid registers a new kid
func (s *HouseholdService) CreateKid(ctx context.Context, name string) (*domain.Kid, error) {
	kid, err := domain.NewKid(name)
	if err != nil {
		return nil, err
	}

	if err := s.KidRepo.Create(ctx, kid); err != nil {
		return nil, err
	}

	return kid, nil
}

// CreateAccount opens an account for a kid.
// Logic:
//  1. Validate kid ID, name and account type
//  2. Verify the kid exists
//  3. Save the account
func (s *HouseholdService) CreateAccount(ctx context.Context, kidID, name, accountType string) (*domain.Account, error) {
	// 1. Validate input
	id, err := domain.ParseID(kidID, "kid")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Required("account name")
	}
	if strings.TrimSpace(accountType) == "" {
		return nil, domain.Required("account type")
	}
	kind, err := domain.ParseAccountKind(accountType)
	if err != nil {
		return nil, err
	}

	// 2. Verify kid exists
	if _, err := s.KidRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	// 3. Save
	account := &domain.Account{
		ID:        uuid.New(),
		KidID:     id,
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}
