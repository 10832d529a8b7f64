package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// Fixed UUIDs for the demo household so seeding is idempotent
var (
	DemoKidID      = uuid.MustParse("00000000-0000-0000-0000-00000000d001")
	DemoCheckingID = uuid.MustParse("00000000-0000-0000-0000-00000000d002")
	DemoSavingsID  = uuid.MustParse("00000000-0000-0000-0000-00000000d003")
	DemoMarketID   = uuid.MustParse("00000000-0000-0000-0000-00000000d004")
)

const (
	DemoKidName = "Demo Kid"
	DemoTicker  = "VOO"
)

// demoAccount defines an account to be seeded
type demoAccount struct {
	ID   uuid.UUID
	Name string
	Kind domain.AccountKind
}

// DemoSeeder creates a sample kid with one account of every kind
type DemoSeeder struct {
	KidRepo     domain.KidRepository
	AccountRepo domain.AccountRepository
	TickerRepo  domain.TickerEventRepository
	now         func() time.Time
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(kidRepo domain.KidRepository, accountRepo domain.AccountRepository, tickerRepo domain.TickerEventRepository) *DemoSeeder {
	return &DemoSeeder{
		KidRepo:     kidRepo,
		AccountRepo: accountRepo,
		TickerRepo:  tickerRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Seed ensures the demo kid and its accounts exist.
// Logic:
//  1. Create the kid if missing
//  2. Create each account if missing
//  3. Give the market account a ticker if it has none
//
// Existing records are left untouched.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	now := s.now()

	if _, err := s.KidRepo.GetByID(ctx, DemoKidID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to look up demo kid: %w", err)
		}
		kid := &domain.Kid{ID: DemoKidID, Name: DemoKidName, CreatedAt: now}
		if err := kid.Validate(); err != nil {
			return err
		}
		if err := s.KidRepo.Create(ctx, kid); err != nil {
			return fmt.Errorf("failed to create demo kid: %w", err)
		}
	}

	accounts := []demoAccount{
		{ID: DemoCheckingID, Name: "Allowance", Kind: domain.AccountKindChecking},
		{ID: DemoSavingsID, Name: "Savings Jar", Kind: domain.AccountKindSavings},
		{ID: DemoMarketID, Name: "Index Fund", Kind: domain.AccountKindMarket},
	}
	for _, a := range accounts {
		_, err := s.AccountRepo.GetByID(ctx, a.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to look up demo account %s: %w", a.Name, err)
		}

		account := &domain.Account{ID: a.ID, KidID: DemoKidID, Name: a.Name, Kind: a.Kind, CreatedAt: now}
		if err := account.Validate(); err != nil {
			return err
		}
		if err := s.AccountRepo.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create demo account %s: %w", a.Name, err)
		}
	}

	_, err := s.TickerRepo.Current(ctx, DemoMarketID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to look up demo ticker: %w", err)
	}
	event := &domain.TickerEvent{
		ID:            uuid.New(),
		AccountID:     DemoMarketID,
		Ticker:        DemoTicker,
		EffectiveDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:     now,
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if err := s.TickerRepo.Add(ctx, event); err != nil {
		return fmt.Errorf("failed to set demo ticker: %w", err)
	}
	return nil
}
