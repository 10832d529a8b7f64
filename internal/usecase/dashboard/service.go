package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/investment"
	"github.com/simaogato/kidbank-backend/internal/usecase/ledger"
)

// maxConcurrentKids bounds the per-kid fan-out of ListAccounts
const maxConcurrentKids = 8

// AccountSummary is one row of the account list
type AccountSummary struct {
	Account      *domain.Account
	BalanceCents int64
	Ticker       string // Current ticker, MARKET accounts only
}

// KidOverview groups a kid's accounts with their combined balance
type KidOverview struct {
	Kid        *domain.Kid
	Accounts   []AccountSummary
	TotalCents int64
}

// AccountDetail is the full view of one account
type AccountDetail struct {
	Account       *domain.Account
	Kid           *domain.Kid
	BalanceCents  int64
	Transactions  []*domain.Transaction    // Newest first
	TickerHistory domain.TickerLog         // Newest first, MARKET accounts only
	Market        *investment.MarketSummary // nil unless MARKET
}

// DashboardService builds the read views
type DashboardService struct {
	KidRepo         domain.KidRepository
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	TickerRepo      domain.TickerEventRepository
	Investments     *investment.InvestmentService
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	kidRepo domain.KidRepository,
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	tickerRepo domain.TickerEventRepository,
	investments *investment.InvestmentService,
) *DashboardService {
	return &DashboardService{
		KidRepo:         kidRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		TickerRepo:      tickerRepo,
		Investments:     investments,
	}
}

// ListAccounts returns every kid ordered by name with their accounts.
// Logic:
//   - Balance: CashBalance over all of the account's transactions
//   - Ticker: current ticker of MARKET accounts, empty when none is set
//   - Total: sum of the kid's account balances
//
// The oracle is never called here.
func (s *DashboardService) ListAccounts(ctx context.Context) ([]KidOverview, error) {
	kids, err := s.KidRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}

	overviews := make([]KidOverview, len(kids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentKids)
	for i, kid := range kids {
		g.Go(func() error {
			overview, err := s.kidOverview(gctx, kid)
			if err != nil {
				return err
			}
			overviews[i] = *overview
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overviews, nil
}

func (s *DashboardService) kidOverview(ctx context.Context, kid *domain.Kid) (*KidOverview, error) {
	accounts, err := s.AccountRepo.ListByKid(ctx, kid.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for kid %s: %w", kid.ID, err)
	}

	overview := &KidOverview{Kid: kid, Accounts: make([]AccountSummary, 0, len(accounts))}
	for _, account := range accounts {
		txs, err := s.TransactionRepo.ListByAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions for account %s: %w", account.ID, err)
		}

		summary := AccountSummary{Account: account, BalanceCents: ledger.CashBalance(txs)}
		if account.Kind.IsMarket() {
			ticker, err := s.currentTicker(ctx, account.ID)
			if err != nil {
				return nil, err
			}
			summary.Ticker = ticker
		}

		overview.Accounts = append(overview.Accounts, summary)
		overview.TotalCents += summary.BalanceCents
	}

	return overview, nil
}

func (s *DashboardService) currentTicker(ctx context.Context, accountID uuid.UUID) (string, error) {
	event, err := s.TickerRepo.Current(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get current ticker for account %s: %w", accountID, err)
	}
	return event.Ticker, nil
}

// GetAccountDetail returns the history and, for MARKET accounts, the market
// summary of one account. A price outage degrades the summary instead of
// failing the view.
func (s *DashboardService) GetAccountDetail(ctx context.Context, accountID string) (*AccountDetail, error) {
	id, err := domain.ParseID(accountID, "account")
	if err != nil {
		return nil, err
	}

	account, err := s.AccountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kid, err := s.KidRepo.GetByID(ctx, account.KidID)
	if err != nil {
		return nil, err
	}
	txs, err := s.TransactionRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	detail := &AccountDetail{
		Account:      account,
		Kid:          kid,
		BalanceCents: ledger.CashBalance(txs),
		Transactions: ledger.SortForDisplay(txs),
	}

	if !account.Kind.IsMarket() {
		return detail, nil
	}

	log, err := s.TickerRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticker history: %w", err)
	}
	detail.TickerHistory = log.Sorted()

	market, err := s.Investments.Summarize(ctx, account, txs)
	if err != nil {
		return nil, err
	}
	detail.Market = market

	return detail, nil
}
