package investment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/ledger"
)

// MarketSummary is the valuation block of a market account.
// Valuation is nil when the account has no ticker or the price could not be fetched.
type MarketSummary struct {
	Ticker     string // Empty when no ticker has been set
	Position   ledger.Position
	Valuation  *ledger.Valuation
	PriceError error // Set when the oracle failed; the read still succeeds
}

// InvestmentService handles market ticker changes and market valuations
type InvestmentService struct {
	AccountRepo domain.AccountRepository
	TickerRepo  domain.TickerEventRepository
	Oracle      domain.PriceOracle
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(accountRepo domain.AccountRepository, tickerRepo domain.TickerEventRepository, oracle domain.PriceOracle) *InvestmentService {
	return &InvestmentService{
		AccountRepo: accountRepo,
		TickerRepo:  tickerRepo,
		Oracle:      oracle,
	}
}

// SetMarketTicker records which ticker a market account follows from effectiveDate on.
// Logic: Append a new event to the ticker log (earlier events are never changed).
// Past transactions keep the fills they were written with.
func (s *InvestmentService) SetMarketTicker(ctx context.Context, accountID, ticker, effectiveDate string) (*domain.TickerEvent, error) {
	id, err := domain.ParseID(accountID, "account")
	if err != nil {
		return nil, err
	}
	symbol := domain.NormalizeTicker(ticker)
	if symbol == "" {
		return nil, domain.Required("ticker")
	}
	if strings.TrimSpace(effectiveDate) == "" {
		return nil, domain.Required("effective date")
	}
	date, err := domain.ParseDate(effectiveDate)
	if err != nil {
		return nil, err
	}

	// Verify account exists and is a market account
	account, err := s.AccountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.Kind.IsMarket() {
		return nil, domain.ErrNotMarketAccount
	}

	event := &domain.TickerEvent{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Ticker:        symbol,
		EffectiveDate: date,
		CreatedAt:     time.Now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.TickerRepo.Add(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Summarize reconstructs the position of a market account and marks it to the
// current price of its ticker.
// Logic:
//   - No ticker: position only, valuation skipped
//   - Price unavailable: position only, PriceError set (does NOT fail the read)
//   - Otherwise: position and valuation
func (s *InvestmentService) Summarize(ctx context.Context, account *domain.Account, txs []*domain.Transaction) (*MarketSummary, error) {
	if !account.Kind.IsMarket() {
		return nil, domain.ErrNotMarketAccount
	}

	summary := &MarketSummary{Position: ledger.ReconstructPosition(txs)}

	event, err := s.TickerRepo.Current(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return summary, nil
		}
		return nil, err
	}
	summary.Ticker = event.Ticker

	price, err := s.Oracle.FetchPrice(ctx, event.Ticker)
	if err != nil {
		summary.PriceError = err
		return summary, nil
	}

	valuation := ledger.MarkToMarket(summary.Position, price)
	summary.Valuation = &valuation
	return summary, nil
}
