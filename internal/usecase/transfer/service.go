package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/usecase/ledger"
)

// NotePrefix tags the note of both legs of a transfer
const NotePrefix = "Transfer"

// AddTransactionInput represents the raw input for a single posting
type AddTransactionInput struct {
	AccountID  string
	Type       string // DEPOSIT or WITHDRAWAL
	Amount     string // Decimal dollars, e.g. "12.50"
	OccurredAt string // YYYY-MM-DD
	Note       string // Optional
}

// TransferInput represents the raw input for a transfer between two accounts
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        string
	OccurredAt    string
	Note          string // Optional
}

// Result holds both legs of a completed transfer
type Result struct {
	TransferID uuid.UUID
	Withdrawal *domain.Transaction
	Deposit    *domain.Transaction
}

// TransferService posts deposits, withdrawals and transfers
type TransferService struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	TickerRepo      domain.TickerEventRepository
	UnitOfWork      domain.UnitOfWork
	Oracle          domain.PriceOracle
}

// NewTransferService creates a new TransferService instance
func NewTransferService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	tickerRepo domain.TickerEventRepository,
	uow domain.UnitOfWork,
	oracle domain.PriceOracle,
) *TransferService {
	return &TransferService{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		TickerRepo:      tickerRepo,
		UnitOfWork:      uow,
		Oracle:          oracle,
	}
}

// AddTransaction records a single deposit or withdrawal.
// Logic:
//  1. Parse and validate every input field
//  2. Fetch the account
//  3. For MARKET accounts, quote the current ticker and compute the fill
//  4. Validate the transaction against the account and save it
func (s *TransferService) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	// 1. Parse input
	accountID, err := domain.ParseID(input.AccountID, "account")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, domain.Required("transaction type")
	}
	direction, err := domain.ParseDirection(input.Type)
	if err != nil {
		return nil, err
	}
	amountCents, err := money.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	occurredAt, err := domain.ParseDate(input.OccurredAt)
	if err != nil {
		return nil, err
	}

	// 2. Fetch account
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// 3. Market fill
	fill, err := s.fillFor(ctx, account, amountCents)
	if err != nil {
		return nil, err
	}

	// 4. Build, validate, save
	tx := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   account.ID,
		Direction:   direction,
		AmountCents: amountCents,
		OccurredAt:  occurredAt,
		Note:        strings.TrimSpace(input.Note),
		Fill:        fill,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.ValidateFor(account); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Transfer moves cash from one account to another as two linked transactions.
// Logic:
//  1. Parse input and reject identical source and destination
//  2. Fetch both accounts
//  3. Quote both sides concurrently; a MARKET side without a ticker or price fails the whole transfer
//  4. Build a WITHDRAWAL on the source and a DEPOSIT on the destination sharing
//     amount, date, note and transfer ID, each with its own fill
//  5. Save both legs in one unit of work
func (s *TransferService) Transfer(ctx context.Context, input TransferInput) (*Result, error) {
	// 1. Parse input
	fromID, err := domain.ParseID(input.FromAccountID, "source account")
	if err != nil {
		return nil, err
	}
	toID, err := domain.ParseID(input.ToAccountID, "destination account")
	if err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, domain.ErrSameAccount
	}
	amountCents, err := money.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	occurredAt, err := domain.ParseDate(input.OccurredAt)
	if err != nil {
		return nil, err
	}

	// 2. Fetch accounts
	from, err := s.AccountRepo.GetByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.AccountRepo.GetByID(ctx, toID)
	if err != nil {
		return nil, err
	}

	// 3. Quote both sides
	var fromFill, toFill *domain.MarketFill
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fill, err := s.fillFor(gctx, from, amountCents)
		fromFill = fill
		return err
	})
	g.Go(func() error {
		fill, err := s.fillFor(gctx, to, amountCents)
		toFill = fill
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 4. Build legs
	transferID := uuid.New()
	note := transferNote(input.Note)
	now := time.Now().UTC()

	withdrawal := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   from.ID,
		Direction:   domain.DirectionWithdrawal,
		AmountCents: amountCents,
		OccurredAt:  occurredAt,
		Note:        note,
		Fill:        fromFill,
		TransferID:  &transferID,
		CreatedAt:   now,
	}
	deposit := &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   to.ID,
		Direction:   domain.DirectionDeposit,
		AmountCents: amountCents,
		OccurredAt:  occurredAt,
		Note:        note,
		Fill:        toFill,
		TransferID:  &transferID,
		CreatedAt:   now,
	}
	if err := withdrawal.ValidateFor(from); err != nil {
		return nil, err
	}
	if err := deposit.ValidateFor(to); err != nil {
		return nil, err
	}

	// 5. Save atomically
	err = s.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		if err := s.TransactionRepo.Create(ctx, withdrawal); err != nil {
			return fmt.Errorf("failed to record withdrawal leg: %w", err)
		}
		if err := s.TransactionRepo.Create(ctx, deposit); err != nil {
			return fmt.Errorf("failed to record deposit leg: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{TransferID: transferID, Withdrawal: withdrawal, Deposit: deposit}, nil
}

// fillFor returns the market fill for amountCents on account, or nil for
// non-market accounts
func (s *TransferService) fillFor(ctx context.Context, account *domain.Account, amountCents int64) (*domain.MarketFill, error) {
	if !account.Kind.IsMarket() {
		return nil, nil
	}

	event, err := s.TickerRepo.Current(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("account %q: %w", account.Name, domain.ErrMissingTicker)
		}
		return nil, err
	}

	price, err := s.Oracle.FetchPrice(ctx, event.Ticker)
	if err != nil {
		return nil, err
	}
	if !price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%s: %w", event.Ticker, domain.ErrPriceUnavailable)
	}

	return &domain.MarketFill{
		Shares: ledger.SharesFor(amountCents, price),
		Price:  price,
		Ticker: event.Ticker,
	}, nil
}

func transferNote(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return NotePrefix
	}
	return NotePrefix + ": " + note
}
