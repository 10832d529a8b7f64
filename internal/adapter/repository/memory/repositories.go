package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// kidRepository implements domain.KidRepository
type kidRepository struct {
	store *Store
}

// NewKidRepository creates a new kid repository
func NewKidRepository(store *Store) domain.KidRepository {
	return &kidRepository{store: store}
}

func (r *kidRepository) Create(ctx context.Context, kid *domain.Kid) error {
	k := *kid
	r.store.write(ctx, func() { r.store.kids[k.ID] = k })
	return nil
}

func (r *kidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Kid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	kid, ok := r.store.kids[id]
	if !ok {
		return nil, fmt.Errorf("kid %s: %w", id, domain.ErrNotFound)
	}
	return &kid, nil
}

func (r *kidRepository) List(ctx context.Context) ([]*domain.Kid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	kids := make([]*domain.Kid, 0, len(r.store.kids))
	for _, kid := range r.store.kids {
		k := kid
		kids = append(kids, &k)
	}
	sort.Slice(kids, func(i, j int) bool {
		if kids[i].Name != kids[j].Name {
			return kids[i].Name < kids[j].Name
		}
		return kids[i].CreatedAt.Before(kids[j].CreatedAt)
	})
	return kids, nil
}

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	store *Store
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(store *Store) domain.AccountRepository {
	return &accountRepository{store: store}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.RLock()
	_, ok := r.store.kids[account.KidID]
	r.store.mu.RUnlock()
	if !ok {
		return fmt.Errorf("kid %s: %w", account.KidID, domain.ErrNotFound)
	}

	a := *account
	r.store.write(ctx, func() { r.store.accounts[a.ID] = a })
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return &account, nil
}

func (r *accountRepository) ListByKid(ctx context.Context, kidID uuid.UUID) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*domain.Account, 0)
	for _, account := range r.store.accounts {
		if account.KidID == kidID {
			a := account
			accounts = append(accounts, &a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(store *Store) domain.TransactionRepository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if !r.store.accountExists(tx.AccountID) {
		return fmt.Errorf("account %s: %w", tx.AccountID, domain.ErrNotFound)
	}

	t := *tx
	if tx.Fill != nil {
		fill := *tx.Fill
		t.Fill = &fill
	}
	r.store.write(ctx, func() {
		r.store.transactions[t.AccountID] = append(r.store.transactions[t.AccountID], t)
	})
	return nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored := r.store.transactions[accountID]
	txs := make([]*domain.Transaction, 0, len(stored))
	for _, t := range stored {
		tx := t
		if t.Fill != nil {
			fill := *t.Fill
			tx.Fill = &fill
		}
		txs = append(txs, &tx)
	}
	return txs, nil
}

// tickerEventRepository implements domain.TickerEventRepository
type tickerEventRepository struct {
	store *Store
}

// NewTickerEventRepository creates a new ticker event repository
func NewTickerEventRepository(store *Store) domain.TickerEventRepository {
	return &tickerEventRepository{store: store}
}

func (r *tickerEventRepository) Add(ctx context.Context, event *domain.TickerEvent) error {
	if !r.store.accountExists(event.AccountID) {
		return fmt.Errorf("account %s: %w", event.AccountID, domain.ErrNotFound)
	}

	e := *event
	r.store.write(ctx, func() {
		r.store.tickers[e.AccountID] = append(r.store.tickers[e.AccountID], e)
	})
	return nil
}

func (r *tickerEventRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) (domain.TickerLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored := r.store.tickers[accountID]
	log := make(domain.TickerLog, 0, len(stored))
	for _, e := range stored {
		event := e
		log = append(log, &event)
	}
	return log, nil
}

func (r *tickerEventRepository) Current(ctx context.Context, accountID uuid.UUID) (*domain.TickerEvent, error) {
	log, err := r.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	current, ok := log.Current()
	if !ok {
		return nil, fmt.Errorf("no ticker for account %s: %w", accountID, domain.ErrNotFound)
	}
	return current, nil
}
