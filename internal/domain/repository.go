package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KidRepository defines the interface for kid persistence operations
type KidRepository interface {
	// Create creates a new kid
	Create(ctx context.Context, kid *Kid) error

	// GetByID retrieves a kid by its ID
	// Returns an error wrapping ErrNotFound if the kid does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Kid, error)

	// List retrieves all kids ordered by name
	List(ctx context.Context) ([]*Kid, error)
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by its ID
	// Returns an error wrapping ErrNotFound if the account does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ListByKid retrieves the accounts of a kid in creation order
	ListByKid(ctx context.Context, kidID uuid.UUID) ([]*Account, error)
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// ListByAccount retrieves every transaction of an account
	// Order is unspecified; callers sort for display
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)
}

// TickerEventRepository defines the interface for the market ticker event log
type TickerEventRepository interface {
	// Add appends a ticker event to the account's log
	Add(ctx context.Context, event *TickerEvent) error

	// ListByAccount retrieves the full ticker log of an account
	ListByAccount(ctx context.Context, accountID uuid.UUID) (TickerLog, error)

	// Current retrieves the event with the latest effective date
	// Returns an error wrapping ErrNotFound if the account has no ticker yet
	Current(ctx context.Context, accountID uuid.UUID) (*TickerEvent, error)
}

// UnitOfWork runs a function inside a single store transaction.
// Every repository write made with the context passed to fn is committed
// together when fn returns nil, and discarded when fn returns an error or panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// PriceOracle returns the current market price of a ticker.
// Failures wrap ErrPriceUnavailable.
type PriceOracle interface {
	FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}
