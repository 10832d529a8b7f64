package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction represents whether cash enters or leaves an account
type Direction string

const (
	DirectionDeposit    Direction = "DEPOSIT"
	DirectionWithdrawal Direction = "WITHDRAWAL"
)

// ParseDirection converts raw input into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.TrimSpace(s))
	switch d {
	case DirectionDeposit, DirectionWithdrawal:
		return d, nil
	default:
		return "", fmt.Errorf("transaction type %q: %w", s, ErrInvalidType)
	}
}

// Sign returns +1 for deposits and -1 for withdrawals
func (d Direction) Sign() int64 {
	switch d {
	case DirectionDeposit:
		return 1
	case DirectionWithdrawal:
		return -1
	default:
		return 0
	}
}

// Label returns the human readable name of the direction
func (d Direction) Label() string {
	switch d {
	case DirectionDeposit:
		return "Deposit"
	case DirectionWithdrawal:
		return "Withdrawal"
	default:
		return string(d)
	}
}

// MarketFill holds the share quantity bought or sold by a market transaction.
// It is only ever attached to transactions of MARKET accounts.
type MarketFill struct {
	Shares decimal.Decimal // Fractional, always positive
	Price  decimal.Decimal // Price per share at the time of the transaction
	Ticker string          // Ticker that was current when the fill was computed
}

// Transaction represents a single cash movement on one account
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Direction   Direction
	AmountCents int64     // ABSOLUTE VALUE (Always Positive)
	OccurredAt  time.Time // Calendar date, may be backdated
	Note        string
	Fill        *MarketFill // NULL unless the account is MARKET
	TransferID  *uuid.UUID  // Shared by both legs of a transfer
	CreatedAt   time.Time
}

// SignedAmount returns the amount with the sign of its direction
func (t *Transaction) SignedAmount() int64 {
	return t.Direction.Sign() * t.AmountCents
}

// SignedShares returns the fill shares with the sign of the direction,
// or zero when the transaction has no fill
func (t *Transaction) SignedShares() decimal.Decimal {
	if t.Fill == nil {
		return decimal.Zero
	}
	if t.Direction == DirectionWithdrawal {
		return t.Fill.Shares.Neg()
	}
	return t.Fill.Shares
}

// IsTransfer reports whether the transaction is one leg of a transfer
func (t *Transaction) IsTransfer() bool {
	return t.TransferID != nil
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return Required("account")
	}
	if t.Direction.Sign() == 0 {
		return fmt.Errorf("transaction type %q: %w", t.Direction, ErrInvalidType)
	}
	if t.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if t.OccurredAt.IsZero() {
		return Required("date")
	}
	if t.Fill != nil {
		if !t.Fill.Shares.IsPositive() {
			return fmt.Errorf("%w: market fill shares must be positive", ErrInvariant)
		}
		if !t.Fill.Price.IsPositive() {
			return fmt.Errorf("%w: market fill price must be positive", ErrInvariant)
		}
	}
	return nil
}

// ValidateFor checks the transaction against the account that owns it.
// Fill fields must be present if and only if the account is MARKET.
func (t *Transaction) ValidateFor(account *Account) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.AccountID != account.ID {
		return fmt.Errorf("%w: transaction does not belong to account", ErrInvariant)
	}
	if account.Kind.IsMarket() && t.Fill == nil {
		return fmt.Errorf("%w: market account transaction must carry a market fill", ErrInvariant)
	}
	if !account.Kind.IsMarket() && t.Fill != nil {
		return fmt.Errorf("%w: only market account transactions may carry a market fill", ErrInvariant)
	}
	return nil
}
