package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountKind represents the kind of account a kid holds
type AccountKind string

const (
	AccountKindChecking AccountKind = "CHECKING"
	AccountKindSavings  AccountKind = "SAVINGS"
	AccountKindMarket   AccountKind = "MARKET"
)

// AccountKinds lists every kind in display order
var AccountKinds = []AccountKind{AccountKindChecking, AccountKindSavings, AccountKindMarket}

// ParseAccountKind converts raw input into an AccountKind.
// Input is matched exactly, as submitted by the account form.
func ParseAccountKind(s string) (AccountKind, error) {
	kind := AccountKind(strings.TrimSpace(s))
	if !kind.Valid() {
		return "", fmt.Errorf("account type %q: %w", s, ErrInvalidType)
	}
	return kind, nil
}

// Valid reports whether k is one of the known kinds
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindMarket:
		return true
	default:
		return false
	}
}

// IsMarket reports whether the account holds a brokerage position
func (k AccountKind) IsMarket() bool {
	return k == AccountKindMarket
}

// Label returns the human readable name of the kind
func (k AccountKind) Label() string {
	switch k {
	case AccountKindChecking:
		return "Checking"
	case AccountKindSavings:
		return "Savings"
	case AccountKindMarket:
		return "Market"
	default:
		return string(k)
	}
}

// Account represents a kid's checking, savings or market account
type Account struct {
	ID        uuid.UUID
	KidID     uuid.UUID
	Name      string
	Kind      AccountKind // Immutable after creation
	CreatedAt time.Time
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.KidID == uuid.Nil {
		return Required("kid")
	}
	if strings.TrimSpace(a.Name) == "" {
		return Required("account name")
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("account type %q: %w", a.Kind, ErrInvalidType)
	}
	return nil
}
