package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error produced by the domain and use-case layers
// wraps exactly one of these so transports can map them without string matching.
var (
	ErrValidation = errors.New("validation error")
	ErrDomain     = errors.New("domain error")
	ErrOracle     = errors.New("oracle error")
	ErrNotFound   = errors.New("not found")
)

// Validation errors: missing or malformed input, rejected before any write.
var (
	ErrRequired      = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a number greater than 0", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrInvalidID     = fmt.Errorf("%w: malformed identifier", ErrValidation)
)

// Domain errors: well-formed input that breaks a business rule.
var (
	ErrInvalidType      = fmt.Errorf("%w: invalid type", ErrDomain)
	ErrSameAccount      = fmt.Errorf("%w: source and destination accounts must differ", ErrDomain)
	ErrNotMarketAccount = fmt.Errorf("%w: ticker updates are only allowed for market accounts", ErrDomain)
	ErrMissingTicker    = fmt.Errorf("%w: market account has no ticker", ErrDomain)
	ErrInvalidSplit     = fmt.Errorf("%w: invalid split", ErrDomain)
)

// ErrInvariant marks states the use cases never build, such as a market fill
// on a checking transaction. Transports report it as an internal failure.
var ErrInvariant = errors.New("invariant violated")

// ErrPriceUnavailable is returned by price oracles when no usable quote exists.
var ErrPriceUnavailable = fmt.Errorf("%w: price unavailable", ErrOracle)

// Required returns ErrRequired annotated with the field label.
func Required(label string) error {
	return fmt.Errorf("%s is required: %w", label, ErrRequired)
}
