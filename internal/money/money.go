// Package money converts between user-entered dollar amounts, integer cents
// and display strings.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// Currency is the only currency the ledger supports.
const Currency = gomoney.USD

// MaxExponent bounds the power of ten accepted in user-entered numbers.
// Rescaling a decimal costs time linear in its exponent.
const MaxExponent = 20

var (
	maxCents   = decimal.NewFromInt(math.MaxInt64)
	maxDollars = maxCents.Shift(-2)

	// ErrOutOfRange is returned by ParseDecimal for exponents beyond MaxExponent.
	ErrOutOfRange = errors.New("number out of range")
)

// ParseDecimal parses a decimal number, plain or in exponent notation,
// whose exponent lies within [-MaxExponent, MaxExponent].
func ParseDecimal(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, err
	}
	if exp := d.Exponent(); exp < -MaxExponent || exp > MaxExponent {
		return decimal.Zero, fmt.Errorf("%q: %w", input, ErrOutOfRange)
	}
	return d, nil
}

// ParseAmount parses a positive decimal dollar amount into cents.
// Half cents round away from zero; the arithmetic is exact so "10.005" is 1001.
// Every failure, a blank input included, wraps domain.ErrInvalidAmount.
func ParseAmount(input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, fmt.Errorf("amount is required: %w", domain.ErrInvalidAmount)
	}

	d, err := ParseDecimal(input)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", input, domain.ErrInvalidAmount)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%q: %w", input, domain.ErrInvalidAmount)
	}
	if d.GreaterThan(maxDollars) {
		return 0, fmt.Errorf("%q is too large: %w", input, domain.ErrInvalidAmount)
	}

	cents := d.Shift(2).Round(0)
	if !cents.IsPositive() {
		// below half a cent
		return 0, fmt.Errorf("%q rounds to zero: %w", input, domain.ErrInvalidAmount)
	}
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%q is too large: %w", input, domain.ErrInvalidAmount)
	}
	return cents.IntPart(), nil
}

// FormatAmount renders signed cents as a currency string, e.g. "$1,234.56" or "-$1.50".
func FormatAmount(cents int64) string {
	return gomoney.New(cents, Currency).Display()
}

// FormatNumeric renders cents as a plain decimal string, e.g. "1234.56".
// ParseAmount(FormatNumeric(c)) == c for every c >= 1.
func FormatNumeric(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Dollars returns cents as an exact decimal dollar amount.
func Dollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FromDollars rounds a decimal dollar amount to the nearest cent, ties away from zero.
func FromDollars(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}
