// Package projection estimates how a recurring weekly deposit grows with
// weekly compounding.
package projection

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
)

const (
	weeksPerYear = 52
	maxYears     = 100

	// intermediate balances keep this many decimal places
	workingPrecision = 12

	minAnnualPercent = -100
	maxAnnualPercent = 1000
)

var (
	hundred     = decimal.NewFromInt(100)
	weeksDivide = decimal.NewFromInt(weeksPerYear)
	maxBalance  = decimal.New(math.MaxInt64, -2)
)

// ErrTooLarge is returned when a projection does not fit in int64 cents.
var ErrTooLarge = fmt.Errorf("%w: projection exceeds the largest representable amount", domain.ErrValidation)

// Input is the raw calculator input
type Input struct {
	WeeklyDeposit       string // Dollars
	AnnualReturnPercent string // e.g. "7" for 7%
	Years               string // Whole years
}

// Projection is the outcome of a growth projection, in cents
type Projection struct {
	Years          int
	Weeks          int
	FinalCents     int64
	DepositedCents int64
	GrowthCents    int64
}

// ProjectGrowth compounds a weekly deposit over a number of years.
// Logic:
//   - weeklyRate = annual / 100 / 52
//   - each week: balance = (balance + deposit) * (1 + weeklyRate)
//   - growth = final balance - total deposits
func ProjectGrowth(input Input) (*Projection, error) {
	depositCents, err := money.ParseAmount(input.WeeklyDeposit)
	if err != nil {
		return nil, err
	}

	rateText := strings.TrimSpace(input.AnnualReturnPercent)
	if rateText == "" {
		return nil, domain.Required("annual return")
	}
	annual, err := money.ParseDecimal(rateText)
	if err != nil {
		return nil, fmt.Errorf("%w: annual return %q is not a number", domain.ErrValidation, input.AnnualReturnPercent)
	}
	if annual.LessThan(decimal.NewFromInt(minAnnualPercent)) || annual.GreaterThan(decimal.NewFromInt(maxAnnualPercent)) {
		return nil, fmt.Errorf("%w: annual return must be between %d and %d percent", domain.ErrValidation, minAnnualPercent, maxAnnualPercent)
	}

	yearsText := strings.TrimSpace(input.Years)
	if yearsText == "" {
		return nil, domain.Required("years")
	}
	years, err := strconv.Atoi(yearsText)
	if err != nil || years <= 0 || years > maxYears {
		return nil, fmt.Errorf("%w: years must be a whole number between 1 and %d", domain.ErrValidation, maxYears)
	}

	return compound(depositCents, annual, years)
}

func compound(depositCents int64, annualPercent decimal.Decimal, years int) (*Projection, error) {
	weeks := years * weeksPerYear
	if depositCents > math.MaxInt64/int64(weeks) {
		return nil, fmt.Errorf("weekly deposit over %d weeks: %w", weeks, ErrTooLarge)
	}
	deposited := depositCents * int64(weeks)

	deposit := money.Dollars(depositCents)
	growthFactor := decimal.NewFromInt(1).Add(annualPercent.Div(hundred).Div(weeksDivide))

	balance := decimal.Zero
	for i := 0; i < weeks; i++ {
		balance = balance.Add(deposit).Mul(growthFactor).Round(workingPrecision)
		if balance.GreaterThan(maxBalance) {
			return nil, fmt.Errorf("balance after week %d: %w", i+1, ErrTooLarge)
		}
	}

	final := money.FromDollars(balance)
	// final and deposited are both non-negative, so the difference fits
	return &Projection{
		Years:          years,
		Weeks:          weeks,
		FinalCents:     final,
		DepositedCents: deposited,
		GrowthCents:    final - deposited,
	}, nil
}
