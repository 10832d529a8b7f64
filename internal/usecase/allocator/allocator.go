package allocator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// RuleType selects how a split rule takes its share
type RuleType string

const (
	RuleTypeFixed     RuleType = "FIXED"     // A fixed number of cents
	RuleTypePercent   RuleType = "PERCENT"   // A percentage of what is left after FIXED rules
	RuleTypeRemainder RuleType = "REMAINDER" // Whatever is left; exactly one per split
)

var hundred = decimal.NewFromInt(100)

// ParseRuleType parses a rule type, case-insensitively
func ParseRuleType(s string) (RuleType, error) {
	t := RuleType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case RuleTypeFixed, RuleTypePercent, RuleTypeRemainder:
		return t, nil
	}
	return "", fmt.Errorf("split rule type %q: %w", s, domain.ErrInvalidType)
}

// Rule sends part of a deposit to one account
type Rule struct {
	AccountID  uuid.UUID
	Type       RuleType
	FixedCents int64           // FIXED only
	Percent    decimal.Decimal // PERCENT only, 0 < p <= 100
	Priority   int             // Lower = First
}

// Allocation is the share of one account
type Allocation struct {
	AccountID   uuid.UUID
	AmountCents int64
}

// CalculateAllocation calculates the allocation of totalCents across rules.
// Results follow rule priority.
// Logic:
//  1. Sort rules by Priority (Lower = First)
//  2. Deduct FIXED amounts first
//  3. Calculate PERCENT amounts based on the *Remainder* (Total - Fixed), rounded half away from zero
//  4. Assign the final leftover amount to the REMAINDER rule
//
// Every cent of totalCents is allocated exactly once.
func CalculateAllocation(totalCents int64, rules []Rule) ([]Allocation, error) {
	if totalCents <= 0 {
		return nil, fmt.Errorf("total: %w", domain.ErrInvalidAmount)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("at least one rule is needed: %w", domain.ErrInvalidSplit)
	}

	// Create a copy of rules to avoid mutating the caller's slice
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	seen := make(map[uuid.UUID]bool, len(sorted))
	remainders := 0
	for _, r := range sorted {
		if seen[r.AccountID] {
			return nil, fmt.Errorf("account %s appears twice: %w", r.AccountID, domain.ErrInvalidSplit)
		}
		seen[r.AccountID] = true

		switch r.Type {
		case RuleTypeFixed:
			if r.FixedCents <= 0 {
				return nil, fmt.Errorf("fixed share: %w", domain.ErrInvalidAmount)
			}
		case RuleTypePercent:
			if !r.Percent.IsPositive() || r.Percent.GreaterThan(hundred) {
				return nil, fmt.Errorf("percent %s must be above 0 and at most 100: %w", r.Percent, domain.ErrInvalidSplit)
			}
		case RuleTypeRemainder:
			remainders++
		default:
			return nil, fmt.Errorf("split rule type %q: %w", r.Type, domain.ErrInvalidType)
		}
	}
	if remainders != 1 {
		return nil, fmt.Errorf("exactly one REMAINDER rule is needed, got %d: %w", remainders, domain.ErrInvalidSplit)
	}

	amounts := make(map[uuid.UUID]int64, len(sorted))

	// Step 1: Deduct FIXED amounts first
	remaining := totalCents
	for _, r := range sorted {
		if r.Type != RuleTypeFixed {
			continue
		}
		if r.FixedCents > remaining {
			return nil, fmt.Errorf("fixed shares exceed the total: %w", domain.ErrInvalidSplit)
		}
		amounts[r.AccountID] = r.FixedCents
		remaining -= r.FixedCents
	}

	// Step 2: Calculate PERCENT amounts based on the Remainder
	base := decimal.NewFromInt(remaining)
	for _, r := range sorted {
		if r.Type != RuleTypePercent {
			continue
		}
		share := base.Mul(r.Percent).Div(hundred).Round(0).IntPart()
		if share > remaining {
			return nil, fmt.Errorf("percent shares exceed 100%%: %w", domain.ErrInvalidSplit)
		}
		amounts[r.AccountID] = share
		remaining -= share
	}

	// Step 3: Assign the final leftover amount to the REMAINDER rule
	allocations := make([]Allocation, 0, len(sorted))
	var allocated int64
	for _, r := range sorted {
		if r.Type == RuleTypeRemainder {
			amounts[r.AccountID] = remaining
		}
		allocations = append(allocations, Allocation{AccountID: r.AccountID, AmountCents: amounts[r.AccountID]})
		allocated += amounts[r.AccountID]
	}

	// Safety check: no cent lost or invented
	if allocated != totalCents {
		return nil, fmt.Errorf("allocated %d of %d cents: %w", allocated, totalCents, domain.ErrInvalidSplit)
	}

	return allocations, nil
}
