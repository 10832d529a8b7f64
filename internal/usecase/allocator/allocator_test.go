package allocator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

func amountsOf(allocations []Allocation) map[uuid.UUID]int64 {
	amounts := make(map[uuid.UUID]int64, len(allocations))
	for _, a := range allocations {
		amounts[a.AccountID] = a.AmountCents
	}
	return amounts
}

func sumOf(allocations []Allocation) int64 {
	var total int64
	for _, a := range allocations {
		total += a.AmountCents
	}
	return total
}

func TestCalculateAllocation_AllowanceScenario(t *testing.T) {
	// Input: $1000.00
	// Rule: $50 Fixed (Spending)
	// Rule: 10% of Remainder (Giving)
	// Rule: Remainder (Savings)
	// Expected: Spending=$50, Giving=$95, Savings=$855
	spendingID := uuid.New()
	givingID := uuid.New()
	savingsID := uuid.New()

	rules := []Rule{
		{AccountID: spendingID, Type: RuleTypeFixed, FixedCents: 5000, Priority: 1},
		{AccountID: givingID, Type: RuleTypePercent, Percent: decimal.NewFromInt(10), Priority: 2},
		{AccountID: savingsID, Type: RuleTypeRemainder, Priority: 3},
	}

	allocations, err := CalculateAllocation(100000, rules)

	require.NoError(t, err)
	require.Len(t, allocations, 3)
	amounts := amountsOf(allocations)
	assert.Equal(t, int64(5000), amounts[spendingID])
	assert.Equal(t, int64(9500), amounts[givingID], "10% of $950")
	assert.Equal(t, int64(85500), amounts[savingsID])
	assert.Equal(t, int64(100000), sumOf(allocations))
}

func TestCalculateAllocation_Shapes(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		total    int64
		rules    []Rule
		expected map[uuid.UUID]int64
	}{
		{
			name:  "Only Fixed",
			total: 50000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypeFixed, FixedCents: 10000, Priority: 1},
				{AccountID: b, Type: RuleTypeFixed, FixedCents: 20000, Priority: 2},
				{AccountID: c, Type: RuleTypeRemainder, Priority: 3},
			},
			expected: map[uuid.UUID]int64{a: 10000, b: 20000, c: 20000},
		},
		{
			name:  "Only Percent",
			total: 100000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.NewFromInt(30), Priority: 1},
				{AccountID: b, Type: RuleTypePercent, Percent: decimal.NewFromInt(40), Priority: 2},
				{AccountID: c, Type: RuleTypeRemainder, Priority: 3},
			},
			expected: map[uuid.UUID]int64{a: 30000, b: 40000, c: 30000},
		},
		{
			name:  "Fixed Before Percent Regardless Of Order",
			total: 100000,
			rules: []Rule{
				{AccountID: b, Type: RuleTypeFixed, FixedCents: 10000, Priority: 2},
				{AccountID: a, Type: RuleTypeFixed, FixedCents: 5000, Priority: 1},
				{AccountID: c, Type: RuleTypePercent, Percent: decimal.NewFromInt(20), Priority: 3},
				{AccountID: d, Type: RuleTypeRemainder, Priority: 4},
			},
			// 20% of 850.00 = 170.00
			expected: map[uuid.UUID]int64{a: 5000, b: 10000, c: 17000, d: 68000},
		},
		{
			name:  "Percent Rounds To Cents",
			total: 1000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.RequireFromString("33.33"), Priority: 1},
				{AccountID: b, Type: RuleTypePercent, Percent: decimal.RequireFromString("33.33"), Priority: 2},
				{AccountID: c, Type: RuleTypeRemainder, Priority: 3},
			},
			expected: map[uuid.UUID]int64{a: 333, b: 333, c: 334},
		},
		{
			name:  "Half Cent Rounds Away From Zero",
			total: 5,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.NewFromInt(50), Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expected: map[uuid.UUID]int64{a: 3, b: 2},
		},
		{
			name:  "Remainder May Be Empty",
			total: 1000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.NewFromInt(100), Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expected: map[uuid.UUID]int64{a: 1000, b: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocations, err := CalculateAllocation(tt.total, tt.rules)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, amountsOf(allocations))
			assert.Equal(t, tt.total, sumOf(allocations))
		})
	}
}

func TestCalculateAllocation_FollowsPriority(t *testing.T) {
	first, second, last := uuid.New(), uuid.New(), uuid.New()
	rules := []Rule{
		{AccountID: last, Type: RuleTypeRemainder, Priority: 9},
		{AccountID: second, Type: RuleTypePercent, Percent: decimal.NewFromInt(10), Priority: 2},
		{AccountID: first, Type: RuleTypeFixed, FixedCents: 100, Priority: 1},
	}

	allocations, err := CalculateAllocation(1000, rules)

	require.NoError(t, err)
	require.Len(t, allocations, 3)
	assert.Equal(t, first, allocations[0].AccountID)
	assert.Equal(t, second, allocations[1].AccountID)
	assert.Equal(t, last, allocations[2].AccountID)
}

func TestCalculateAllocation_Errors(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name        string
		total       int64
		rules       []Rule
		expectedErr error
	}{
		{
			name:        "Zero Total",
			total:       0,
			rules:       []Rule{{AccountID: a, Type: RuleTypeRemainder}},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "No Rules",
			total:       1000,
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Fixed Exceeds Total",
			total: 500,
			rules: []Rule{
				{AccountID: a, Type: RuleTypeFixed, FixedCents: 1000, Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:        "No Remainder Rule",
			total:       500,
			rules:       []Rule{{AccountID: a, Type: RuleTypeFixed, FixedCents: 100, Priority: 1}},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Two Remainder Rules",
			total: 500,
			rules: []Rule{
				{AccountID: a, Type: RuleTypeRemainder, Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Same Account Twice",
			total: 500,
			rules: []Rule{
				{AccountID: a, Type: RuleTypeFixed, FixedCents: 100, Priority: 1},
				{AccountID: a, Type: RuleTypeRemainder, Priority: 2},
			},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Percent Above 100",
			total: 500,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.NewFromInt(101), Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Percents Add Up Past 100",
			total: 1000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypePercent, Percent: decimal.NewFromInt(60), Priority: 1},
				{AccountID: b, Type: RuleTypePercent, Percent: decimal.NewFromInt(60), Priority: 2},
				{AccountID: c, Type: RuleTypeRemainder, Priority: 3},
			},
			expectedErr: domain.ErrInvalidSplit,
		},
		{
			name:  "Zero Fixed Share",
			total: 1000,
			rules: []Rule{
				{AccountID: a, Type: RuleTypeFixed, FixedCents: 0, Priority: 1},
				{AccountID: b, Type: RuleTypeRemainder, Priority: 2},
			},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "Unknown Type",
			total:       1000,
			rules:       []Rule{{AccountID: a, Type: "HALF"}},
			expectedErr: domain.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateAllocation(tt.total, tt.rules)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestParseRuleType(t *testing.T) {
	got, err := ParseRuleType(" percent ")
	require.NoError(t, err)
	assert.Equal(t, RuleTypePercent, got)

	_, err = ParseRuleType("HALF")
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}
