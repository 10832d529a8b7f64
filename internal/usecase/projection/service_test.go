package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

func TestProjectGrowth_ZeroReturn(t *testing.T) {
	p, err := ProjectGrowth(Input{WeeklyDeposit: "10", AnnualReturnPercent: "0", Years: "2"})

	require.NoError(t, err)
	assert.Equal(t, 104, p.Weeks)
	assert.Equal(t, int64(104000), p.FinalCents)
	assert.Equal(t, int64(104000), p.DepositedCents)
	assert.Zero(t, p.GrowthCents)
}

func TestProjectGrowth_OneYearAtFiftyTwoPercent(t *testing.T) {
	// weekly rate is exactly 1%: 100 * 1.01 * (1.01^52 - 1) / 0.01 = 6844.658...
	p, err := ProjectGrowth(Input{WeeklyDeposit: "100", AnnualReturnPercent: "52", Years: "1"})

	require.NoError(t, err)
	assert.Equal(t, int64(520000), p.DepositedCents)
	assert.Equal(t, int64(684466), p.FinalCents)
	assert.Equal(t, p.FinalCents-p.DepositedCents, p.GrowthCents)
	assert.Positive(t, p.GrowthCents)
}

func TestProjectGrowth_NegativeReturnLosesMoney(t *testing.T) {
	p, err := ProjectGrowth(Input{WeeklyDeposit: "5", AnnualReturnPercent: "-10", Years: "3"})

	require.NoError(t, err)
	assert.Negative(t, p.GrowthCents)
	assert.Less(t, p.FinalCents, p.DepositedCents)
}

func TestProjectGrowth_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{name: "zero deposit", input: Input{WeeklyDeposit: "0", AnnualReturnPercent: "7", Years: "10"}, wantErr: domain.ErrInvalidAmount},
		{name: "missing deposit", input: Input{AnnualReturnPercent: "7", Years: "10"}, wantErr: domain.ErrInvalidAmount},
		{name: "missing return", input: Input{WeeklyDeposit: "5", Years: "10"}, wantErr: domain.ErrRequired},
		{name: "bad return", input: Input{WeeklyDeposit: "5", AnnualReturnPercent: "seven", Years: "10"}, wantErr: domain.ErrValidation},
		{name: "zero years", input: Input{WeeklyDeposit: "5", AnnualReturnPercent: "7", Years: "0"}, wantErr: domain.ErrValidation},
		{name: "fractional years", input: Input{WeeklyDeposit: "5", AnnualReturnPercent: "7", Years: "1.5"}, wantErr: domain.ErrValidation},
		{name: "too many years", input: Input{WeeklyDeposit: "5", AnnualReturnPercent: "7", Years: "101"}, wantErr: domain.ErrValidation},
		{name: "return above range", input: Input{WeeklyDeposit: "10", AnnualReturnPercent: "100000", Years: "100"}, wantErr: domain.ErrValidation},
		{name: "return below range", input: Input{WeeklyDeposit: "10", AnnualReturnPercent: "-101", Years: "10"}, wantErr: domain.ErrValidation},
		{name: "return exponent out of range", input: Input{WeeklyDeposit: "10", AnnualReturnPercent: "1e-50000000", Years: "10"}, wantErr: domain.ErrValidation},
		{name: "deposits overflow", input: Input{WeeklyDeposit: "10000000000000000", AnnualReturnPercent: "7", Years: "100"}, wantErr: ErrTooLarge},
		{name: "balance overflows", input: Input{WeeklyDeposit: "10", AnnualReturnPercent: "1000", Years: "100"}, wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ProjectGrowth(tt.input)

			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProjectGrowth_LargestFittingDeposit(t *testing.T) {
	// 1,000,000,000 a week for 100 years at 0% stays inside int64 cents
	p, err := ProjectGrowth(Input{WeeklyDeposit: "1000000000", AnnualReturnPercent: "0", Years: "100"})

	require.NoError(t, err)
	assert.Equal(t, int64(520000000000000), p.DepositedCents)
	assert.Equal(t, p.DepositedCents, p.FinalCents)
	assert.Zero(t, p.GrowthCents)
}
