package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

func tx(direction domain.Direction, cents int64, date string) *domain.Transaction {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return &domain.Transaction{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		Direction:   direction,
		AmountCents: cents,
		OccurredAt:  d,
	}
}

func marketTx(direction domain.Direction, cents int64, shares, price string) *domain.Transaction {
	t := tx(direction, cents, "2024-01-02")
	t.Fill = &domain.MarketFill{
		Shares: decimal.RequireFromString(shares),
		Price:  decimal.RequireFromString(price),
		Ticker: "VOO",
	}
	return t
}

func TestCashBalance_Scenario(t *testing.T) {
	txs := []*domain.Transaction{
		tx(domain.DirectionDeposit, 10000, "2024-01-01"),
		tx(domain.DirectionDeposit, 5000, "2024-01-02"),
		tx(domain.DirectionDeposit, 2500, "2024-01-03"),
		tx(domain.DirectionWithdrawal, 3000, "2024-01-04"),
	}

	assert.Equal(t, int64(14500), CashBalance(txs))
}

func TestCashBalance_EmptyAndNegative(t *testing.T) {
	assert.Equal(t, int64(0), CashBalance(nil))

	// No overdraft protection at this layer
	txs := []*domain.Transaction{
		tx(domain.DirectionDeposit, 1000, "2024-01-01"),
		tx(domain.DirectionWithdrawal, 2500, "2024-01-02"),
	}
	assert.Equal(t, int64(-1500), CashBalance(txs))
}

func TestCashBalance_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		txs := make([]*domain.Transaction, 0, n)
		var want int64
		for i := 0; i < n; i++ {
			cents := rng.Int63n(1_000_000) + 1
			direction := domain.DirectionDeposit
			if rng.Intn(2) == 0 {
				direction = domain.DirectionWithdrawal
				want -= cents
			} else {
				want += cents
			}
			txs = append(txs, tx(direction, cents, "2024-01-01"))
		}

		assert.Equal(t, want, CashBalance(txs))

		rng.Shuffle(len(txs), func(i, j int) { txs[i], txs[j] = txs[j], txs[i] })
		assert.Equal(t, want, CashBalance(txs))
	}
}

func TestReconstructPosition(t *testing.T) {
	txs := []*domain.Transaction{
		marketTx(domain.DirectionDeposit, 100000, "2.5", "400"),
		marketTx(domain.DirectionDeposit, 44000, "1", "440"),
		marketTx(domain.DirectionWithdrawal, 22000, "0.5", "440"),
	}

	pos := ReconstructPosition(txs)

	assert.True(t, pos.TotalShares.Equal(decimal.NewFromInt(3)), "got %s", pos.TotalShares)
	assert.Equal(t, int64(122000), pos.CostBasisCents)
}

func TestReconstructPosition_IgnoresTickerChanges(t *testing.T) {
	first := marketTx(domain.DirectionDeposit, 100000, "2.5", "400")
	second := marketTx(domain.DirectionDeposit, 20000, "1", "200")
	second.Fill.Ticker = "QQQ"

	pos := ReconstructPosition([]*domain.Transaction{first, second})

	assert.True(t, pos.TotalShares.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, int64(120000), pos.CostBasisCents)
}

func TestMarkToMarket_VOOScenario(t *testing.T) {
	price := decimal.NewFromInt(400)
	shares := SharesFor(100000, price)
	assert.True(t, shares.Equal(decimal.RequireFromString("2.5")))

	deposit := marketTx(domain.DirectionDeposit, 100000, shares.String(), "400")
	pos := ReconstructPosition([]*domain.Transaction{deposit})
	assert.Equal(t, int64(100000), pos.CostBasisCents)

	val := MarkToMarket(pos, decimal.NewFromInt(440))

	assert.Equal(t, int64(110000), val.MarketValueCents)
	assert.Equal(t, int64(10000), val.GainLossCents)
	assert.True(t, val.GainLossPercent.Equal(decimal.NewFromInt(10)), "got %s", val.GainLossPercent)
	assert.True(t, val.Price.Equal(decimal.NewFromInt(440)))
}

func TestMarkToMarket_ZeroCostBasis(t *testing.T) {
	pos := Position{TotalShares: decimal.NewFromInt(1), CostBasisCents: 0}

	val := MarkToMarket(pos, decimal.NewFromInt(50))

	assert.Equal(t, int64(5000), val.MarketValueCents)
	assert.Equal(t, int64(5000), val.GainLossCents)
	assert.True(t, val.GainLossPercent.IsZero())
}

func TestMarkToMarket_Loss(t *testing.T) {
	pos := Position{TotalShares: decimal.NewFromInt(2), CostBasisCents: 100000}

	val := MarkToMarket(pos, decimal.NewFromInt(450))

	assert.Equal(t, int64(90000), val.MarketValueCents)
	assert.Equal(t, int64(-10000), val.GainLossCents)
	assert.True(t, val.GainLossPercent.Equal(decimal.NewFromInt(-10)))
}

func TestMarkToMarket_NegativeCostBasisUsesAbsoluteValue(t *testing.T) {
	// Withdrew more cash than was paid in
	pos := Position{TotalShares: decimal.NewFromInt(1), CostBasisCents: -10000}

	val := MarkToMarket(pos, decimal.NewFromInt(100))

	assert.Equal(t, int64(10000), val.MarketValueCents)
	assert.Equal(t, int64(20000), val.GainLossCents)
	assert.True(t, val.GainLossPercent.Equal(decimal.NewFromInt(200)))
}

func TestMarkToMarket_RoundsToNearestCent(t *testing.T) {
	pos := Position{TotalShares: decimal.RequireFromString("0.333"), CostBasisCents: 1000}

	val := MarkToMarket(pos, decimal.RequireFromString("30.015"))

	// 0.333 * 30.015 = 9.994995 -> 999 cents
	assert.Equal(t, int64(999), val.MarketValueCents)
}

func TestSortForDisplay(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	old := tx(domain.DirectionDeposit, 100, "2023-01-01")
	old.CreatedAt = base.Add(3 * time.Hour) // backdated, created last
	newest := tx(domain.DirectionDeposit, 200, "2024-04-01")
	newest.CreatedAt = base
	sameDayEarly := tx(domain.DirectionDeposit, 300, "2024-03-01")
	sameDayEarly.CreatedAt = base
	sameDayLate := tx(domain.DirectionWithdrawal, 400, "2024-03-01")
	sameDayLate.CreatedAt = base.Add(time.Hour)

	input := []*domain.Transaction{old, sameDayEarly, newest, sameDayLate}
	sorted := SortForDisplay(input)

	assert.Equal(t, []*domain.Transaction{newest, sameDayLate, sameDayEarly, old}, sorted)
	assert.Equal(t, old, input[0], "input must not be reordered")
}
