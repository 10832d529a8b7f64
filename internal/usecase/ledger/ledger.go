// Package ledger turns the stored transactions of one account into balances,
// share positions and mark-to-market valuations. Every function is pure and is
// re-run on each read; nothing here is persisted.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
)

var hundred = decimal.NewFromInt(100)

// Position is the share quantity and net cash invested of a market account
type Position struct {
	TotalShares    decimal.Decimal
	CostBasisCents int64
}

// Valuation is a position marked to a current price
type Valuation struct {
	Price            decimal.Decimal
	MarketValueCents int64
	GainLossCents    int64
	GainLossPercent  decimal.Decimal
}

// CashBalance sums deposits minus withdrawals.
// The balance is not clamped and may go negative.
func CashBalance(txs []*domain.Transaction) int64 {
	var balance int64
	for _, tx := range txs {
		balance += tx.SignedAmount()
	}
	return balance
}

// ReconstructPosition accumulates signed shares and signed cash over all
// transactions of a market account.
// Accumulation is flat: a ticker change neither resets nor partitions the totals.
func ReconstructPosition(txs []*domain.Transaction) Position {
	pos := Position{TotalShares: decimal.Zero}
	for _, tx := range txs {
		pos.TotalShares = pos.TotalShares.Add(tx.SignedShares())
		pos.CostBasisCents += tx.SignedAmount()
	}
	return pos
}

// MarkToMarket values a position at the given price.
// Logic:
//   - MarketValue = round(TotalShares * Price * 100) cents
//   - GainLoss = MarketValue - CostBasis
//   - GainLossPercent = GainLoss / |CostBasis| * 100, or 0 when CostBasis is 0
func MarkToMarket(pos Position, price decimal.Decimal) Valuation {
	marketValue := money.FromDollars(pos.TotalShares.Mul(price))
	gainLoss := marketValue - pos.CostBasisCents

	percent := decimal.Zero
	if pos.CostBasisCents != 0 {
		basis := decimal.NewFromInt(pos.CostBasisCents).Abs()
		percent = decimal.NewFromInt(gainLoss).Div(basis).Mul(hundred)
	}

	return Valuation{
		Price:            price,
		MarketValueCents: marketValue,
		GainLossCents:    gainLoss,
		GainLossPercent:  percent,
	}
}

// SharesFor returns how many shares amountCents buys at price.
// price must be positive.
func SharesFor(amountCents int64, price decimal.Decimal) decimal.Decimal {
	return money.Dollars(amountCents).Div(price)
}

// SortForDisplay returns a copy of txs ordered by effective date, newest first.
// Transactions on the same date are ordered by creation time, newest first.
func SortForDisplay(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
