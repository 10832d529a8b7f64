package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TickerEvent records which instrument a market account is invested in
// from its effective date onwards
type TickerEvent struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	Ticker        string // Normalized upper-case
	EffectiveDate time.Time
	CreatedAt     time.Time
}

// NormalizeTicker trims and upper-cases a ticker symbol
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate ensures the ticker event adheres to domain rules
func (e *TickerEvent) Validate() error {
	if e.AccountID == uuid.Nil {
		return Required("account")
	}
	if e.Ticker == "" {
		return Required("ticker")
	}
	if e.EffectiveDate.IsZero() {
		return Required("effective date")
	}
	return nil
}

// TickerLog is the append-only history of ticker events of one account
type TickerLog []*TickerEvent

// Current returns the event with the latest effective date.
// Ties on the effective date go to the most recently created event.
func (l TickerLog) Current() (*TickerEvent, bool) {
	var current *TickerEvent
	for _, e := range l {
		if current == nil || later(e, current) {
			current = e
		}
	}
	return current, current != nil
}

// Sorted returns a copy of the log, newest effective date first
func (l TickerLog) Sorted() TickerLog {
	out := make(TickerLog, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return later(out[i], out[j])
	})
	return out
}

func later(a, b *TickerEvent) bool {
	if !a.EffectiveDate.Equal(b.EffectiveDate) {
		return a.EffectiveDate.After(b.EffectiveDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
