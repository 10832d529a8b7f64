// Package memory is an in-process record store. It backs local runs
// (STORE=memory) and tests, and honours the same unit-of-work contract as the
// Postgres store: writes made inside Do become visible together or not at all.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// Store holds every record in memory
type Store struct {
	// mu protects all maps below
	mu sync.RWMutex

	kids         map[uuid.UUID]domain.Kid
	accounts     map[uuid.UUID]domain.Account
	transactions map[uuid.UUID][]domain.Transaction // by account
	tickers      map[uuid.UUID][]domain.TickerEvent // by account
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		kids:         make(map[uuid.UUID]domain.Kid),
		accounts:     make(map[uuid.UUID]domain.Account),
		transactions: make(map[uuid.UUID][]domain.Transaction),
		tickers:      make(map[uuid.UUID][]domain.TickerEvent),
	}
}

type journalKey struct{}

// journal collects the writes staged inside a unit of work
type journal struct {
	ops []func()
}

// Do runs fn as one unit of work. Writes are staged and applied under a single
// lock only when fn returns nil. Reads inside fn observe committed state.
// Nested calls join the outer unit of work.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range j.ops {
		op()
	}
	return nil
}

// write applies op immediately, or stages it when ctx carries a unit of work
func (s *Store) write(ctx context.Context, op func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.ops = append(j.ops, op)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	op()
}

func (s *Store) accountExists(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}

// Ping implements the health check of the in-memory store
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
