package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// tickerEventRepository implements domain.TickerEventRepository
type tickerEventRepository struct {
	db *DB
}

// NewTickerEventRepository creates a new ticker event repository
func NewTickerEventRepository(db *DB) domain.TickerEventRepository {
	return &tickerEventRepository{db: db}
}

// Add appends a ticker event
func (r *tickerEventRepository) Add(ctx context.Context, event *domain.TickerEvent) error {
	query := `
		INSERT INTO market_ticker_events (id, account_id, ticker, effective_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		event.ID,
		event.AccountID,
		event.Ticker,
		event.EffectiveDate,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticker event: %w", translate(err, "account "+event.AccountID.String()))
	}

	return nil
}

// ListByAccount retrieves the ticker history of an account, newest first
func (r *tickerEventRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) (domain.TickerLog, error) {
	query := `
		SELECT id, account_id, ticker, effective_date, created_at
		FROM market_ticker_events
		WHERE account_id = $1
		ORDER BY effective_date DESC, created_at DESC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticker events: %w", err)
	}
	defer rows.Close()

	log := make(domain.TickerLog, 0)
	for rows.Next() {
		var event domain.TickerEvent
		if err := rows.Scan(&event.ID, &event.AccountID, &event.Ticker, &event.EffectiveDate, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ticker event: %w", err)
		}
		log = append(log, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticker events: %w", err)
	}

	return log, nil
}

// Current retrieves the event with the latest effective date for an account
func (r *tickerEventRepository) Current(ctx context.Context, accountID uuid.UUID) (*domain.TickerEvent, error) {
	query := `
		SELECT id, account_id, ticker, effective_date, created_at
		FROM market_ticker_events
		WHERE account_id = $1
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1
	`

	var event domain.TickerEvent
	err := r.db.conn(ctx).QueryRowContext(ctx, query, accountID).Scan(
		&event.ID,
		&event.AccountID,
		&event.Ticker,
		&event.EffectiveDate,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no ticker for account %s: %w", accountID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get current ticker: %w", err)
	}

	return &event, nil
}
