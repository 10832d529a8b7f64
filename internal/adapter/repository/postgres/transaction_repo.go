package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts one transaction row.
// Call it inside DB.Do when several rows must commit together.
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, direction, amount_cents, occurred_at, note, shares, price, ticker, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CAST($7 AS NUMERIC), CAST($8 AS NUMERIC), $9, $10, $11)
	`

	// NUMERIC columns are written as decimal strings
	var shares, price, ticker sql.NullString
	if tx.Fill != nil {
		shares = sql.NullString{String: tx.Fill.Shares.String(), Valid: true}
		price = sql.NullString{String: tx.Fill.Price.String(), Valid: true}
		ticker = sql.NullString{String: tx.Fill.Ticker, Valid: true}
	}

	var transferID uuid.NullUUID
	if tx.TransferID != nil {
		transferID = uuid.NullUUID{UUID: *tx.TransferID, Valid: true}
	}

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		tx.ID,
		tx.AccountID,
		string(tx.Direction),
		tx.AmountCents,
		tx.OccurredAt,
		tx.Note,
		shares,
		price,
		ticker,
		transferID,
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", translate(err, "account "+tx.AccountID.String()))
	}

	return nil
}

// ListByAccount retrieves every transaction of an account
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, direction, amount_cents, occurred_at, note,
		       shares::text, price::text, ticker, transfer_id, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY occurred_at DESC, created_at DESC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var direction string
		var shares, price, ticker sql.NullString
		var transferID uuid.NullUUID

		err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&direction,
			&tx.AmountCents,
			&tx.OccurredAt,
			&tx.Note,
			&shares,
			&price,
			&ticker,
			&transferID,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Direction = domain.Direction(direction)

		if transferID.Valid {
			id := transferID.UUID
			tx.TransferID = &id
		}

		if shares.Valid {
			fill, err := parseFill(shares.String, price.String, ticker.String)
			if err != nil {
				return nil, err
			}
			tx.Fill = fill
		}

		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

func parseFill(sharesStr, priceStr, ticker string) (*domain.MarketFill, error) {
	shares, err := decimal.NewFromString(sharesStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shares: %w", err)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	return &domain.MarketFill{Shares: shares, Price: price, Ticker: ticker}, nil
}
