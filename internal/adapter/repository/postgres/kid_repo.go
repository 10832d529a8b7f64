package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// kidRepository implements domain.KidRepository
type kidRepository struct {
	db *DB
}

// NewKidRepository creates a new kid repository
func NewKidRepository(db *DB) domain.KidRepository {
	return &kidRepository{db: db}
}

// Create creates a new kid
func (r *kidRepository) Create(ctx context.Context, kid *domain.Kid) error {
	query := `
		INSERT INTO kids (id, name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query, kid.ID, kid.Name, kid.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create kid: %w", translate(err, "kid"))
	}

	return nil
}

// GetByID retrieves a kid by its ID
func (r *kidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Kid, error) {
	query := `
		SELECT id, name, created_at
		FROM kids
		WHERE id = $1
	`

	var kid domain.Kid
	err := r.db.conn(ctx).QueryRowContext(ctx, query, id).Scan(&kid.ID, &kid.Name, &kid.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kid %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get kid by ID: %w", err)
	}

	return &kid, nil
}

// List retrieves all kids ordered by name
func (r *kidRepository) List(ctx context.Context) ([]*domain.Kid, error) {
	query := `
		SELECT id, name, created_at
		FROM kids
		ORDER BY name ASC, created_at ASC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}
	defer rows.Close()

	kids := make([]*domain.Kid, 0)
	for rows.Next() {
		var kid domain.Kid
		if err := rows.Scan(&kid.ID, &kid.Name, &kid.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kid: %w", err)
		}
		kids = append(kids, &kid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kids: %w", err)
	}

	return kids, nil
}
