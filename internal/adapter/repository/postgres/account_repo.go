package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/kidbank-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
// An unknown kid surfaces as domain.ErrNotFound through the foreign key.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, kid_id, name, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		account.ID,
		account.KidID,
		account.Name,
		string(account.Kind),
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", translate(err, "kid "+account.KidID.String()))
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, kid_id, name, kind, created_at
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return account, nil
}

// ListByKid retrieves the accounts of a kid in creation order
func (r *accountRepository) ListByKid(ctx context.Context, kidID uuid.UUID) ([]*domain.Account, error) {
	query := `
		SELECT id, kid_id, name, kind, created_at
		FROM accounts
		WHERE kid_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	var account domain.Account
	var kind string
	if err := row.Scan(&account.ID, &account.KidID, &account.Name, &kind, &account.CreatedAt); err != nil {
		return nil, err
	}
	account.Kind = domain.AccountKind(kind)
	return &account, nil
}
