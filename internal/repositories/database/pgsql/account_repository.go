package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
)

const accountColumns = `account_id, user_id, name, account_type, iban, number, bic, currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository persists accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{db: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.UserID,
		&a.Name,
		&a.AccountType,
		&a.IBAN,
		&a.Number,
		&a.BIC,
		&a.CurrencyCode,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account row", err)
	}
	return &a, nil
}

func accountTypeStrings(types []domain.AccountType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.db.QueryRow(ctx, query, accountID))
}

// FindAccountByName returns the first active account of the user with the
// given name whose type is in types.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, userID string, name string, types []domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND name = $2 AND account_type = ANY($3) AND is_active
		ORDER BY created_at
		LIMIT 1;
	`
	return scanAccount(r.db.QueryRow(ctx, query, userID, name, accountTypeStrings(types)))
}

// FindAccountByIBAN matches on the account's IBAN.
func (r *PgxAccountRepository) FindAccountByIBAN(ctx context.Context, userID string, iban string, types []domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND iban = $2 AND account_type = ANY($3) AND is_active
		ORDER BY created_at
		LIMIT 1;
	`
	return scanAccount(r.db.QueryRow(ctx, query, userID, iban, accountTypeStrings(types)))
}

// FindAccountByNumber matches on the account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, userID string, number string, types []domain.AccountType) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND number = $2 AND account_type = ANY($3) AND is_active
		ORDER BY created_at
		LIMIT 1;
	`
	return scanAccount(r.db.QueryRow(ctx, query, userID, number, accountTypeStrings(types)))
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, user_id, name, account_type, iban, number, bic, currency_code, is_active,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Name,
		account.AccountType,
		account.IBAN,
		account.Number,
		account.BIC,
		account.CurrencyCode,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}
