package repositories

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for accounts as the
// account validator needs them: lookup by the identifying info a request can
// carry, constrained to the account types a transaction type allows.
type AccountRepositoryFacade interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName returns the first active account of the user with
	// the given name whose type is in types; apperrors.ErrNotFound on miss.
	FindAccountByName(ctx context.Context, userID string, name string, types []domain.AccountType) (*domain.Account, error)
	FindAccountByIBAN(ctx context.Context, userID string, iban string, types []domain.AccountType) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, userID string, number string, types []domain.AccountType) (*domain.Account, error)

	// SaveAccount persists a new account; used when resolution is allowed
	// to create the counter account (expense/revenue) on demand.
	SaveAccount(ctx context.Context, account domain.Account) error
}
