package services

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	"github.com/ledgerbook/ledgerbook/internal/dto"
)

// AccountValidatorSvcFacade validates and resolves account candidates against
// an expected transaction type. Validation is type-directed: each transaction
// type constrains which account categories may appear as source and
// destination, so the same candidate can be valid for one type and invalid
// for another.
type AccountValidatorSvcFacade interface {
	// ValidateSource reports whether ref is an acceptable source for the
	// expected type. An empty ref is validated against nothing and fails.
	ValidateSource(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, userID string) bool

	// ValidateDestination additionally receives the resolved source
	// account, because destination validity can depend on the source's
	// type (transfers require same-class accounts on both ends).
	ValidateDestination(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, source *domain.Account, userID string) bool

	// ResolveSource returns the concrete account for ref, creating the
	// counter account when the type rules allow it.
	ResolveSource(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, userID string) (*domain.Account, error)

	ResolveDestination(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, source *domain.Account, userID string) (*domain.Account, error)
}
