package services

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
)

// CurrencyResolverSvcFacade resolves a currency from an id and/or code.
type CurrencyResolverSvcFacade interface {
	FindCurrency(ctx context.Context, currencyID, currencyCode *string) (*domain.Currency, error)
}

// BillResolverSvcFacade resolves an existing bill; nil result clears the
// journal's bill reference.
type BillResolverSvcFacade interface {
	FindBill(ctx context.Context, userID string, billID, billName *string) (*domain.Bill, error)
}

// CategoryResolverSvcFacade resolves or creates a category for the user.
type CategoryResolverSvcFacade interface {
	FindOrCreateCategory(ctx context.Context, userID string, categoryID, categoryName *string) (*domain.Category, error)
}

// BudgetResolverSvcFacade resolves or creates a budget for the user.
type BudgetResolverSvcFacade interface {
	FindOrCreateBudget(ctx context.Context, userID string, budgetID, budgetName *string) (*domain.Budget, error)
}

// TagResolverSvcFacade resolves or creates the full tag set for a journal.
type TagResolverSvcFacade interface {
	ResolveTags(ctx context.Context, userID string, names []string) ([]domain.Tag, error)
}

// TransactionTypeSvcFacade looks up a transaction type by its request token.
// An unknown token reports false; callers treat that as a no-op.
type TransactionTypeSvcFacade interface {
	FindTransactionType(name string) (domain.TransactionType, bool)
}

// AuditSvcFacade is the audit-event sink.
type AuditSvcFacade interface {
	RecordChange(ctx context.Context, event domain.AuditEvent) error
}
