package repositories

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
)

// CurrencyRepositoryFacade defines read access to currencies.
type CurrencyRepositoryFacade interface {
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
}

// CategoryRepositoryFacade defines lookup and creation of categories.
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
}

// BudgetRepositoryFacade defines lookup and creation of budgets.
type BudgetRepositoryFacade interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	FindBudgetByName(ctx context.Context, userID string, name string) (*domain.Budget, error)
	SaveBudget(ctx context.Context, budget domain.Budget) error
}

// TagRepositoryFacade defines lookup and creation of tags.
type TagRepositoryFacade interface {
	FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error)
	SaveTag(ctx context.Context, tag domain.Tag) error
}

// BillRepositoryFacade defines read access to bills. Bills are never created
// by an update; an unresolved bill clears the journal's bill reference.
type BillRepositoryFacade interface {
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	FindBillByName(ctx context.Context, userID string, name string) (*domain.Bill, error)
}

// AuditEventRepositoryFacade persists per-field change events.
type AuditEventRepositoryFacade interface {
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
