package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
)

// RepositoryContainer bundles every Postgres-backed repository behind its
// port interface so service wiring takes a single value.
type RepositoryContainer struct {
	JournalRepo  portsrepo.JournalRepositoryWithTx
	AccountRepo  portsrepo.AccountRepositoryFacade
	CurrencyRepo portsrepo.CurrencyRepositoryFacade
	CategoryRepo portsrepo.CategoryRepositoryFacade
	BudgetRepo   portsrepo.BudgetRepositoryFacade
	TagRepo      portsrepo.TagRepositoryFacade
	BillRepo     portsrepo.BillRepositoryFacade
	AuditRepo    portsrepo.AuditEventRepositoryFacade
}

// NewRepositoryContainer builds all repositories on top of one shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		JournalRepo:  newPgxJournalRepository(pool),
		AccountRepo:  newPgxAccountRepository(pool),
		CurrencyRepo: newPgxCurrencyRepository(pool),
		CategoryRepo: newPgxCategoryRepository(pool),
		BudgetRepo:   newPgxBudgetRepository(pool),
		TagRepo:      newPgxTagRepository(pool),
		BillRepo:     newPgxBillRepository(pool),
		AuditRepo:    newPgxAuditEventRepository(pool),
	}
}
