package services

import (
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/platform/config"
)

// NewServiceContainer wires every service facade from the repositories.
func NewServiceContainer(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	billRepo portsrepo.BillRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	budgetRepo portsrepo.BudgetRepositoryFacade,
	tagRepo portsrepo.TagRepositoryFacade,
	auditRepo portsrepo.AuditEventRepositoryFacade,
	cfg *config.Config,
) *portssvc.ServiceContainer {
	accounts := NewAccountValidatorService(accountRepo)
	currency := NewCurrencyService(currencyRepo)
	bills := NewBillService(billRepo)
	categories := NewCategoryService(categoryRepo)
	budgets := NewBudgetService(budgetRepo)
	tags := NewTagService(tagRepo)
	types := NewTransactionTypeService()
	audit := NewAuditService(auditRepo)

	journal := NewJournalUpdateService(
		journalRepo,
		accountRepo,
		accounts,
		currency,
		bills,
		categories,
		budgets,
		tags,
		types,
		audit,
		cfg,
	)

	return &portssvc.ServiceContainer{
		Journal:  journal,
		Accounts: accounts,
		Currency: currency,
		Bills:    bills,
		Category: categories,
		Budget:   budgets,
		Tags:     tags,
		Types:    types,
		Audit:    audit,
	}
}
