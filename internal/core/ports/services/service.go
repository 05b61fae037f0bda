package services

// ServiceContainer aggregates the service facades handed to the transport
// layer.
type ServiceContainer struct {
	Journal  JournalUpdaterSvcFacade
	Accounts AccountValidatorSvcFacade
	Currency CurrencyResolverSvcFacade
	Bills    BillResolverSvcFacade
	Category CategoryResolverSvcFacade
	Budget   BudgetResolverSvcFacade
	Tags     TagResolverSvcFacade
	Types    TransactionTypeSvcFacade
	Audit    AuditSvcFacade
}
