package services

import (
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
)

// transactionTypeService looks transaction types up by their request token.
type transactionTypeService struct{}

// NewTransactionTypeService creates the type lookup collaborator.
func NewTransactionTypeService() portssvc.TransactionTypeSvcFacade {
	return &transactionTypeService{}
}

var _ portssvc.TransactionTypeSvcFacade = (*transactionTypeService)(nil)

// FindTransactionType normalizes the token and reports whether it names a
// known type.
func (s *transactionTypeService) FindTransactionType(name string) (domain.TransactionType, bool) {
	normalized := domain.NormalizeTransactionType(name)
	if !domain.IsKnownTransactionType(normalized) {
		return "", false
	}
	return normalized, true
}
