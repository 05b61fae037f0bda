package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
)

// currencyService resolves currencies by id or code.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency resolver collaborator.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencyResolverSvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencyResolverSvcFacade = (*currencyService)(nil)

// FindCurrency resolves by id first, then by code. A nil result with nil
// error means "no currency named"; callers treat that as unresolved.
func (s *currencyService) FindCurrency(ctx context.Context, currencyID, currencyCode *string) (*domain.Currency, error) {
	if currencyID != nil && *currencyID != "" {
		currency, err := s.currencyRepo.FindCurrencyByID(ctx, *currencyID)
		if err == nil {
			return currency, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if currencyCode != nil && *currencyCode != "" {
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(*currencyCode))
		if err == nil {
			return currency, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}
