package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
)

var ErrAccountUnresolvable = errors.New("account could not be resolved")

// allowedSourceTypes lists the account types acceptable on the source leg
// per transaction type.
var allowedSourceTypes = map[domain.TransactionType][]domain.AccountType{
	domain.Withdrawal:     {domain.Asset, domain.Loan, domain.Debt, domain.Mortgage},
	domain.Deposit:        {domain.Revenue, domain.Loan, domain.Debt, domain.Mortgage},
	domain.Transfer:       {domain.Asset, domain.Loan, domain.Debt, domain.Mortgage},
	domain.OpeningBalance: {domain.InitialBalance, domain.Asset},
	domain.Reconciliation: {domain.Asset, domain.Cash},
}

// allowedDestinationTypes is the symmetric table for the destination leg.
var allowedDestinationTypes = map[domain.TransactionType][]domain.AccountType{
	domain.Withdrawal:     {domain.Expense, domain.Loan, domain.Debt, domain.Mortgage, domain.Cash},
	domain.Deposit:        {domain.Asset, domain.Loan, domain.Debt, domain.Mortgage},
	domain.Transfer:       {domain.Asset, domain.Loan, domain.Debt, domain.Mortgage},
	domain.OpeningBalance: {domain.Asset, domain.InitialBalance},
	domain.Reconciliation: {domain.Asset, domain.Cash},
}

// creatableSourceType / creatableDestinationType name the counter-account
// type that may be created on demand from a bare name, per transaction type.
// Asset and liability accounts are never created by an update.
var (
	creatableSourceType = map[domain.TransactionType]domain.AccountType{
		domain.Deposit: domain.Revenue,
	}
	creatableDestinationType = map[domain.TransactionType]domain.AccountType{
		domain.Withdrawal: domain.Expense,
	}
)

// accountValidatorService validates and resolves account candidates against
// the type-directed rules above.
type accountValidatorService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountValidatorService creates the account validator collaborator.
func NewAccountValidatorService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountValidatorSvcFacade {
	return &accountValidatorService{accountRepo: accountRepo}
}

var _ portssvc.AccountValidatorSvcFacade = (*accountValidatorService)(nil)

func typeAllowed(t domain.AccountType, allowed []domain.AccountType) bool {
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

// lookup finds the account ref points at, restricted to the allowed types.
// Lookup order: id, then name, then IBAN, then number.
func (s *accountValidatorService) lookup(ctx context.Context, ref dto.AccountRef, userID string, allowed []domain.AccountType) (*domain.Account, error) {
	if ref.ID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *ref.ID)
		if err != nil {
			return nil, err
		}
		if account.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		if !typeAllowed(account.AccountType, allowed) {
			return nil, fmt.Errorf("%w: account %s has type %s", apperrors.ErrValidation, account.AccountID, account.AccountType)
		}
		return account, nil
	}
	if ref.Name != nil && *ref.Name != "" {
		return s.accountRepo.FindAccountByName(ctx, userID, *ref.Name, allowed)
	}
	if ref.IBAN != nil && *ref.IBAN != "" {
		return s.accountRepo.FindAccountByIBAN(ctx, userID, *ref.IBAN, allowed)
	}
	if ref.Number != nil && *ref.Number != "" {
		return s.accountRepo.FindAccountByNumber(ctx, userID, *ref.Number, allowed)
	}
	return nil, apperrors.ErrNotFound
}

// ValidateSource reports whether ref names an acceptable source account for
// the expected type. A bare name validates when the type allows creating the
// counter account on the fly.
func (s *accountValidatorService) ValidateSource(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, userID string) bool {
	allowed, ok := allowedSourceTypes[expectedType]
	if !ok || ref.IsEmpty() {
		return false
	}
	if _, err := s.lookup(ctx, ref, userID, allowed); err == nil {
		return true
	}
	if _, creatable := creatableSourceType[expectedType]; creatable && ref.ID == nil && ref.Name != nil && *ref.Name != "" {
		return true
	}
	return false
}

// ValidateDestination mirrors ValidateSource but also receives the resolved
// source account: for transfers the destination must pair with the source's
// account class (asset with asset or liability, liability likewise).
func (s *accountValidatorService) ValidateDestination(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, source *domain.Account, userID string) bool {
	allowed, ok := allowedDestinationTypes[expectedType]
	if !ok || ref.IsEmpty() {
		return false
	}
	account, err := s.lookup(ctx, ref, userID, allowed)
	if err != nil {
		if _, creatable := creatableDestinationType[expectedType]; creatable && ref.ID == nil && ref.Name != nil && *ref.Name != "" {
			return true
		}
		return false
	}
	if expectedType == domain.Transfer && source != nil {
		sameClass := source.AccountType == account.AccountType
		crossClass := domain.BetweenAssetAndLiability(source, account)
		if !sameClass && !crossClass {
			return false
		}
	}
	return true
}

// ResolveSource returns the concrete source account for ref.
func (s *accountValidatorService) ResolveSource(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, userID string) (*domain.Account, error) {
	allowed, ok := allowedSourceTypes[expectedType]
	if !ok {
		return nil, fmt.Errorf("%w: no source rules for type %s", ErrAccountUnresolvable, expectedType)
	}
	return s.resolve(ctx, ref, userID, allowed, creatableSourceType[expectedType])
}

// ResolveDestination returns the concrete destination account for ref.
func (s *accountValidatorService) ResolveDestination(ctx context.Context, expectedType domain.TransactionType, ref dto.AccountRef, source *domain.Account, userID string) (*domain.Account, error) {
	allowed, ok := allowedDestinationTypes[expectedType]
	if !ok {
		return nil, fmt.Errorf("%w: no destination rules for type %s", ErrAccountUnresolvable, expectedType)
	}
	return s.resolve(ctx, ref, userID, allowed, creatableDestinationType[expectedType])
}

// resolve finds the account or, when permitted, creates the counter account
// from the bare name.
func (s *accountValidatorService) resolve(ctx context.Context, ref dto.AccountRef, userID string, allowed []domain.AccountType, creatable domain.AccountType) (*domain.Account, error) {
	account, err := s.lookup(ctx, ref, userID, allowed)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if creatable == "" || ref.Name == nil || *ref.Name == "" {
		return nil, fmt.Errorf("%w: %w", ErrAccountUnresolvable, err)
	}

	now := time.Now().UTC()
	created := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        *ref.Name,
		AccountType: creatable,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if ref.IBAN != nil {
		created.IBAN = *ref.IBAN
	}
	if ref.Number != nil {
		created.Number = *ref.Number
	}
	if ref.BIC != nil {
		created.BIC = *ref.BIC
	}
	if err := s.accountRepo.SaveAccount(ctx, created); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Created counter account on demand",
		slog.String("account_id", created.AccountID),
		slog.String("account_type", string(created.AccountType)),
	)
	return &created, nil
}
