package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
)

// billService resolves existing bills; it never creates one.
type billService struct {
	billRepo portsrepo.BillRepositoryFacade
}

// NewBillService creates the bill resolver collaborator.
func NewBillService(billRepo portsrepo.BillRepositoryFacade) portssvc.BillResolverSvcFacade {
	return &billService{billRepo: billRepo}
}

var _ portssvc.BillResolverSvcFacade = (*billService)(nil)

// FindBill resolves by id first, then by name. A nil result with nil error
// means no bill matched; callers clear the journal's bill reference then.
func (s *billService) FindBill(ctx context.Context, userID string, billID, billName *string) (*domain.Bill, error) {
	if billID != nil && *billID != "" {
		bill, err := s.billRepo.FindBillByID(ctx, *billID)
		if err == nil && bill.UserID == userID {
			return bill, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if billName != nil && *billName != "" {
		bill, err := s.billRepo.FindBillByName(ctx, userID, *billName)
		if err == nil {
			return bill, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// categoryService resolves or creates categories by id/name.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category resolver collaborator.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategoryResolverSvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategoryResolverSvcFacade = (*categoryService)(nil)

func (s *categoryService) FindOrCreateCategory(ctx context.Context, userID string, categoryID, categoryName *string) (*domain.Category, error) {
	if categoryID != nil && *categoryID != "" {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
		if err == nil && category.UserID == userID {
			return category, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if categoryName == nil || strings.TrimSpace(*categoryName) == "" {
		return nil, nil
	}

	name := strings.TrimSpace(*categoryName)
	category, err := s.categoryRepo.FindCategoryByName(ctx, userID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// budgetService resolves or creates budgets by id/name.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates the budget resolver collaborator.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetResolverSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetResolverSvcFacade = (*budgetService)(nil)

func (s *budgetService) FindOrCreateBudget(ctx context.Context, userID string, budgetID, budgetName *string) (*domain.Budget, error) {
	if budgetID != nil && *budgetID != "" {
		budget, err := s.budgetRepo.FindBudgetByID(ctx, *budgetID)
		if err == nil && budget.UserID == userID {
			return budget, nil
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if budgetName == nil || strings.TrimSpace(*budgetName) == "" {
		return nil, nil
	}

	name := strings.TrimSpace(*budgetName)
	budget, err := s.budgetRepo.FindBudgetByName(ctx, userID, name)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		Name:     name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.budgetRepo.SaveBudget(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

// tagService resolves or creates the full tag set named by an update.
type tagService struct {
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates the tag resolver collaborator.
func NewTagService(tagRepo portsrepo.TagRepositoryFacade) portssvc.TagResolverSvcFacade {
	return &tagService{tagRepo: tagRepo}
}

var _ portssvc.TagResolverSvcFacade = (*tagService)(nil)

// ResolveTags maps each distinct non-empty name to an existing or newly
// created tag. The caller applies full replacement semantics with the result.
func (s *tagService) ResolveTags(ctx context.Context, userID string, names []string) ([]domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]domain.Tag, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tagRepo.FindTagByName(ctx, userID, name)
		if err == nil {
			tags = append(tags, *tag)
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		now := time.Now().UTC()
		created := domain.Tag{
			TagID:  uuid.NewString(),
			UserID: userID,
			Name:   name,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.tagRepo.SaveTag(ctx, created); err != nil {
			return nil, err
		}
		tags = append(tags, created)
	}
	return tags, nil
}
