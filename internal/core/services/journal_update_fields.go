package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
)

// dateLayouts are the accepted request date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses a request date, normalizes it into the application
// timezone and optionally forces UTC. It returns the instant and the
// resolved timezone label.
func (s *journalUpdateService) parseDate(value string) (time.Time, string, error) {
	var parsed time.Time
	var err error
	for _, layout := range dateLayouts {
		parsed, err = time.ParseInLocation(layout, value, s.location)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, "", err
	}
	parsed = parsed.In(s.location)
	label := s.location.String()
	if s.forceUTC {
		parsed = parsed.UTC()
		label = "UTC"
	}
	return parsed, label, nil
}

// updateScalarFields patches description, date and order. An empty string
// means "treat as absent", not "clear". Each applied field raises an audit
// event carrying old and new value.
func (s *journalUpdateService) updateScalarFields(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	changed := false

	if req.Description != nil && *req.Description != "" && *req.Description != u.journal.Description {
		old := u.journal.Description
		u.journal.Description = *req.Description
		s.recordChange(ctx, u, "description", old, *req.Description)
		changed = true
	}

	if req.Date != nil && *req.Date != "" {
		parsed, label, err := s.parseDate(*req.Date)
		if err != nil {
			u.skip("date", "unparseable date "+*req.Date)
		} else if !parsed.Equal(u.journal.Date) || label != u.journal.DateTZ {
			old := u.journal.Date
			u.journal.Date = parsed
			u.journal.DateTZ = label
			s.recordChange(ctx, u, "date", old.Format(time.RFC3339), parsed.Format(time.RFC3339))
			changed = true
		}
	}

	if req.Order != nil && *req.Order != u.journal.Order {
		old := u.journal.Order
		u.journal.Order = *req.Order
		s.recordChange(ctx, u, "order", strconv.Itoa(old), strconv.Itoa(*req.Order))
		changed = true
	}

	if !changed {
		return nil
	}
	u.touch(time.Now().UTC())
	return repo.UpdateJournal(ctx, *u.journal)
}

// updateBill links or clears the journal's bill. Bills only apply to
// withdrawals; a resolution failure keeps the existing reference.
func (s *journalUpdateService) updateBill(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if u.journal.TransactionType != domain.Withdrawal {
		return nil
	}
	if req.BillID == nil && req.BillName == nil {
		return nil
	}

	bill, err := s.bills.FindBill(ctx, u.journal.UserID, req.BillID, req.BillName)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Bill resolution failed, keeping existing bill", slog.String("error", err.Error()))
		u.skip("bill", "bill could not be resolved")
		return nil
	}

	if bill == nil {
		u.journal.BillID = nil
	} else {
		u.journal.BillID = &bill.BillID
	}
	u.touch(time.Now().UTC())
	return repo.UpdateJournal(ctx, *u.journal)
}

// updateCategory links or clears the journal's category.
func (s *journalUpdateService) updateCategory(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.CategoryID == nil && req.CategoryName == nil {
		return nil
	}

	category, err := s.categories.FindOrCreateCategory(ctx, u.journal.UserID, req.CategoryID, req.CategoryName)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Category resolution failed, keeping existing category", slog.String("error", err.Error()))
		u.skip("category", "category could not be resolved")
		return nil
	}

	var categoryID *string
	if category != nil {
		categoryID = &category.CategoryID
	}
	return repo.LinkCategory(ctx, u.journal.JournalID, categoryID)
}

// updateBudget links or clears the journal's budget, then enforces the
// invariant that transfers never carry a budget, regardless of request
// content.
func (s *journalUpdateService) updateBudget(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.BudgetID != nil || req.BudgetName != nil {
		budget, err := s.budgets.FindOrCreateBudget(ctx, u.journal.UserID, req.BudgetID, req.BudgetName)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Budget resolution failed, keeping existing budget", slog.String("error", err.Error()))
			u.skip("budget", "budget could not be resolved")
		} else {
			var budgetID *string
			if budget != nil {
				budgetID = &budget.BudgetID
			}
			if err := repo.LinkBudget(ctx, u.journal.JournalID, budgetID); err != nil {
				return err
			}
		}
	}

	if u.journal.TransactionType == domain.Transfer {
		return repo.LinkBudget(ctx, u.journal.JournalID, nil)
	}
	return nil
}

// updateTags replaces the journal's full tag set.
func (s *journalUpdateService) updateTags(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.Tags == nil {
		return nil
	}

	tags, err := s.tags.ResolveTags(ctx, u.journal.UserID, *req.Tags)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Tag resolution failed, keeping existing tags", slog.String("error", err.Error()))
		u.skip("tags", "tags could not be resolved")
		return nil
	}

	tagIDs := make([]string, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.TagID
	}
	return repo.ReplaceTags(ctx, u.journal.JournalID, tagIDs)
}

// updateReconciled sets the reconciled flag on both legs. The pointer-bool
// request field only matches a genuine JSON boolean.
func (s *journalUpdateService) updateReconciled(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.Reconciled == nil {
		return nil
	}

	now := time.Now().UTC()
	src := u.sourceLeg()
	dst := u.destinationLeg()
	src.Reconciled = *req.Reconciled
	dst.Reconciled = *req.Reconciled
	src.LastUpdatedAt = now
	src.LastUpdatedBy = u.actorID
	dst.LastUpdatedAt = now
	dst.LastUpdatedBy = u.actorID

	if err := repo.UpdateLeg(ctx, *src); err != nil {
		return err
	}
	return repo.UpdateLeg(ctx, *dst)
}

// updateNotes upserts or clears the journal note. Unlike scalar fields, an
// empty string here is a meaningful "clear" signal.
func (s *journalUpdateService) updateNotes(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.Notes == nil {
		return nil
	}
	if *req.Notes == "" {
		return repo.DeleteNote(ctx, u.journal.JournalID)
	}

	now := time.Now().UTC()
	note := domain.Note{
		JournalID: u.journal.JournalID,
		Text:      *req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     u.actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: u.actorID,
		},
	}
	return repo.UpsertNote(ctx, note)
}

// updateMetaStrings updates each recognized string metadata field
// independently: empty string deletes the entry, non-empty upserts it.
func (s *journalUpdateService) updateMetaStrings(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	now := time.Now().UTC()
	for _, name := range domain.MetaStringFields {
		value := req.MetaString(name)
		if value == nil {
			continue
		}
		if *value == "" {
			if err := repo.DeleteMeta(ctx, u.journal.JournalID, name); err != nil {
				return err
			}
			continue
		}
		meta := domain.JournalMeta{
			JournalID: u.journal.JournalID,
			Name:      name,
			Value:     *value,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     u.actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: u.actorID,
			},
		}
		if err := repo.UpsertMeta(ctx, meta); err != nil {
			return err
		}
	}
	return nil
}

// updateMetaDates updates each recognized date metadata field. A parseable
// date upserts the entry plus a "<name>_tz" companion holding the resolved
// timezone label; empty string deletes both. The first unparseable value
// abandons the remaining date updates for this call.
func (s *journalUpdateService) updateMetaDates(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	now := time.Now().UTC()
	for _, name := range domain.MetaDateFields {
		value := req.MetaDate(name)
		if value == nil {
			continue
		}
		if *value == "" {
			if err := repo.DeleteMeta(ctx, u.journal.JournalID, name); err != nil {
				return err
			}
			if err := repo.DeleteMeta(ctx, u.journal.JournalID, name+"_tz"); err != nil {
				return err
			}
			continue
		}

		parsed, label, err := s.parseDate(*value)
		if err != nil {
			u.skip(name, "unparseable date "+*value+", remaining metadata dates skipped")
			return nil
		}

		audit := domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     u.actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: u.actorID,
		}
		meta := domain.JournalMeta{
			JournalID:   u.journal.JournalID,
			Name:        name,
			Value:       parsed.Format(time.RFC3339),
			Date:        &parsed,
			AuditFields: audit,
		}
		if err := repo.UpsertMeta(ctx, meta); err != nil {
			return err
		}
		companion := domain.JournalMeta{
			JournalID:   u.journal.JournalID,
			Name:        name + "_tz",
			Value:       label,
			AuditFields: audit,
		}
		if err := repo.UpsertMeta(ctx, companion); err != nil {
			return err
		}
	}
	return nil
}
