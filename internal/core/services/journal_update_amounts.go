package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
	"github.com/shopspring/decimal"
)

// updateCurrency relabels the journal and both legs with the resolved
// currency. Amounts are never converted; a currency change is a relabeling.
func (s *journalUpdateService) updateCurrency(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.CurrencyID == nil && req.CurrencyCode == nil {
		return nil
	}

	currency, err := s.currency.FindCurrency(ctx, req.CurrencyID, req.CurrencyCode)
	if err != nil || currency == nil {
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Currency resolution failed, keeping existing currency", slog.String("error", err.Error()))
		}
		u.skip("currency", "currency could not be resolved")
		return nil
	}

	now := time.Now().UTC()
	u.journal.CurrencyCode = currency.Code
	u.touch(now)
	if err := repo.UpdateJournal(ctx, *u.journal); err != nil {
		return err
	}

	src := u.sourceLeg()
	dst := u.destinationLeg()
	src.CurrencyCode = currency.Code
	dst.CurrencyCode = currency.Code
	src.LastUpdatedAt = now
	src.LastUpdatedBy = u.actorID
	dst.LastUpdatedAt = now
	dst.LastUpdatedBy = u.actorID
	if err := repo.UpdateLeg(ctx, *src); err != nil {
		return err
	}
	return repo.UpdateLeg(ctx, *dst)
}

// updateAmount writes the signed primary amount to both legs: negated
// absolute value on the source, positive absolute value on the destination.
// Both legs are marked balance-dirty so downstream balance caches recompute.
func (s *journalUpdateService) updateAmount(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.Amount == nil {
		return nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(*req.Amount))
	if err != nil {
		u.skip("amount", "unparseable amount "+*req.Amount)
		return nil
	}
	absolute := amount.Abs()

	now := time.Now().UTC()
	src := u.sourceLeg()
	dst := u.destinationLeg()
	src.Amount = absolute.Neg()
	dst.Amount = absolute
	src.BalanceDirty = true
	dst.BalanceDirty = true
	src.LastUpdatedAt = now
	src.LastUpdatedBy = u.actorID
	dst.LastUpdatedAt = now
	dst.LastUpdatedBy = u.actorID

	if err := repo.UpdateLeg(ctx, *src); err != nil {
		return err
	}
	return repo.UpdateLeg(ctx, *dst)
}

// resolveForeignCurrency resolves the foreign currency for the update: the
// request override when present, else the source leg's existing foreign
// currency. Resolution failures degrade to nil.
func (s *journalUpdateService) resolveForeignCurrency(ctx context.Context, u *updateContext, req dto.UpdateJournalRequest) *domain.Currency {
	if req.ForeignCurrencyID != nil || req.ForeignCurrencyCode != nil {
		currency, err := s.currency.FindCurrency(ctx, req.ForeignCurrencyID, req.ForeignCurrencyCode)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Foreign currency resolution failed", slog.String("error", err.Error()))
			return nil
		}
		if currency != nil {
			return currency
		}
	}
	if code := u.sourceLeg().ForeignCurrencyCode; code != nil {
		currency, err := s.currency.FindCurrency(ctx, nil, code)
		if err != nil {
			return nil
		}
		return currency
	}
	return nil
}

// swapCondition reports whether the foreign-amount swap applies: the journal
// is a transfer, or the two legs sit on opposite sides of the asset/liability
// boundary. It inspects the current legs' accounts directly, using the fixed
// liability set {loan, debt, mortgage} against asset.
func (s *journalUpdateService) swapCondition(ctx context.Context, u *updateContext) bool {
	if u.journal.TransactionType == domain.Transfer {
		return true
	}
	source, err := s.accountRepo.FindAccountByID(ctx, u.sourceLeg().AccountID)
	if err != nil {
		return false
	}
	destination, err := s.accountRepo.FindAccountByID(ctx, u.destinationLeg().AccountID)
	if err != nil {
		return false
	}
	return domain.BetweenAssetAndLiability(source, destination)
}

// updateForeignAmount reconciles the foreign currency and amount of both
// legs.
//
// With a foreign currency and a parsed foreign amount, the source leg gets
// the negated foreign value. For transfers and asset/liability crossings the
// destination's primary currency and amount are overwritten with the foreign
// ones, and its foreign fields mirror the source leg's primary values; the
// destination's visible amount then reflects the foreign-denominated value
// while both legs' foreign fields stay symmetric. Otherwise the destination
// simply receives the positive foreign value.
//
// The literal request value "0" clears the foreign fields on both legs.
// Anything less than that is a no-op, but the cached legs are refreshed.
func (s *journalUpdateService) updateForeignAmount(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.ForeignCurrencyID == nil && req.ForeignCurrencyCode == nil && req.ForeignAmount == nil {
		return nil
	}

	foreignCurrency := s.resolveForeignCurrency(ctx, u, req)
	if foreignCurrency != nil && foreignCurrency.Code == u.journal.CurrencyCode {
		// Foreign currency must differ from the primary currency.
		u.skip("foreign_currency", "foreign currency equals the primary currency")
		return nil
	}

	var foreignAmount *decimal.Decimal
	if req.ForeignAmount != nil && strings.TrimSpace(*req.ForeignAmount) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(*req.ForeignAmount))
		if err != nil {
			u.skip("foreign_amount", "unparseable foreign amount "+*req.ForeignAmount)
		} else if !parsed.IsZero() {
			foreignAmount = &parsed
		}
	}

	now := time.Now().UTC()
	src := u.sourceLeg()
	dst := u.destinationLeg()

	switch {
	case foreignCurrency != nil && foreignAmount != nil:
		absolute := foreignAmount.Abs()
		negated := absolute.Neg()
		src.ForeignCurrencyCode = &foreignCurrency.Code
		src.ForeignAmount = &negated

		if s.swapCondition(ctx, u) {
			// The nominally foreign value becomes the destination's
			// native amount; its foreign fields mirror the source
			// leg's primary ones.
			primaryCode := u.journal.CurrencyCode
			primaryAmount := src.Amount.Abs()
			dst.CurrencyCode = foreignCurrency.Code
			dst.Amount = absolute
			dst.ForeignCurrencyCode = &primaryCode
			dst.ForeignAmount = &primaryAmount
		} else {
			dst.ForeignCurrencyCode = &foreignCurrency.Code
			dst.ForeignAmount = &absolute
		}

	case req.ForeignAmount != nil && strings.TrimSpace(*req.ForeignAmount) == "0":
		src.ForeignCurrencyCode = nil
		src.ForeignAmount = nil
		dst.ForeignCurrencyCode = nil
		dst.ForeignAmount = nil

	default:
		// Insufficient information; leave the legs alone but drop the
		// cached pair in case earlier steps were persisted.
		return u.refreshLegs(ctx, repo)
	}

	src.LastUpdatedAt = now
	src.LastUpdatedBy = u.actorID
	dst.LastUpdatedAt = now
	dst.LastUpdatedBy = u.actorID
	if err := repo.UpdateLeg(ctx, *src); err != nil {
		return err
	}
	return repo.UpdateLeg(ctx, *dst)
}
