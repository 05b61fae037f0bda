package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
	"github.com/ledgerbook/ledgerbook/internal/platform/config"
)

var (
	ErrJournalNotFound = errors.New("journal not found")
	ErrActorMissing    = errors.New("acting user is required")
)

// journalUpdateService applies a sparse update map to an existing two-leg
// journal. Every sub-step is gated on field presence; a step that fails its
// own validation records an issue and skips its effect instead of aborting
// the call. Only structural violations (a journal without its two balancing
// legs) and persistence failures abort the update.
type journalUpdateService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	accounts    portssvc.AccountValidatorSvcFacade
	currency    portssvc.CurrencyResolverSvcFacade
	bills       portssvc.BillResolverSvcFacade
	categories  portssvc.CategoryResolverSvcFacade
	budgets     portssvc.BudgetResolverSvcFacade
	tags        portssvc.TagResolverSvcFacade
	types       portssvc.TransactionTypeSvcFacade
	audit       portssvc.AuditSvcFacade

	// Timezone handling is injected, never read from ambient state.
	location *time.Location
	forceUTC bool
}

// NewJournalUpdateService creates the journal update engine.
func NewJournalUpdateService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	accounts portssvc.AccountValidatorSvcFacade,
	currency portssvc.CurrencyResolverSvcFacade,
	bills portssvc.BillResolverSvcFacade,
	categories portssvc.CategoryResolverSvcFacade,
	budgets portssvc.BudgetResolverSvcFacade,
	tags portssvc.TagResolverSvcFacade,
	types portssvc.TransactionTypeSvcFacade,
	audit portssvc.AuditSvcFacade,
	cfg *config.Config,
) portssvc.JournalUpdaterSvcFacade {
	loc := time.UTC
	forceUTC := false
	if cfg != nil {
		if cfg.Location != nil {
			loc = cfg.Location
		}
		forceUTC = cfg.ForceUTC
	}
	return &journalUpdateService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		accounts:    accounts,
		currency:    currency,
		bills:       bills,
		categories:  categories,
		budgets:     budgets,
		tags:        tags,
		types:       types,
		audit:       audit,
		location:    loc,
		forceUTC:    forceUTC,
	}
}

// Ensure journalUpdateService implements the facade.
var _ portssvc.JournalUpdaterSvcFacade = (*journalUpdateService)(nil)

// updateContext carries the per-call mutable state: the journal, its cached
// leg pair and the accumulated per-field issues. It is built once per update
// invocation and discarded afterwards, so stale caches cannot leak between
// calls.
type updateContext struct {
	journal *domain.Journal
	legs    *domain.LegPair
	actorID string
	issues  []dto.FieldIssue

	// events buffers audit events until the transaction commits. A rolled
	// back update must leave no audit trail of changes that never
	// happened.
	events []domain.AuditEvent
}

// sourceLeg returns the cached negative-amount leg.
func (u *updateContext) sourceLeg() *domain.TransactionLeg {
	return &u.legs.Source
}

// destinationLeg returns the cached positive-amount leg.
func (u *updateContext) destinationLeg() *domain.TransactionLeg {
	return &u.legs.Destination
}

// refreshLegs re-reads the leg pair after a persistence step.
func (u *updateContext) refreshLegs(ctx context.Context, repo portsrepo.JournalRepositoryFacade) error {
	legs, err := repo.FindLegsByJournalID(ctx, u.journal.JournalID)
	if err != nil {
		return err
	}
	u.legs = legs
	return nil
}

// skip records a skipped or failed sub-update without failing the call.
func (u *updateContext) skip(field, reason string) {
	u.issues = append(u.issues, dto.FieldIssue{Field: field, Reason: reason})
}

// touch stamps the audit fields of the journal for this actor.
func (u *updateContext) touch(now time.Time) {
	u.journal.LastUpdatedAt = now
	u.journal.LastUpdatedBy = u.actorID
}

// UpdateJournal applies the sparse request to the journal. The whole update
// runs inside one repository transaction: either every applied step commits
// or none does. The change-detection fingerprint is taken from the
// pre-transaction snapshot and compared with a post-commit one.
func (s *journalUpdateService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*dto.UpdateJournalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actorID == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrActorMissing)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJournalNotFound, journalID)
		}
		logger.Error("Failed to load journal for update", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	legs, err := s.journalRepo.FindLegsByJournalID(ctx, journalID)
	if err != nil {
		// A journal without its two balancing legs is corrupted ledger
		// data; never proceed silently.
		logger.Error("Failed to resolve journal legs", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	before, err := s.journalRepo.GroupSnapshot(ctx, journalID)
	if err != nil {
		logger.Error("Failed to snapshot group before update", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}
	beforeHash := GroupFingerprint(before)

	u := &updateContext{journal: journal, legs: legs, actorID: actorID}

	err = s.journalRepo.WithTx(ctx, func(repo portsrepo.JournalRepositoryFacade) error {
		if stepErr := s.updateAccounts(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateType(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateScalarFields(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateBill(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateCategory(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateBudget(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateTags(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateReconciled(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateNotes(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateMetaStrings(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateMetaDates(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateCurrency(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		if stepErr := s.updateAmount(ctx, repo, u, req); stepErr != nil {
			return stepErr
		}
		return s.updateForeignAmount(ctx, repo, u, req)
	})
	if err != nil {
		logger.Error("Journal update aborted", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}

	// The transaction committed; deliver the buffered audit events.
	// Delivery failures are logged and do not fail the update.
	for _, event := range u.events {
		if auditErr := s.audit.RecordChange(ctx, event); auditErr != nil {
			logger.Warn("Failed to record audit event",
				slog.String("field", event.Field),
				slog.String("journal_id", event.JournalID),
				slog.String("error", auditErr.Error()),
			)
		}
	}

	after, err := s.journalRepo.GroupSnapshot(ctx, journalID)
	if err != nil {
		logger.Error("Failed to snapshot group after update", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, err
	}
	afterHash := GroupFingerprint(after)

	// Report the final persisted state, not the in-memory view.
	if err := u.refreshLegs(ctx, s.journalRepo); err != nil {
		return nil, err
	}

	result := &dto.UpdateJournalResult{
		Journal:     dto.ToJournalResponse(u.journal),
		Source:      dto.ToLegResponse(u.sourceLeg()),
		Destination: dto.ToLegResponse(u.destinationLeg()),
		Changed:     beforeHash != afterHash,
		Issues:      u.issues,
	}

	logger.Info("Journal update finished",
		slog.String("journal_id", journalID),
		slog.Bool("changed", result.Changed),
		slog.Int("issue_count", len(u.issues)),
	)
	return result, nil
}

// recordChange buffers a field-level audit event on the update context. The
// buffer is delivered to the audit sink only after the transaction commits,
// so a rollback discards the events along with the data changes.
func (s *journalUpdateService) recordChange(ctx context.Context, u *updateContext, field, oldValue, newValue string) {
	u.events = append(u.events, domain.AuditEvent{
		JournalID: u.journal.JournalID,
		ActorID:   u.actorID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		CreatedAt: time.Now().UTC(),
	})
}
