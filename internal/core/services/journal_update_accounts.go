package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
)

// expectedType returns the transaction type account validity must be checked
// against: the request's type when present, else the journal's current type.
// It is computed fresh on every check because a type change in the same
// request alters which accounts are acceptable.
func (s *journalUpdateService) expectedType(req dto.UpdateJournalRequest, journal *domain.Journal) domain.TransactionType {
	if req.Type != nil && *req.Type != "" {
		return domain.NormalizeTransactionType(*req.Type)
	}
	return journal.TransactionType
}

// sourceCandidate returns the account candidate the source leg must be validated
// with: the request's info when supplied, else the journal's current source
// account. Falling back to the current account matters because the request
// may change only the type, which can invalidate an untouched account.
func (u *updateContext) sourceCandidate(req dto.UpdateJournalRequest) dto.AccountRef {
	if req.HasSourceInfo() {
		return req.SourceRef()
	}
	id := u.sourceLeg().AccountID
	return dto.AccountRef{ID: &id}
}

func (u *updateContext) destinationCandidate(req dto.UpdateJournalRequest) dto.AccountRef {
	if req.HasDestinationInfo() {
		return req.DestinationRef()
	}
	id := u.destinationLeg().AccountID
	return dto.AccountRef{ID: &id}
}

// updateAccounts validates both account candidates against the prospective
// type and, only when both pass, resolves and applies them. A resolution
// error falls back to the journal's current account. When source and
// destination resolve to the same account the whole account update is
// abandoned: self-transfers are rejected without touching either leg.
func (s *journalUpdateService) updateAccounts(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	expected := s.expectedType(req, u.journal)
	userID := u.journal.UserID

	srcRef := u.sourceCandidate(req)
	if !s.accounts.ValidateSource(ctx, expected, srcRef, userID) {
		u.skip("source_account", "source account is not valid for type "+string(expected))
		return nil
	}

	source, err := s.accounts.ResolveSource(ctx, expected, srcRef, userID)
	if err != nil {
		logger.Warn("Source account resolution failed, falling back to current account", slog.String("error", err.Error()))
		source, err = s.accountRepo.FindAccountByID(ctx, u.sourceLeg().AccountID)
		if err != nil {
			u.skip("source_account", "source account could not be resolved")
			return nil
		}
	}

	dstRef := u.destinationCandidate(req)
	if !s.accounts.ValidateDestination(ctx, expected, dstRef, source, userID) {
		u.skip("destination_account", "destination account is not valid for type "+string(expected))
		return nil
	}

	destination, err := s.accounts.ResolveDestination(ctx, expected, dstRef, source, userID)
	if err != nil {
		logger.Warn("Destination account resolution failed, falling back to current account", slog.String("error", err.Error()))
		destination, err = s.accountRepo.FindAccountByID(ctx, u.destinationLeg().AccountID)
		if err != nil {
			u.skip("destination_account", "destination account could not be resolved")
			return nil
		}
	}

	if source.AccountID == destination.AccountID {
		logger.Warn("Source and destination resolve to the same account, skipping account update",
			slog.String("account_id", source.AccountID),
			slog.String("journal_id", u.journal.JournalID),
		)
		u.skip("accounts", "source and destination resolve to the same account")
		return nil
	}

	now := time.Now().UTC()
	src := u.sourceLeg()
	dst := u.destinationLeg()
	src.AccountID = source.AccountID
	dst.AccountID = destination.AccountID
	src.LastUpdatedAt = now
	src.LastUpdatedBy = u.actorID
	dst.LastUpdatedAt = now
	dst.LastUpdatedBy = u.actorID

	if err := repo.UpdateLeg(ctx, *src); err != nil {
		return err
	}
	return repo.UpdateLeg(ctx, *dst)
}

// updateType applies a requested type change. Unknown type tokens are a
// no-op, reported as an issue.
func (s *journalUpdateService) updateType(ctx context.Context, repo portsrepo.JournalRepositoryFacade, u *updateContext, req dto.UpdateJournalRequest) error {
	if req.Type == nil || *req.Type == "" {
		return nil
	}
	newType, ok := s.types.FindTransactionType(*req.Type)
	if !ok {
		u.skip("type", "unknown transaction type "+*req.Type)
		return nil
	}
	if newType == u.journal.TransactionType {
		return nil
	}

	oldType := u.journal.TransactionType
	u.journal.TransactionType = newType
	u.touch(time.Now().UTC())
	if err := repo.UpdateJournal(ctx, *u.journal); err != nil {
		return err
	}
	s.recordChange(ctx, u, "type", string(oldType), string(newType))
	return nil
}
