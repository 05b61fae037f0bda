package services

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/dto"
)

// JournalUpdaterSvcFacade is the partial-update engine: given a journal and a
// sparse change request, it applies only the fields present, re-validates the
// cross-cutting invariants a partial change can break and reports whether
// anything observable moved.
type JournalUpdaterSvcFacade interface {
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*dto.UpdateJournalResult, error)
}
