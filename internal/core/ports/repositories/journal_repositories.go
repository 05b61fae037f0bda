package repositories

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for journals, their
// legs and their attachments. The update engine never creates or deletes
// journals, groups or legs; it only mutates them in place.
type JournalRepositoryFacade interface {
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindLegsByJournalID returns the journal's two legs as a structural
	// pair. A journal without exactly one negative and one positive leg is
	// corrupted ledger data; implementations return an error wrapping
	// apperrors.ErrCorruptedLedger.
	FindLegsByJournalID(ctx context.Context, journalID string) (*domain.LegPair, error)

	UpdateJournal(ctx context.Context, journal domain.Journal) error
	UpdateLeg(ctx context.Context, leg domain.TransactionLeg) error

	// LinkCategory and LinkBudget attach or, with a nil id, clear the link.
	LinkCategory(ctx context.Context, journalID string, categoryID *string) error
	LinkBudget(ctx context.Context, journalID string, budgetID *string) error

	// ReplaceTags applies full replacement semantics.
	ReplaceTags(ctx context.Context, journalID string, tagIDs []string) error

	UpsertNote(ctx context.Context, note domain.Note) error
	DeleteNote(ctx context.Context, journalID string) error

	UpsertMeta(ctx context.Context, meta domain.JournalMeta) error
	DeleteMeta(ctx context.Context, journalID string, name string) error

	// GroupSnapshot returns the observable content of the journal's group,
	// ordered deterministically. For a journal without a group it returns
	// the journal's own line only.
	GroupSnapshot(ctx context.Context, journalID string) ([]domain.SnapshotLine, error)
}

// JournalRepositoryWithTx extends the journal repository with the ability to
// run a function against a transaction-scoped copy of itself. Everything
// executed inside fn commits or rolls back as one unit.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade

	WithTx(ctx context.Context, fn func(repo JournalRepositoryFacade) error) error
}
