package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
)

// PgxJournalRepository persists journals, legs and their attachments.
type PgxJournalRepository struct {
	BaseRepository
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal and leg data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{db: pool},
		pool:           pool,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// WithTx runs fn against a transaction-scoped copy of the repository. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *PgxJournalRepository) WithTx(ctx context.Context, fn func(repo portsrepo.JournalRepositoryFacade) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	txRepo := &PgxJournalRepository{BaseRepository: BaseRepository{db: tx}, pool: r.pool}
	if err := fn(txRepo); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, group_id, user_id, transaction_type, description, date, date_tz,
		       journal_order, currency_code, bill_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE journal_id = $1;
	`
	var j domain.Journal
	err := r.db.QueryRow(ctx, query, journalID).Scan(
		&j.JournalID,
		&j.GroupID,
		&j.UserID,
		&j.TransactionType,
		&j.Description,
		&j.Date,
		&j.DateTZ,
		&j.Order,
		&j.CurrencyCode,
		&j.BillID,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}
	return &j, nil
}

// FindLegsByJournalID retrieves the journal's legs as a structural pair. A
// journal whose legs are not exactly one negative and one positive amount is
// corrupted ledger data.
func (r *PgxJournalRepository) FindLegsByJournalID(ctx context.Context, journalID string) (*domain.LegPair, error) {
	query := `
		SELECT leg_id, journal_id, account_id, amount, currency_code,
		       foreign_currency_code, foreign_amount, reconciled, balance_dirty,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_legs
		WHERE journal_id = $1
		ORDER BY amount;
	`
	rows, err := r.db.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query legs for journal "+journalID, err)
	}
	defer rows.Close()

	legs := []domain.TransactionLeg{}
	for rows.Next() {
		var l domain.TransactionLeg
		err := rows.Scan(
			&l.LegID,
			&l.JournalID,
			&l.AccountID,
			&l.Amount,
			&l.CurrencyCode,
			&l.ForeignCurrencyCode,
			&l.ForeignAmount,
			&l.Reconciled,
			&l.BalanceDirty,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan leg row for journal "+journalID, err)
		}
		legs = append(legs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating leg rows for journal "+journalID, err)
	}

	pair, err := domain.NewLegPair(legs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "journal "+journalID+" is structurally invalid",
			errors.Join(apperrors.ErrCorruptedLedger, err))
	}
	return pair, nil
}

// UpdateJournal updates the journal's own columns.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		UPDATE journals
		SET transaction_type = $2,
		    description = $3,
		    date = $4,
		    date_tz = $5,
		    journal_order = $6,
		    currency_code = $7,
		    bill_id = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE journal_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		journal.JournalID,
		journal.TransactionType,
		journal.Description,
		journal.Date,
		journal.DateTZ,
		journal.Order,
		journal.CurrencyCode,
		journal.BillID,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+journal.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journal.JournalID + " not found for update")
	}
	return nil
}

// UpdateLeg updates one transaction leg in place.
func (r *PgxJournalRepository) UpdateLeg(ctx context.Context, leg domain.TransactionLeg) error {
	query := `
		UPDATE transaction_legs
		SET account_id = $2,
		    amount = $3,
		    currency_code = $4,
		    foreign_currency_code = $5,
		    foreign_amount = $6,
		    reconciled = $7,
		    balance_dirty = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE leg_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		leg.LegID,
		leg.AccountID,
		leg.Amount,
		leg.CurrencyCode,
		leg.ForeignCurrencyCode,
		leg.ForeignAmount,
		leg.Reconciled,
		leg.BalanceDirty,
		leg.LastUpdatedAt,
		leg.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update leg "+leg.LegID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("leg " + leg.LegID + " not found for update")
	}
	return nil
}

// LinkCategory attaches or, with a nil id, clears the journal's category.
func (r *PgxJournalRepository) LinkCategory(ctx context.Context, journalID string, categoryID *string) error {
	if categoryID == nil {
		_, err := r.db.Exec(ctx, `DELETE FROM journal_categories WHERE journal_id = $1;`, journalID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to clear category for journal "+journalID, err)
		}
		return nil
	}
	query := `
		INSERT INTO journal_categories (journal_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (journal_id) DO UPDATE SET category_id = EXCLUDED.category_id;
	`
	if _, err := r.db.Exec(ctx, query, journalID, *categoryID); err != nil {
		return apperrors.NewAppError(500, "failed to link category for journal "+journalID, err)
	}
	return nil
}

// LinkBudget attaches or, with a nil id, clears the journal's budget.
func (r *PgxJournalRepository) LinkBudget(ctx context.Context, journalID string, budgetID *string) error {
	if budgetID == nil {
		_, err := r.db.Exec(ctx, `DELETE FROM journal_budgets WHERE journal_id = $1;`, journalID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to clear budget for journal "+journalID, err)
		}
		return nil
	}
	query := `
		INSERT INTO journal_budgets (journal_id, budget_id)
		VALUES ($1, $2)
		ON CONFLICT (journal_id) DO UPDATE SET budget_id = EXCLUDED.budget_id;
	`
	if _, err := r.db.Exec(ctx, query, journalID, *budgetID); err != nil {
		return apperrors.NewAppError(500, "failed to link budget for journal "+journalID, err)
	}
	return nil
}

// ReplaceTags applies full replacement semantics to the journal's tag set.
func (r *PgxJournalRepository) ReplaceTags(ctx context.Context, journalID string, tagIDs []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_tags WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to clear tags for journal "+journalID, err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(`INSERT INTO journal_tags (journal_id, tag_id) VALUES ($1, $2);`, journalID, tagID)
	}
	br := r.db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert tags for journal "+journalID, err)
	}
	return nil
}

// UpsertNote inserts or replaces the journal's note.
func (r *PgxJournalRepository) UpsertNote(ctx context.Context, note domain.Note) error {
	query := `
		INSERT INTO journal_notes (journal_id, text, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (journal_id) DO UPDATE
		SET text = EXCLUDED.text,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		note.JournalID, note.Text,
		note.CreatedAt, note.CreatedBy, note.LastUpdatedAt, note.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert note for journal "+note.JournalID, err)
	}
	return nil
}

// DeleteNote removes the journal's note if any.
func (r *PgxJournalRepository) DeleteNote(ctx context.Context, journalID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_notes WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete note for journal "+journalID, err)
	}
	return nil
}

// UpsertMeta inserts or replaces one metadata entry.
func (r *PgxJournalRepository) UpsertMeta(ctx context.Context, meta domain.JournalMeta) error {
	query := `
		INSERT INTO journal_meta (journal_id, name, value, date_value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (journal_id, name) DO UPDATE
		SET value = EXCLUDED.value,
		    date_value = EXCLUDED.date_value,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		meta.JournalID, meta.Name, meta.Value, meta.Date,
		meta.CreatedAt, meta.CreatedBy, meta.LastUpdatedAt, meta.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert meta "+meta.Name+" for journal "+meta.JournalID, err)
	}
	return nil
}

// DeleteMeta removes one metadata entry if present.
func (r *PgxJournalRepository) DeleteMeta(ctx context.Context, journalID string, name string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_meta WHERE journal_id = $1 AND name = $2;`, journalID, name); err != nil {
		return apperrors.NewAppError(500, "failed to delete meta "+name+" for journal "+journalID, err)
	}
	return nil
}

// GroupSnapshot returns the observable content of the journal's group, one
// line per journal, ordered deterministically. A journal without a group
// yields its own line only.
func (r *PgxJournalRepository) GroupSnapshot(ctx context.Context, journalID string) ([]domain.SnapshotLine, error) {
	query := `
		SELECT j.journal_id, j.transaction_type, j.description, j.date, j.journal_order, j.currency_code,
		       src.account_id, dst.account_id, src.amount, dst.amount, dst.currency_code,
		       COALESCE(src.foreign_currency_code, ''), COALESCE(src.foreign_amount::text, ''),
		       COALESCE(dst.foreign_currency_code, ''), COALESCE(dst.foreign_amount::text, '')
		FROM journals j
		JOIN transaction_legs src ON src.journal_id = j.journal_id AND src.amount < 0
		JOIN transaction_legs dst ON dst.journal_id = j.journal_id AND dst.amount >= 0
		WHERE j.journal_id = $1
		   OR (j.group_id IS NOT NULL AND j.group_id = (SELECT group_id FROM journals WHERE journal_id = $1))
		ORDER BY j.journal_order, j.journal_id;
	`
	rows, err := r.db.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group snapshot for journal "+journalID, err)
	}
	defer rows.Close()

	lines := []domain.SnapshotLine{}
	for rows.Next() {
		var line domain.SnapshotLine
		err := rows.Scan(
			&line.JournalID,
			&line.TransactionType,
			&line.Description,
			&line.Date,
			&line.Order,
			&line.CurrencyCode,
			&line.SourceAccountID,
			&line.DestinationAccountID,
			&line.SourceAmount,
			&line.DestinationAmount,
			&line.DestinationCurrencyCode,
			&line.SourceForeignCurrencyCode,
			&line.SourceForeignAmount,
			&line.DestinationForeignCurrencyCode,
			&line.DestinationForeignAmount,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row for journal "+journalID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating snapshot rows for journal "+journalID, err)
	}
	return lines, nil
}
