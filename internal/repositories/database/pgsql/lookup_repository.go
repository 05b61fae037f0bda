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

// PgxCurrencyRepository reads currencies.
type PgxCurrencyRepository struct {
	BaseRepository
}

func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var c domain.Currency
	err := row.Scan(
		&c.CurrencyID, &c.Code, &c.Symbol, &c.Name, &c.DecimalPlaces,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
	}
	return &c, nil
}

const currencyColumns = `currency_id, code, symbol, name, decimal_places, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`
	return scanCurrency(r.db.QueryRow(ctx, query, currencyID))
}

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`
	return scanCurrency(r.db.QueryRow(ctx, query, code))
}

// PgxCategoryRepository reads and writes categories.
type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.CategoryID, &c.UserID, &c.Name, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan category row", err)
	}
	return &c, nil
}

const categoryColumns = `category_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	return scanCategory(r.db.QueryRow(ctx, query, categoryID))
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND name = $2;`
	return scanCategory(r.db.QueryRow(ctx, query, userID, name))
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert category "+category.CategoryID, err)
	}
	return nil
}

// PgxBudgetRepository reads and writes budgets.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.BudgetID, &b.UserID, &b.Name, &b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
	}
	return &b, nil
}

const budgetColumns = `budget_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	return scanBudget(r.db.QueryRow(ctx, query, budgetID))
}

func (r *PgxBudgetRepository) FindBudgetByName(ctx context.Context, userID string, name string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND name = $2;`
	return scanBudget(r.db.QueryRow(ctx, query, userID, name))
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		budget.BudgetID, budget.UserID, budget.Name,
		budget.CreatedAt, budget.CreatedBy, budget.LastUpdatedAt, budget.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget "+budget.BudgetID, err)
	}
	return nil
}

// PgxTagRepository reads and writes tags.
type PgxTagRepository struct {
	BaseRepository
}

func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

func (r *PgxTagRepository) FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error) {
	query := `SELECT tag_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by FROM tags WHERE user_id = $1 AND name = $2;`
	var t domain.Tag
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&t.TagID, &t.UserID, &t.Name, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan tag row", err)
	}
	return &t, nil
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
		INSERT INTO tags (tag_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		tag.TagID, tag.UserID, tag.Name,
		tag.CreatedAt, tag.CreatedBy, tag.LastUpdatedAt, tag.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert tag "+tag.TagID, err)
	}
	return nil
}

// PgxBillRepository reads bills; updates never create bills.
type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	err := row.Scan(&b.BillID, &b.UserID, &b.Name, &b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan bill row", err)
	}
	return &b, nil
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT bill_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by FROM bills WHERE bill_id = $1;`
	return scanBill(r.db.QueryRow(ctx, query, billID))
}

func (r *PgxBillRepository) FindBillByName(ctx context.Context, userID string, name string) (*domain.Bill, error) {
	query := `SELECT bill_id, user_id, name, created_at, created_by, last_updated_at, last_updated_by FROM bills WHERE user_id = $1 AND name = $2;`
	return scanBill(r.db.QueryRow(ctx, query, userID, name))
}

// PgxAuditEventRepository appends audit events.
type PgxAuditEventRepository struct {
	BaseRepository
}

func newPgxAuditEventRepository(pool *pgxpool.Pool) portsrepo.AuditEventRepositoryFacade {
	return &PgxAuditEventRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.AuditEventRepositoryFacade = (*PgxAuditEventRepository)(nil)

func (r *PgxAuditEventRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	query := `
		INSERT INTO journal_audit_events (event_id, journal_id, actor_id, field, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		event.EventID, event.JournalID, event.ActorID,
		event.Field, event.OldValue, event.NewValue, event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event for journal "+event.JournalID, err)
	}
	return nil
}
