package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/repository/models"
	"exam-worksheet/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const worksheetColumns = `id, title, author, owner_id, selected_problem_ids, filter_criteria, sort_rules,
		is_public, id_kind, created_at, updated_at`

// WorksheetDatabaseAdapter implements domain.WorksheetRepository using sqlx
type WorksheetDatabaseAdapter struct {
	db *sqlx.DB
}

// NewWorksheetDatabaseAdapter creates a new instance of WorksheetDatabaseAdapter
func NewWorksheetDatabaseAdapter(db *sqlx.DB) domain.WorksheetRepository {
	return &WorksheetDatabaseAdapter{db: db}
}

// Create implements domain.WorksheetRepository. ID and timestamps are assigned here when unset.
func (a *WorksheetDatabaseAdapter) Create(ctx context.Context, worksheet *domain.Worksheet) error {
	if worksheet == nil {
		return fmt.Errorf("cannot create nil worksheet")
	}
	if worksheet.ID == "" {
		worksheet.ID = util.NewULID()
	}
	now := time.Now()
	worksheet.CreatedAt = now
	worksheet.UpdatedAt = now

	query := `INSERT INTO worksheets (` + worksheetColumns + `)
		VALUES (:id, :title, :author, :owner_id, :selected_problem_ids, :filter_criteria, :sort_rules,
			:is_public, :id_kind, :created_at, :updated_at)`

	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, toModelWorksheet(worksheet)); err != nil {
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	return nil
}

// GetByID implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Worksheet, error) {
	query := `SELECT ` + worksheetColumns + ` FROM worksheets WHERE id = $1`

	var m models.Worksheet
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worksheet %s: %w", id, err)
	}
	return toDomainWorksheet(&m), nil
}

// Update implements domain.WorksheetRepository. Ownership and created_at are never changed.
func (a *WorksheetDatabaseAdapter) Update(ctx context.Context, worksheet *domain.Worksheet) error {
	if worksheet == nil {
		return fmt.Errorf("cannot update nil worksheet")
	}
	worksheet.UpdatedAt = time.Now()

	query := `UPDATE worksheets SET
			title = :title,
			author = :author,
			selected_problem_ids = :selected_problem_ids,
			filter_criteria = :filter_criteria,
			sort_rules = :sort_rules,
			id_kind = :id_kind,
			updated_at = :updated_at
		WHERE id = :id`

	res, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, toModelWorksheet(worksheet))
	if err != nil {
		return fmt.Errorf("failed to update worksheet %s: %w", worksheet.ID, err)
	}
	return expectAffected(res, worksheet.ID)
}

// SetVisibility implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) SetVisibility(ctx context.Context, id string, public bool) error {
	query := `UPDATE worksheets SET is_public = $1, updated_at = $2 WHERE id = $3`

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, public, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set visibility of worksheet %s: %w", id, err)
	}
	return expectAffected(res, id)
}

// Delete implements domain.WorksheetRepository. Dependent rows cascade in the store.
func (a *WorksheetDatabaseAdapter) Delete(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worksheet %s: %w", id, err)
	}
	return expectAffected(res, id)
}

// ListPublic implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) ListPublic(ctx context.Context, search string, page domain.Page) ([]*domain.Worksheet, int, error) {
	where := `is_public = TRUE`
	var args []interface{}
	if search = strings.TrimSpace(search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		where += ` AND title ILIKE $1`
	}
	return a.list(ctx, where, args, page)
}

// ListByOwner implements domain.WorksheetRepository
func (a *WorksheetDatabaseAdapter) ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]*domain.Worksheet, int, error) {
	return a.list(ctx, `owner_id = $1`, []interface{}{ownerID}, page)
}

func (a *WorksheetDatabaseAdapter) list(ctx context.Context, where string, args []interface{}, page domain.Page) ([]*domain.Worksheet, int, error) {
	exec := GetExecutor(ctx, a.db)

	var total int
	if err := exec.GetContext(ctx, &total, `SELECT COUNT(*) FROM worksheets WHERE `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count worksheets: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM worksheets WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		worksheetColumns, where, n+1, n+2)
	pageArgs := append(append([]interface{}{}, args...), page.Size, page.Offset())

	var rows []models.Worksheet
	if err := exec.SelectContext(ctx, &rows, query, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list worksheets: %w", err)
	}

	out := make([]*domain.Worksheet, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainWorksheet(&rows[i]))
	}
	return out, total, nil
}

func expectAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewWorksheetNotFoundError(id)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toDomainWorksheet(m *models.Worksheet) *domain.Worksheet {
	if m == nil {
		return nil
	}
	w := &domain.Worksheet{
		ID:         m.ID,
		Title:      m.Title,
		Author:     m.Author,
		OwnerID:    util.NullStringToPtr(m.OwnerID),
		ProblemIDs: []string(m.ProblemIDs),
		Criteria:   toDomainCriteria(m.Criteria.Data),
		SortRules:  make([]domain.SortRule, 0, len(m.SortRules.Data)),
		IsPublic:   m.IsPublic,
		IDKind:     domain.ProblemIDKind(m.IDKind),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if w.ProblemIDs == nil {
		w.ProblemIDs = []string{}
	}
	for _, r := range m.SortRules.Data {
		w.SortRules = append(w.SortRules, domain.SortRule{Field: domain.SortField(r.Field), Direction: domain.SortDirection(r.Direction)})
	}
	return w
}

func toModelWorksheet(w *domain.Worksheet) *models.Worksheet {
	if w == nil {
		return nil
	}
	m := &models.Worksheet{
		ID:         w.ID,
		Title:      w.Title,
		Author:     w.Author,
		OwnerID:    util.StringPtrToNullString(w.OwnerID),
		ProblemIDs: pq.StringArray(w.ProblemIDs),
		Criteria:   models.JSONColumn[models.FilterCriteria]{Data: toModelCriteria(w.Criteria)},
		IsPublic:   w.IsPublic,
		IDKind:     string(w.IDKind),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
	rules := make([]models.SortRule, 0, len(w.SortRules))
	for _, r := range w.SortRules {
		rules = append(rules, models.SortRule{Field: string(r.Field), Direction: string(r.Direction)})
	}
	m.SortRules = models.JSONColumn[[]models.SortRule]{Data: rules}
	return m
}

func toDomainCriteria(m models.FilterCriteria) domain.FilterCriteria {
	c := domain.FilterCriteria{
		SelectedChapters:     m.SelectedChapters,
		SelectedDifficulties: m.SelectedDifficulties,
		SelectedProblemTypes: m.SelectedProblemTypes,
		SelectedSubjects:     m.SelectedSubjects,
		Count:                m.ProblemCount,
	}
	if len(m.CorrectRateRange) == 2 {
		c.CorrectRateRange = &domain.RateRange{Min: m.CorrectRateRange[0], Max: m.CorrectRateRange[1]}
	}
	return c.Normalize()
}

func toModelCriteria(c domain.FilterCriteria) models.FilterCriteria {
	r := c.RateRangeOrDefault()
	return models.FilterCriteria{
		SelectedChapters:     c.SelectedChapters,
		SelectedDifficulties: c.SelectedDifficulties,
		SelectedProblemTypes: c.SelectedProblemTypes,
		SelectedSubjects:     c.SelectedSubjects,
		CorrectRateRange:     []float64{r.Min, r.Max},
		ProblemCount:         c.Count,
	}
}
