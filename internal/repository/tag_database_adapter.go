package repository

import (
	"context"
	"fmt"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// TagDatabaseAdapter implements domain.TagRepository over the chapter_tags table
type TagDatabaseAdapter struct {
	db *sqlx.DB
}

// NewTagDatabaseAdapter creates a new instance of TagDatabaseAdapter
func NewTagDatabaseAdapter(db *sqlx.DB) domain.TagRepository {
	return &TagDatabaseAdapter{db: db}
}

// ListTagPaths implements domain.TagRepository
func (a *TagDatabaseAdapter) ListTagPaths(ctx context.Context, subject string) ([]domain.TagPathRow, error) {
	query := `SELECT subject, ids, labels FROM chapter_tags WHERE subject = $1 ORDER BY id`

	var rows []models.TagPath
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, subject); err != nil {
		return nil, fmt.Errorf("failed to list tag paths for %s: %w", subject, err)
	}

	out := make([]domain.TagPathRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TagPathRow{Subject: r.Subject, IDs: []string(r.IDs), Labels: []string(r.Labels)})
	}
	return out, nil
}

// SaveTagPath implements domain.TagRepository
func (a *TagDatabaseAdapter) SaveTagPath(ctx context.Context, row domain.TagPathRow) error {
	query := `INSERT INTO chapter_tags (subject, ids, labels) VALUES (:subject, :ids, :labels)`

	model := models.TagPath{Subject: row.Subject, IDs: pq.StringArray(row.IDs), Labels: pq.StringArray(row.Labels)}
	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save tag path for %s: %w", row.Subject, err)
	}
	return nil
}
