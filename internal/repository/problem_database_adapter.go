package repository

import (
	"context"
	"fmt"
	"strings"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/repository/models"
	"exam-worksheet/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	problemsTable       = "problems"
	taggedProblemsTable = "tagged_problems"

	problemColumns = `id, subject, chapter_id, tags, related_subjects, difficulty, problem_type,
		correct_rate, exam_year, answer, problem_filename, answer_filename`
)

// ProblemDatabaseAdapter implements domain.ProblemRepository over one problem table.
// The default namespace lives in problems and narrows by chapter_id; the tagged and
// economy namespaces live in tagged_problems and narrow by tag overlap.
type ProblemDatabaseAdapter struct {
	db          *sqlx.DB
	table       string
	chapterMode domain.ChapterMode
}

// NewProblemDatabaseAdapter creates the adapter for surrogate-keyed problems
func NewProblemDatabaseAdapter(db *sqlx.DB) domain.ProblemRepository {
	return &ProblemDatabaseAdapter{db: db, table: problemsTable, chapterMode: domain.ChapterModeTree}
}

// NewTaggedProblemDatabaseAdapter creates the adapter for structured-ID problems
func NewTaggedProblemDatabaseAdapter(db *sqlx.DB) domain.ProblemRepository {
	return &ProblemDatabaseAdapter{db: db, table: taggedProblemsTable, chapterMode: domain.ChapterModeTags}
}

// FindByIDs implements domain.ProblemRepository
func (a *ProblemDatabaseAdapter) FindByIDs(ctx context.Context, ids []string) ([]*domain.Problem, error) {
	if len(ids) == 0 {
		return []*domain.Problem{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, problemColumns, a.table)

	var rows []models.Problem
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to find problems by ids in %s: %w", a.table, err)
	}
	return toDomainProblems(rows), nil
}

// ListBySubject implements domain.ProblemRepository
func (a *ProblemDatabaseAdapter) ListBySubject(ctx context.Context, q domain.ProblemQuery) ([]*domain.Problem, error) {
	var (
		conds []string
		args  []interface{}
	)
	if q.Subject != "" {
		args = append(args, q.Subject)
		conds = append(conds, fmt.Sprintf("(subject = $%d OR $%d = ANY(related_subjects))", len(args), len(args)))
	}
	if len(q.ChapterIDs) > 0 {
		args = append(args, pq.Array(q.ChapterIDs))
		if a.chapterMode == domain.ChapterModeTags {
			conds = append(conds, fmt.Sprintf("tags && $%d", len(args)))
		} else {
			conds = append(conds, fmt.Sprintf("chapter_id = ANY($%d)", len(args)))
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, problemColumns, a.table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	var rows []models.Problem
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list problems in %s: %w", a.table, err)
	}
	return toDomainProblems(rows), nil
}

// SaveProblem implements domain.ProblemRepository
func (a *ProblemDatabaseAdapter) SaveProblem(ctx context.Context, problem *domain.Problem) error {
	if problem == nil {
		return fmt.Errorf("cannot save nil problem")
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES (:id, :subject, :chapter_id, :tags, :related_subjects, :difficulty, :problem_type,
			:correct_rate, :exam_year, :answer, :problem_filename, :answer_filename)
		ON CONFLICT (id) DO UPDATE SET
			subject = EXCLUDED.subject,
			chapter_id = EXCLUDED.chapter_id,
			tags = EXCLUDED.tags,
			related_subjects = EXCLUDED.related_subjects,
			difficulty = EXCLUDED.difficulty,
			problem_type = EXCLUDED.problem_type,
			correct_rate = EXCLUDED.correct_rate,
			exam_year = EXCLUDED.exam_year,
			answer = EXCLUDED.answer,
			problem_filename = EXCLUDED.problem_filename,
			answer_filename = EXCLUDED.answer_filename`, a.table, problemColumns)

	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, toModelProblem(problem)); err != nil {
		return fmt.Errorf("failed to save problem %s: %w", problem.ID, err)
	}
	return nil
}

func toDomainProblems(rows []models.Problem) []*domain.Problem {
	out := make([]*domain.Problem, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainProblem(&rows[i]))
	}
	return out
}

func toDomainProblem(m *models.Problem) *domain.Problem {
	if m == nil {
		return nil
	}
	p := &domain.Problem{
		ID:              m.ID,
		Subject:         m.Subject.String,
		ChapterID:       util.NullStringToPtr(m.ChapterID),
		Tags:            []string(m.Tags),
		RelatedSubjects: []string(m.RelatedSubjects),
		Difficulty:      m.Difficulty.String,
		ProblemType:     m.ProblemType.String,
		CorrectRate:     util.NullFloat64ToPtr(m.CorrectRate),
		ExamYear:        util.NullInt64ToIntPtr(m.ExamYear),
		Answer:          util.NullInt64ToIntPtr(m.Answer),
		ProblemFilename: m.ProblemFilename.String,
		AnswerFilename:  m.AnswerFilename.String,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func toModelProblem(p *domain.Problem) *models.Problem {
	if p == nil {
		return nil
	}
	m := &models.Problem{
		ID:              p.ID,
		Subject:         util.StringToNullString(p.Subject),
		ChapterID:       util.StringPtrToNullString(p.ChapterID),
		Tags:            pq.StringArray(p.Tags),
		RelatedSubjects: pq.StringArray(p.RelatedSubjects),
		Difficulty:      util.StringToNullString(p.Difficulty),
		ProblemType:     util.StringToNullString(p.ProblemType),
		ProblemFilename: util.StringToNullString(p.ProblemFilename),
		AnswerFilename:  util.StringToNullString(p.AnswerFilename),
	}
	if m.Tags == nil {
		m.Tags = pq.StringArray{}
	}
	if m.RelatedSubjects == nil {
		m.RelatedSubjects = pq.StringArray{}
	}
	if p.CorrectRate != nil {
		m.CorrectRate.Float64, m.CorrectRate.Valid = *p.CorrectRate, true
	}
	if p.ExamYear != nil {
		m.ExamYear.Int64, m.ExamYear.Valid = int64(*p.ExamYear), true
	}
	if p.Answer != nil {
		m.Answer.Int64, m.Answer.Valid = int64(*p.Answer), true
	}
	return m
}
