package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"exam-worksheet/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var problemRowColumns = []string{
	"id", "subject", "chapter_id", "tags", "related_subjects", "difficulty", "problem_type",
	"correct_rate", "exam_year", "answer", "problem_filename", "answer_filename",
}

func TestProblemFindByIDs(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProblemDatabaseAdapter(db)

	rows := sqlmock.NewRows(problemRowColumns).
		AddRow("p1", "수학", "c-1-1", "{}", "{}", "중", "객관식", 62.5, int64(2023), int64(3), "p1.png", "p1_a.png").
		AddRow("p2", "수학", nil, "{}", "{}", nil, nil, nil, nil, nil, "p2.png", nil)

	mock.ExpectQuery(`SELECT (.+) FROM problems WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	result, err := repo.FindByIDs(context.Background(), []string{"p1", "p2", "gone"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "p1", result[0].ID)
	require.NotNil(t, result[0].ChapterID)
	assert.Equal(t, "c-1-1", *result[0].ChapterID)
	require.NotNil(t, result[0].CorrectRate)
	assert.Equal(t, 62.5, *result[0].CorrectRate)
	require.NotNil(t, result[0].ExamYear)
	assert.Equal(t, 2023, *result[0].ExamYear)
	assert.True(t, result[0].HasAnswer())

	assert.Nil(t, result[1].ChapterID)
	assert.Nil(t, result[1].CorrectRate)
	assert.Nil(t, result[1].ExamYear)
	assert.Equal(t, []string{}, result[1].Tags)
	assert.False(t, result[1].HasAnswer())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProblemFindByIDs_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProblemDatabaseAdapter(db)

	result, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProblemFindByIDs_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTaggedProblemDatabaseAdapter(db)

	mock.ExpectQuery(`FROM tagged_problems WHERE id = ANY\(\$1\)`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByIDs(context.Background(), []string{"x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tagged_problems")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProblemListBySubject(t *testing.T) {
	tests := []struct {
		name    string
		newRepo func(*sqlx.DB) domain.ProblemRepository
		query   domain.ProblemQuery
		pattern string
		args    int
	}{
		{
			name:    "tree mode with chapters",
			newRepo: NewProblemDatabaseAdapter,
			query:   domain.ProblemQuery{Subject: "수학", ChapterIDs: []string{"c-1-1", "c-1-2"}},
			pattern: `FROM problems WHERE \(subject = \$1 OR \$1 = ANY\(related_subjects\)\) AND chapter_id = ANY\(\$2\) ORDER BY id`,
			args:    2,
		},
		{
			name:    "tags mode with chapters",
			newRepo: NewTaggedProblemDatabaseAdapter,
			query:   domain.ProblemQuery{Subject: "경제", ChapterIDs: []string{"1-1"}},
			pattern: `FROM tagged_problems WHERE \(subject = \$1 OR \$1 = ANY\(related_subjects\)\) AND tags && \$2 ORDER BY id`,
			args:    2,
		},
		{
			name:    "chapters only",
			newRepo: NewProblemDatabaseAdapter,
			query:   domain.ProblemQuery{ChapterIDs: []string{"c-1"}},
			pattern: `FROM problems WHERE chapter_id = ANY\(\$1\) ORDER BY id`,
			args:    1,
		},
		{
			name:    "no constraints",
			newRepo: NewProblemDatabaseAdapter,
			query:   domain.ProblemQuery{},
			pattern: `FROM problems ORDER BY id`,
			args:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := tt.newRepo(db)

			rows := sqlmock.NewRows(problemRowColumns).
				AddRow("p1", "경제", nil, "{1-1,1-1-2}", "{사회문화}", nil, nil, 40.0, nil, nil, nil, nil)

			expect := mock.ExpectQuery(tt.pattern)
			if tt.args > 0 {
				anyArgs := make([]driver.Value, tt.args)
				for i := range anyArgs {
					anyArgs[i] = sqlmock.AnyArg()
				}
				expect = expect.WithArgs(anyArgs...)
			}
			expect.WillReturnRows(rows)

			result, err := repo.ListBySubject(context.Background(), tt.query)
			require.NoError(t, err)
			require.Len(t, result, 1)
			assert.Equal(t, []string{"1-1", "1-1-2"}, result[0].Tags)
			assert.Equal(t, []string{"사회문화"}, result[0].RelatedSubjects)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProblemSaveProblem(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewTaggedProblemDatabaseAdapter(db)

	rate := 55.0
	year := 2024
	problem := &domain.Problem{
		ID:          "경제_고3_2024_06_모의고사_7_문제",
		Subject:     "경제",
		Tags:        []string{"1-1"},
		CorrectRate: &rate,
		ExamYear:    &year,
	}

	mock.ExpectExec(`INSERT INTO tagged_problems (.+) ON CONFLICT \(id\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveProblem(context.Background(), problem)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Error(t, repo.SaveProblem(context.Background(), nil))
}

func TestToModelProblem_RoundTrip(t *testing.T) {
	chapterID := "c-2"
	rate := 71.0
	answer := 4
	p := &domain.Problem{
		ID:              "p9",
		Subject:         "수학",
		ChapterID:       &chapterID,
		Tags:            []string{},
		CorrectRate:     &rate,
		Answer:          &answer,
		ProblemFilename: "p9.png",
	}

	m := toModelProblem(p)
	assert.True(t, m.ChapterID.Valid)
	assert.False(t, m.ExamYear.Valid)
	assert.False(t, m.AnswerFilename.Valid)
	assert.NotNil(t, m.RelatedSubjects)

	back := toDomainProblem(m)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, *p.ChapterID, *back.ChapterID)
	assert.Equal(t, *p.CorrectRate, *back.CorrectRate)
	assert.Equal(t, *p.Answer, *back.Answer)
	assert.Nil(t, back.ExamYear)
}
