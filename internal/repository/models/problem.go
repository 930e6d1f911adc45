package models

import (
	"database/sql"

	"github.com/lib/pq"
)

// Problem is a row of the problems / tagged_problems tables
type Problem struct {
	ID              string          `db:"id"`
	Subject         sql.NullString  `db:"subject"`
	ChapterID       sql.NullString  `db:"chapter_id"`
	Tags            pq.StringArray  `db:"tags"`
	RelatedSubjects pq.StringArray  `db:"related_subjects"`
	Difficulty      sql.NullString  `db:"difficulty"`
	ProblemType     sql.NullString  `db:"problem_type"`
	CorrectRate     sql.NullFloat64 `db:"correct_rate"`
	ExamYear        sql.NullInt64   `db:"exam_year"`
	Answer          sql.NullInt64   `db:"answer"`
	ProblemFilename sql.NullString  `db:"problem_filename"`
	AnswerFilename  sql.NullString  `db:"answer_filename"`
}

// TagPath is a row of the chapter_tags table
type TagPath struct {
	Subject string         `db:"subject"`
	IDs     pq.StringArray `db:"ids"`
	Labels  pq.StringArray `db:"labels"`
}
