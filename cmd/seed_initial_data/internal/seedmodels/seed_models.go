package seedmodels

import "exam-worksheet/internal/domain"

// SeedTagPath is one root-to-leaf chapter row in the JSON seed file.
type SeedTagPath struct {
	IDs    []string `json:"ids"`
	Labels []string `json:"labels"`
}

// SeedProblem defines the structure for a problem item in the JSON seed file.
// The target table follows from the shape of the ID.
type SeedProblem struct {
	ID              string   `json:"id"`
	ChapterID       *string  `json:"chapter_id"`
	Tags            []string `json:"tags"`
	RelatedSubjects []string `json:"related_subjects"`
	Difficulty      string   `json:"difficulty"`
	ProblemType     string   `json:"problem_type"`
	CorrectRate     *float64 `json:"correct_rate"`
	ExamYear        *int     `json:"exam_year"`
	Answer          *int     `json:"answer"`
	ProblemFilename string   `json:"problem_filename"`
	AnswerFilename  string   `json:"answer_filename"`
}

// SeedSubject defines the structure for a subject in the JSON seed file.
type SeedSubject struct {
	Subject  string        `json:"subject"`
	TagPaths []SeedTagPath `json:"tag_paths"`
	Problems []SeedProblem `json:"problems"`
}

// ToDomain converts a seed problem of subject
func (p SeedProblem) ToDomain(subject string) *domain.Problem {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Problem{
		ID:              p.ID,
		Subject:         subject,
		ChapterID:       p.ChapterID,
		Tags:            tags,
		RelatedSubjects: p.RelatedSubjects,
		Difficulty:      p.Difficulty,
		ProblemType:     p.ProblemType,
		CorrectRate:     p.CorrectRate,
		ExamYear:        p.ExamYear,
		Answer:          p.Answer,
		ProblemFilename: p.ProblemFilename,
		AnswerFilename:  p.AnswerFilename,
	}
}
