package dto

import "exam-worksheet/internal/domain"

// RateRange is an inclusive correct-rate window in percent
type RateRange struct {
	Min float64 `json:"min" validate:"gte=0,lte=100"`
	Max float64 `json:"max" validate:"gte=0,lte=100,gtefield=Min"`
}

// FilterCriteria is the wire form of domain.FilterCriteria
// @Description Filter criteria. An empty list means no constraint on that dimension.
type FilterCriteria struct {
	SelectedChapters     []string   `json:"selected_chapters"`
	SelectedDifficulties []string   `json:"selected_difficulties"`
	SelectedProblemTypes []string   `json:"selected_problem_types"`
	SelectedSubjects     []string   `json:"selected_subjects"`
	CorrectRateRange     *RateRange `json:"correct_rate_range,omitempty"`
	Count                int        `json:"count" validate:"gte=0,lte=1000"`
}

// SortRule is the wire form of domain.SortRule
type SortRule struct {
	Field     string `json:"field" validate:"required,oneof=chapter tags correct_rate exam_year problem_type related_subjects random"`
	Direction string `json:"direction,omitempty" validate:"omitempty,oneof=asc desc"`
}

// SearchProblemsRequest represents the request body for a problem search
// @Description Request body for searching problems
type SearchProblemsRequest struct {
	Subject   string         `json:"subject" validate:"required,max=50"`
	IDKind    string         `json:"id_kind,omitempty" validate:"omitempty,oneof=default tagged economy"`
	Criteria  FilterCriteria `json:"criteria"`
	SortRules []SortRule     `json:"sort_rules" validate:"max=10,dive"`
}

// ProblemResponse represents a problem in the API response
// @Description Problem information
type ProblemResponse struct {
	ID              string   `json:"id"`
	Subject         string   `json:"subject,omitempty"`
	ChapterID       *string  `json:"chapter_id"`
	Tags            []string `json:"tags"`
	RelatedSubjects []string `json:"related_subjects,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	ProblemType     string   `json:"problem_type,omitempty"`
	CorrectRate     *float64 `json:"correct_rate"`
	ExamYear        *int     `json:"exam_year"`
	ProblemFilename string   `json:"problem_filename,omitempty"`
	AnswerFilename  string   `json:"answer_filename,omitempty"`
	IsMissing       bool     `json:"is_missing,omitempty"`
}

// SearchProblemsResponse represents the result of a problem search
type SearchProblemsResponse struct {
	Problems []ProblemResponse `json:"problems"`
	Total    int               `json:"total"`
}

// ChapterTreeResponse represents a subject's chapter forest
type ChapterTreeResponse struct {
	Subject  string                `json:"subject"`
	Chapters []*domain.ChapterNode `json:"chapters"`
}

// ToDomain converts the wire criteria. A missing range means the default range.
func (c FilterCriteria) ToDomain() domain.FilterCriteria {
	out := domain.FilterCriteria{
		SelectedChapters:     c.SelectedChapters,
		SelectedDifficulties: c.SelectedDifficulties,
		SelectedProblemTypes: c.SelectedProblemTypes,
		SelectedSubjects:     c.SelectedSubjects,
		Count:                c.Count,
	}
	if c.CorrectRateRange != nil {
		out.CorrectRateRange = &domain.RateRange{Min: c.CorrectRateRange.Min, Max: c.CorrectRateRange.Max}
	}
	return out.Normalize()
}

// NewFilterCriteria converts domain criteria to the wire form
func NewFilterCriteria(c domain.FilterCriteria) FilterCriteria {
	r := c.RateRangeOrDefault()
	return FilterCriteria{
		SelectedChapters:     c.SelectedChapters,
		SelectedDifficulties: c.SelectedDifficulties,
		SelectedProblemTypes: c.SelectedProblemTypes,
		SelectedSubjects:     c.SelectedSubjects,
		CorrectRateRange:     &RateRange{Min: r.Min, Max: r.Max},
		Count:                c.Count,
	}
}

// SortRulesToDomain converts validated wire rules. Direction defaults to asc.
func SortRulesToDomain(rules []SortRule) []domain.SortRule {
	out := make([]domain.SortRule, 0, len(rules))
	for _, r := range rules {
		dir := domain.SortDirection(r.Direction)
		if dir == "" {
			dir = domain.SortAsc
		}
		out = append(out, domain.SortRule{Field: domain.SortField(r.Field), Direction: dir})
	}
	return out
}

// NewSortRules converts domain rules to the wire form
func NewSortRules(rules []domain.SortRule) []SortRule {
	out := make([]SortRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, SortRule{Field: string(r.Field), Direction: string(r.Direction)})
	}
	return out
}

// NewProblemResponse converts a domain problem
func NewProblemResponse(p *domain.Problem) ProblemResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProblemResponse{
		ID:              p.ID,
		Subject:         p.Subject,
		ChapterID:       p.ChapterID,
		Tags:            tags,
		RelatedSubjects: p.RelatedSubjects,
		Difficulty:      p.Difficulty,
		ProblemType:     p.ProblemType,
		CorrectRate:     p.CorrectRate,
		ExamYear:        p.ExamYear,
		ProblemFilename: p.ProblemFilename,
		AnswerFilename:  p.AnswerFilename,
		IsMissing:       p.IsMissing,
	}
}

// NewProblemResponses converts problems in order
func NewProblemResponses(problems []*domain.Problem) []ProblemResponse {
	out := make([]ProblemResponse, 0, len(problems))
	for _, p := range problems {
		if p != nil {
			out = append(out, NewProblemResponse(p))
		}
	}
	return out
}
