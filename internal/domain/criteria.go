package domain

import "fmt"

// Correct rate bounds, in percent
const (
	MinCorrectRate     = 0.0
	MaxCorrectRate     = 100.0
	DefaultCorrectRate = 50.0
)

// RateRange is an inclusive correct-rate window
type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultRateRange accepts every problem
func DefaultRateRange() RateRange {
	return RateRange{Min: MinCorrectRate, Max: MaxCorrectRate}
}

// IsDefault reports whether the range imposes no constraint
func (r RateRange) IsDefault() bool {
	return r.Min <= MinCorrectRate && r.Max >= MaxCorrectRate
}

// Contains reports whether rate is inside the range
func (r RateRange) Contains(rate float64) bool {
	return rate >= r.Min && rate <= r.Max
}

// FilterCriteria describes a desired problem subset.
// An empty selection on any dimension means no constraint on that dimension.
// A nil CorrectRateRange means the default range; an explicit [0,0] is a real constraint.
type FilterCriteria struct {
	SelectedChapters     []string  `json:"selected_chapters"`
	SelectedDifficulties []string  `json:"selected_difficulties"`
	SelectedProblemTypes []string  `json:"selected_problem_types"`
	SelectedSubjects     []string  `json:"selected_subjects"`
	CorrectRateRange     *RateRange `json:"correct_rate_range"`
	Count                int       `json:"count"`
}

// Normalize fills an absent range with the default range
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.CorrectRateRange == nil {
		r := DefaultRateRange()
		c.CorrectRateRange = &r
	}
	return c
}

// RateRangeOrDefault returns the requested range, or the default range when none was given
func (c FilterCriteria) RateRangeOrDefault() RateRange {
	if c.CorrectRateRange == nil {
		return DefaultRateRange()
	}
	return *c.CorrectRateRange
}

// SortField is the closed set of fields a sort rule can order by
type SortField string

const (
	SortFieldChapter         SortField = "chapter"
	SortFieldTags            SortField = "tags"
	SortFieldCorrectRate     SortField = "correct_rate"
	SortFieldExamYear        SortField = "exam_year"
	SortFieldProblemType     SortField = "problem_type"
	SortFieldRelatedSubjects SortField = "related_subjects"
	SortFieldRandom          SortField = "random"
)

// ParseSortField validates a wire field name
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortFieldChapter, SortFieldTags, SortFieldCorrectRate, SortFieldExamYear,
		SortFieldProblemType, SortFieldRelatedSubjects, SortFieldRandom:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortRule is one ordering directive
type SortRule struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// DifficultyBand maps correct rates at or above MinRate to Label.
// Bands come from configuration.
type DifficultyBand struct {
	Label   string  `json:"label" mapstructure:"label"`
	MinRate float64 `json:"min_rate" mapstructure:"min_rate"`
}

// ChapterMode selects how chapter membership is tested for a subject
type ChapterMode int

const (
	// ChapterModeTree matches Problem.ChapterID against chapter tree node IDs
	ChapterModeTree ChapterMode = iota
	// ChapterModeTags matches Problem.Tags against tag path IDs
	ChapterModeTags
)

// ChapterModeFor returns the chapter mode used by an ID namespace
func ChapterModeFor(kind ProblemIDKind) ChapterMode {
	if kind.UsesTags() {
		return ChapterModeTags
	}
	return ChapterModeTree
}

func (m ChapterMode) String() string {
	if m == ChapterModeTags {
		return "tags"
	}
	return "tree"
}
