// Package filter narrows a problem list down to the problems matching a FilterCriteria.
package filter

import (
	"slices"

	"exam-worksheet/internal/domain"
)

// Options carries the per-subject policy the criteria alone do not describe
type Options struct {
	// ChapterMode decides whether SelectedChapters are matched against the
	// problem's chapter_id or against its tag list. Selections are expected to
	// be expanded to descendants already (see chapter.ExpandSelection).
	ChapterMode domain.ChapterMode

	// DifficultyBands derive a difficulty label from the correct rate for
	// problems stored without one. Nil disables derivation.
	DifficultyBands []domain.DifficultyBand
}

type set map[string]struct{}

func newSet(values []string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) hasAny(values []string) bool {
	for _, v := range values {
		if s.has(v) {
			return true
		}
	}
	return false
}

// Apply returns the problems that pass every enabled predicate, in input order,
// truncated to criteria.Count when it is positive. The input is never modified.
//
// An empty chapter selection yields an empty result. Other empty selections
// disable their predicate.
func Apply(problems []*domain.Problem, criteria domain.FilterCriteria, opts Options) []*domain.Problem {
	criteria = criteria.Normalize()
	result := make([]*domain.Problem, 0)
	if len(criteria.SelectedChapters) == 0 {
		return result
	}

	chapters := newSet(criteria.SelectedChapters)
	difficulties := newSet(criteria.SelectedDifficulties)
	types := newSet(criteria.SelectedProblemTypes)
	subjects := newSet(criteria.SelectedSubjects)
	rateRange := criteria.RateRangeOrDefault()
	bands := sortedBands(opts.DifficultyBands)

	for _, p := range problems {
		if p == nil {
			continue
		}
		if !matchesChapter(p, chapters, opts.ChapterMode) {
			continue
		}
		if len(difficulties) > 0 && !difficulties.has(difficultyOf(p, bands)) {
			continue
		}
		if len(types) > 0 && !types.has(ProblemTypeOf(p)) {
			continue
		}
		if len(subjects) > 0 && !subjects.has(p.Subject) && !subjects.hasAny(p.RelatedSubjects) {
			continue
		}
		if !rateRange.IsDefault() && (p.CorrectRate == nil || !rateRange.Contains(*p.CorrectRate)) {
			continue
		}

		result = append(result, p)
		if criteria.Count > 0 && len(result) == criteria.Count {
			break
		}
	}
	return result
}

func matchesChapter(p *domain.Problem, chapters set, mode domain.ChapterMode) bool {
	if mode == domain.ChapterModeTags {
		return chapters.hasAny(p.Tags)
	}
	return p.ChapterID != nil && chapters.has(*p.ChapterID)
}

func difficultyOf(p *domain.Problem, bands []domain.DifficultyBand) string {
	if p.Difficulty != "" {
		return p.Difficulty
	}
	return labelFor(p.CorrectRate, bands)
}

// ProblemTypeOf returns the stored problem type, falling back to the exam type
// encoded in a structured ID.
func ProblemTypeOf(p *domain.Problem) string {
	if p.ProblemType != "" {
		return p.ProblemType
	}
	if sid, err := domain.ParseStructuredID(p.ID); err == nil {
		return sid.ExamType
	}
	return ""
}

// DifficultyLabel maps a correct rate onto the configured bands. The first band
// whose MinRate does not exceed rate wins, checking the highest MinRate first.
// A nil rate or no matching band yields "".
func DifficultyLabel(rate *float64, bands []domain.DifficultyBand) string {
	return labelFor(rate, sortedBands(bands))
}

func labelFor(rate *float64, sorted []domain.DifficultyBand) string {
	if rate == nil {
		return ""
	}
	for _, b := range sorted {
		if *rate >= b.MinRate {
			return b.Label
		}
	}
	return ""
}

func sortedBands(bands []domain.DifficultyBand) []domain.DifficultyBand {
	if len(bands) == 0 {
		return nil
	}
	sorted := slices.Clone(bands)
	slices.SortStableFunc(sorted, func(a, b domain.DifficultyBand) int {
		switch {
		case a.MinRate > b.MinRate:
			return -1
		case a.MinRate < b.MinRate:
			return 1
		}
		return 0
	})
	return sorted
}
