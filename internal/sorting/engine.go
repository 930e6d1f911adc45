// Package sorting orders problem lists by prioritized sort rules.
package sorting

import (
	"cmp"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"exam-worksheet/internal/chapter"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/filter"
)

// Missing correct rates sort as the midpoint
const missingCorrectRate = domain.DefaultCorrectRate

var leadingNumberPattern = regexp.MustCompile(`^\s*(\d+(?:[-.]\d+)*)`)

// Engine applies sort rules. The zero value sorts by chapter_id with no known
// chapter tree and shuffles with the global source.
type Engine struct {
	chapterPaths map[string][]int
	mode         domain.ChapterMode
	rng          *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithChapterPaths sets the tree positions used for the chapter field (see chapter.PathIndex)
func WithChapterPaths(paths map[string][]int) Option {
	return func(e *Engine) { e.chapterPaths = paths }
}

// WithMode sets how the chapter field is compared
func WithMode(mode domain.ChapterMode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithRand sets the shuffle source. A *rand.Rand is not safe for concurrent use,
// so engines built with one must not be shared between goroutines.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// NewEngine creates an Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply returns an ordered copy of problems. No rules keeps input order.
// A random rule anywhere in the list produces a uniform shuffle and
// overrides every other rule. Otherwise the sort is stable across all rules.
// Nil entries are dropped, as in filter.Apply.
func (e *Engine) Apply(problems []*domain.Problem, rules []domain.SortRule) []*domain.Problem {
	out := make([]*domain.Problem, 0, len(problems))
	for _, p := range problems {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(rules) == 0 {
		return out
	}
	if slices.ContainsFunc(rules, func(r domain.SortRule) bool { return r.Field == domain.SortFieldRandom }) {
		e.shuffle(out)
		return out
	}

	slices.SortStableFunc(out, func(a, b *domain.Problem) int {
		for _, rule := range rules {
			c := e.compare(rule.Field, a, b)
			if rule.Direction == domain.SortDesc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

// shuffle is a Fisher–Yates shuffle
func (e *Engine) shuffle(items []*domain.Problem) {
	for i := len(items) - 1; i > 0; i-- {
		var j int
		if e.rng != nil {
			j = e.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		items[i], items[j] = items[j], items[i]
	}
}

func (e *Engine) compare(field domain.SortField, a, b *domain.Problem) int {
	switch field {
	case domain.SortFieldChapter:
		return e.compareChapter(a, b)
	case domain.SortFieldTags:
		return slices.Compare(a.Tags, b.Tags)
	case domain.SortFieldRelatedSubjects:
		return slices.Compare(a.RelatedSubjects, b.RelatedSubjects)
	case domain.SortFieldCorrectRate:
		return cmp.Compare(correctRate(a), correctRate(b))
	case domain.SortFieldExamYear:
		return cmp.Compare(ExamYear(a), ExamYear(b))
	case domain.SortFieldProblemType:
		return strings.Compare(filter.ProblemTypeOf(a), filter.ProblemTypeOf(b))
	}
	return 0
}

func (e *Engine) compareChapter(a, b *domain.Problem) int {
	if e.mode == domain.ChapterModeTags {
		return compareTagPaths(a.Tags, b.Tags)
	}

	pa, okA := e.chapterPath(a)
	pb, okB := e.chapterPath(b)
	switch {
	case okA && okB:
		return slices.Compare(pa, pb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

func (e *Engine) chapterPath(p *domain.Problem) ([]int, bool) {
	if p.ChapterID == nil {
		return nil, false
	}
	path, ok := e.chapterPaths[*p.ChapterID]
	return path, ok
}

// compareTagPaths compares tag lists element-wise by their leading numeric
// prefix ("1-1. 수요와 공급"), falling back to string comparison per element.
func compareTagPaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareTag(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareTag(a, b string) int {
	na, nb := tagNumbers(a), tagNumbers(b)
	if len(na) > 0 && len(nb) > 0 {
		if c := slices.Compare(na, nb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// tagNumbers reads a leading prefix ("1-1. 제목") or, for tag IDs such as
// "경제-1-1", the numeric segments of the ID.
func tagNumbers(tag string) []int {
	if n := LeadingNumbers(tag); n != nil {
		return n
	}
	return chapter.NumericSegments(tag)
}

// LeadingNumbers extracts a leading multi-level numeric prefix such as
// "2-1" or "3.2.1" from s. It returns nil when s does not start with a digit.
func LeadingNumbers(s string) []int {
	m := leadingNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	parts := strings.FieldsFunc(m[1], func(r rune) bool { return r == '-' || r == '.' })
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

func correctRate(p *domain.Problem) float64 {
	if p.CorrectRate == nil {
		return missingCorrectRate
	}
	return *p.CorrectRate
}

// ExamYear returns the stored exam year or the year encoded in a structured ID.
// Problems with neither sort as year 0.
func ExamYear(p *domain.Problem) int {
	if p.ExamYear != nil {
		return *p.ExamYear
	}
	if sid, err := domain.ParseStructuredID(p.ID); err == nil {
		return sid.Year
	}
	return 0
}
