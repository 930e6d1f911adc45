package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Structured problem ID suffixes
const (
	ProblemSuffix  = "_문제"
	SolutionSuffix = "_해설"

	structuredIDSeparator = "_"
	economySubject        = "경제"
)

// Problem is a single exam question as read from the store.
// It is a read-only projection: filtering and sorting never mutate it.
type Problem struct {
	ID              string   `json:"id"`
	Subject         string   `json:"subject,omitempty"`
	ChapterID       *string  `json:"chapter_id"`
	Tags            []string `json:"tags"`
	RelatedSubjects []string `json:"related_subjects,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	ProblemType     string   `json:"problem_type,omitempty"`
	CorrectRate     *float64 `json:"correct_rate"`
	ExamYear        *int     `json:"exam_year"`
	Answer          *int     `json:"answer"`
	ProblemFilename string   `json:"problem_filename,omitempty"`
	AnswerFilename  string   `json:"answer_filename,omitempty"`

	// IsMissing marks a placeholder for an ID that no longer resolves
	IsMissing bool `json:"is_missing,omitempty"`
}

// HasAnswer reports whether an answer image is associated with the problem
func (p *Problem) HasAnswer() bool {
	return p.AnswerFilename != ""
}

// NewMissingProblem builds the placeholder used when a stored worksheet ID
// no longer resolves. Metadata is filled from the ID when it is structured.
func NewMissingProblem(id string) *Problem {
	p := &Problem{
		ID:        id,
		Tags:      []string{},
		IsMissing: true,
	}
	if sid, err := ParseStructuredID(id); err == nil {
		year := sid.Year
		p.Subject = sid.Subject
		p.ExamYear = &year
		p.ProblemType = sid.ExamType
	}
	return p
}

// ProblemIDKind is the namespace a problem ID belongs to
type ProblemIDKind string

const (
	// ProblemIDDefault is a store surrogate key
	ProblemIDDefault ProblemIDKind = "default"
	// ProblemIDTagged is a structured ID for tag based subjects
	ProblemIDTagged ProblemIDKind = "tagged"
	// ProblemIDEconomy is a structured ID for the 경제 subject
	ProblemIDEconomy ProblemIDKind = "economy"
)

// Valid reports whether k is one of the known kinds
func (k ProblemIDKind) Valid() bool {
	switch k {
	case ProblemIDDefault, ProblemIDTagged, ProblemIDEconomy:
		return true
	}
	return false
}

// UsesTags reports whether problems of this kind are organised by tag paths
// rather than by a chapter_id reference.
func (k ProblemIDKind) UsesTags() bool {
	return k == ProblemIDTagged || k == ProblemIDEconomy
}

// ClassifyProblemID determines the namespace of a problem ID by its shape.
func ClassifyProblemID(id string) ProblemIDKind {
	sid, err := ParseStructuredID(id)
	if err != nil {
		return ProblemIDDefault
	}
	if sid.Subject == economySubject {
		return ProblemIDEconomy
	}
	return ProblemIDTagged
}

// StructuredID is the parsed form of
// {subject}_{grade}_{year}_{month}_{examType}_{number}_{문제|해설}.
type StructuredID struct {
	Subject  string
	Grade    string
	Year     int
	Month    int
	ExamType string
	Number   int
	Suffix   string
}

// ParseStructuredID parses a tagged/economy problem ID. IDs that do not follow
// the format exactly are reported as malformed instead of being guessed at.
func ParseStructuredID(id string) (*StructuredID, error) {
	base := id
	suffix := ""
	switch {
	case strings.HasSuffix(base, ProblemSuffix):
		suffix = ProblemSuffix
	case strings.HasSuffix(base, SolutionSuffix):
		suffix = SolutionSuffix
	}
	base = strings.TrimSuffix(base, suffix)

	parts := strings.Split(base, structuredIDSeparator)
	if len(parts) < 6 {
		return nil, NewMalformedProblemIDError(id)
	}

	// Subjects may themselves contain the separator; the last five segments are fixed.
	n := len(parts)
	subject := strings.Join(parts[:n-5], structuredIDSeparator)
	grade, yearStr, monthStr, examType, numberStr := parts[n-5], parts[n-4], parts[n-3], parts[n-2], parts[n-1]

	// Numeric segments are unsigned ASCII digits: 4-digit year, 2-digit month 01-12.
	if !isDigits(numberStr) || len(yearStr) != 4 || !isDigits(yearStr) || len(monthStr) != 2 || !isDigits(monthStr) {
		return nil, NewMalformedProblemIDError(id)
	}
	number, err := strconv.Atoi(numberStr)
	if err != nil || number <= 0 {
		return nil, NewMalformedProblemIDError(id)
	}
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	if month < 1 || month > 12 {
		return nil, NewMalformedProblemIDError(id)
	}
	if subject == "" || grade == "" || examType == "" {
		return nil, NewMalformedProblemIDError(id)
	}

	return &StructuredID{
		Subject:  subject,
		Grade:    grade,
		Year:     year,
		Month:    month,
		ExamType: examType,
		Number:   number,
		Suffix:   suffix,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the ID back into its wire form
func (s *StructuredID) String() string {
	return fmt.Sprintf("%s_%s_%04d_%02d_%s_%d%s", s.Subject, s.Grade, s.Year, s.Month, s.ExamType, s.Number, s.Suffix)
}

// ProblemIDs extracts IDs in order
func ProblemIDs(problems []*Problem) []string {
	ids := make([]string, 0, len(problems))
	for _, p := range problems {
		if p == nil {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids
}
