package domain

import (
	"strings"
	"time"
)

// Worksheet is a named, persisted selection of problems
type Worksheet struct {
	ID         string
	Title      string
	Author     string
	OwnerID    *string
	ProblemIDs []string
	Criteria   FilterCriteria
	SortRules  []SortRule
	IsPublic   bool
	IDKind     ProblemIDKind
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOwnedBy reports whether userID owns the worksheet. Worksheets without an
// owner are owned by nobody.
func (w *Worksheet) IsOwnedBy(userID string) bool {
	return w.OwnerID != nil && userID != "" && *w.OwnerID == userID
}

// Validate validates the worksheet before it is persisted
func (w *Worksheet) Validate() error {
	if len(w.ProblemIDs) == 0 {
		return NewEmptySelectionError()
	}
	if strings.TrimSpace(w.Title) == "" {
		return NewValidationError("title is required")
	}
	for _, id := range w.ProblemIDs {
		if strings.TrimSpace(id) == "" {
			return NewValidationError("problem IDs must not be blank")
		}
	}
	return nil
}

// DetectIDKind classifies a list of IDs. All IDs must share one namespace.
func DetectIDKind(ids []string) (ProblemIDKind, error) {
	if len(ids) == 0 {
		return "", NewEmptySelectionError()
	}
	kind := ClassifyProblemID(ids[0])
	for _, id := range ids[1:] {
		if ClassifyProblemID(id) != kind {
			return "", NewValidationError("a worksheet cannot mix problem ID namespaces")
		}
	}
	return kind, nil
}

// WorksheetDetail is a worksheet re-hydrated with current problem data.
// Problems has exactly len(Worksheet.ProblemIDs) entries in stored order.
type WorksheetDetail struct {
	Worksheet *Worksheet
	Problems  []*Problem
}

// MissingCount returns the number of placeholders
func (d *WorksheetDetail) MissingCount() int {
	n := 0
	for _, p := range d.Problems {
		if p.IsMissing {
			n++
		}
	}
	return n
}

// Page is a pagination window
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset of the page (pages start at 1)
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
