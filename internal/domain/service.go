package domain

import (
	"context"
	"errors"
)

// ProblemQuery narrows the candidate rows fetched from the store before the
// in-memory filter runs.
type ProblemQuery struct {
	Subject    string
	ChapterIDs []string
}

// ProblemRepository defines the interface for problem persistence
type ProblemRepository interface {
	// FindByIDs returns the problems that still exist for ids, in any order
	FindByIDs(ctx context.Context, ids []string) ([]*Problem, error)

	// ListBySubject returns candidate problems for the in-memory filter
	ListBySubject(ctx context.Context, query ProblemQuery) ([]*Problem, error)

	// SaveProblem inserts or replaces a problem row
	SaveProblem(ctx context.Context, problem *Problem) error
}

// TagRepository defines the interface for the flat tag-path table
type TagRepository interface {
	// ListTagPaths returns every root-to-leaf row for a subject
	ListTagPaths(ctx context.Context, subject string) ([]TagPathRow, error)

	// SaveTagPath inserts a tag-path row
	SaveTagPath(ctx context.Context, row TagPathRow) error
}

// WorksheetRepository defines the interface for worksheet persistence
type WorksheetRepository interface {
	Create(ctx context.Context, worksheet *Worksheet) error

	// GetByID returns nil, nil when the worksheet does not exist
	GetByID(ctx context.Context, id string) (*Worksheet, error)

	Update(ctx context.Context, worksheet *Worksheet) error
	SetVisibility(ctx context.Context, id string, public bool) error
	Delete(ctx context.Context, id string) error

	// ListPublic returns public worksheets whose title contains search and the total count
	ListPublic(ctx context.Context, search string, page Page) ([]*Worksheet, int, error)

	ListByOwner(ctx context.Context, ownerID string, page Page) ([]*Worksheet, int, error)
}

// TransactionManager runs fn inside a store transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrImageNotFound is returned by an ImageFetcher when storage has no object for a filename
var ErrImageNotFound = errors.New("image not found in storage")

// ImageFetcher loads problem and answer images from storage
type ImageFetcher interface {
	Fetch(ctx context.Context, filename string) ([]byte, error)
}
