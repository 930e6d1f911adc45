package dto

import (
	"time"

	"exam-worksheet/internal/domain"
)

// CreateWorksheetRequest represents the request body for creating a worksheet
// @Description Request body for creating a worksheet. problem_ids are stored in the given order.
type CreateWorksheetRequest struct {
	Title      string         `json:"title" validate:"max=200"`
	Author     string         `json:"author" validate:"max=100"`
	ProblemIDs []string       `json:"problem_ids" validate:"max=1000"`
	Criteria   FilterCriteria `json:"criteria"`
	SortRules  []SortRule     `json:"sort_rules" validate:"max=10,dive"`
	IsPublic   bool           `json:"is_public"`
}

// UpdateWorksheetRequest represents the request body for updating a worksheet
// @Description Request body for updating a worksheet
type UpdateWorksheetRequest struct {
	Title      string         `json:"title" validate:"max=200"`
	Author     string         `json:"author" validate:"max=100"`
	ProblemIDs []string       `json:"problem_ids" validate:"max=1000"`
	Criteria   FilterCriteria `json:"criteria"`
	SortRules  []SortRule     `json:"sort_rules" validate:"max=10,dive"`
}

// VisibilityRequest represents the request body for toggling visibility
type VisibilityRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

// WorksheetResponse represents a stored worksheet
// @Description Worksheet information
type WorksheetResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Author     string         `json:"author"`
	OwnerID    *string        `json:"owner_id"`
	ProblemIDs []string       `json:"problem_ids"`
	Criteria   FilterCriteria `json:"criteria"`
	SortRules  []SortRule     `json:"sort_rules"`
	IsPublic   bool           `json:"is_public"`
	IDKind     string         `json:"id_kind"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// WorksheetDetailResponse is a worksheet with its re-hydrated problems in stored order
type WorksheetDetailResponse struct {
	Worksheet    WorksheetResponse `json:"worksheet"`
	Problems     []ProblemResponse `json:"problems"`
	MissingCount int               `json:"missing_count"`
}

// WorksheetListResponse is one page of worksheets
type WorksheetListResponse struct {
	Items []WorksheetResponse `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

// ToDomain builds the worksheet to be created
func (r *CreateWorksheetRequest) ToDomain() *domain.Worksheet {
	return &domain.Worksheet{
		Title:      r.Title,
		Author:     r.Author,
		ProblemIDs: r.ProblemIDs,
		Criteria:   r.Criteria.ToDomain(),
		SortRules:  SortRulesToDomain(r.SortRules),
		IsPublic:   r.IsPublic,
	}
}

// ToDomain builds the editable part of a worksheet
func (r *UpdateWorksheetRequest) ToDomain() *domain.Worksheet {
	return &domain.Worksheet{
		Title:      r.Title,
		Author:     r.Author,
		ProblemIDs: r.ProblemIDs,
		Criteria:   r.Criteria.ToDomain(),
		SortRules:  SortRulesToDomain(r.SortRules),
	}
}

// NewWorksheetResponse converts a domain worksheet
func NewWorksheetResponse(w *domain.Worksheet) WorksheetResponse {
	ids := w.ProblemIDs
	if ids == nil {
		ids = []string{}
	}
	return WorksheetResponse{
		ID:         w.ID,
		Title:      w.Title,
		Author:     w.Author,
		OwnerID:    w.OwnerID,
		ProblemIDs: ids,
		Criteria:   NewFilterCriteria(w.Criteria),
		SortRules:  NewSortRules(w.SortRules),
		IsPublic:   w.IsPublic,
		IDKind:     string(w.IDKind),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// NewWorksheetDetailResponse converts a re-hydrated worksheet
func NewWorksheetDetailResponse(d *domain.WorksheetDetail) *WorksheetDetailResponse {
	return &WorksheetDetailResponse{
		Worksheet:    NewWorksheetResponse(d.Worksheet),
		Problems:     NewProblemResponses(d.Problems),
		MissingCount: d.MissingCount(),
	}
}

// NewWorksheetListResponse converts one page of worksheets
func NewWorksheetListResponse(items []*domain.Worksheet, total int, page domain.Page) *WorksheetListResponse {
	out := &WorksheetListResponse{
		Items: make([]WorksheetResponse, 0, len(items)),
		Total: total,
		Page:  page.Number,
		Size:  page.Size,
	}
	for _, w := range items {
		out.Items = append(out.Items, NewWorksheetResponse(w))
	}
	return out
}
