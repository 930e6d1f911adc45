package domain

// ChapterNodeKind distinguishes grouping nodes from selectable leaves
type ChapterNodeKind string

const (
	ChapterNodeCategory ChapterNodeKind = "category"
	ChapterNodeItem     ChapterNodeKind = "item"
)

// ChapterNode is one position in a subject's unit hierarchy
type ChapterNode struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Kind     ChapterNodeKind `json:"type"`
	Children []*ChapterNode  `json:"children,omitempty"`
}

// TagPathRow is one flat root-to-leaf row of the tag table.
// IDs and Labels are parallel lists.
type TagPathRow struct {
	Subject string   `json:"subject" db:"subject"`
	IDs     []string `json:"ids"`
	Labels  []string `json:"labels"`
}
