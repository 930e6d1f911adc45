// Package pdf builds the declarative worksheet layout and renders it to PDF bytes.
package pdf

import (
	"strconv"
	"time"
)

// A4 in PDF points
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Layout defaults
const (
	DefaultMargin       = 40.0
	DefaultFooterHeight = 30.0
	DefaultColumnGap    = 20.0
	DefaultRowSpacing   = 24.0
	ColumnsPerRow       = 2

	AnswerHeading = "정답 및 해설"
)

// Alignment is the horizontal placement of a cell's content
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Image is an inline-embedded picture (a data URI) with an optional caption
type Image struct {
	Source  string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// DocumentInfo is the metadata block of the document
type DocumentInfo struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// PageSize in points
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins in points
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Cell is one column entry of a row
type Cell struct {
	Image     Image     `json:"content"`
	MaxWidth  float64   `json:"max_width"`
	Alignment Alignment `json:"alignment"`
}

// Row is a left/right column pair. Right is nil on the last row of an odd list.
type Row struct {
	Left         *Cell   `json:"left"`
	Right        *Cell   `json:"right,omitempty"`
	MarginBottom float64 `json:"margin_bottom"`
}

// Section is a run of rows with an optional heading
type Section struct {
	Heading         string `json:"heading,omitempty"`
	PageBreakBefore bool   `json:"page_break_before,omitempty"`
	Rows            []Row  `json:"rows"`
}

// Footer is drawn at the bottom of every page
type Footer struct {
	Height         float64   `json:"height"`
	Rule           bool      `json:"rule"`
	RuleWidth      float64   `json:"rule_width"`
	ShowPageNumber bool      `json:"show_page_number"`
	Alignment      Alignment `json:"alignment"`
}

// Text returns the footer text for a 1-based page number. Total page count is not shown.
func (f Footer) Text(page int) string {
	if !f.ShowPageNumber {
		return ""
	}
	return strconv.Itoa(page)
}

// Document is the full declarative layout tree handed to a Renderer
type Document struct {
	Info     DocumentInfo `json:"info"`
	PageSize PageSize     `json:"page_size"`
	Margins  Margins      `json:"page_margins"`
	Footer   Footer       `json:"footer"`
	Sections []Section    `json:"content"`
}

// ContentWidth is the printable width between the side margins
func (d *Document) ContentWidth() float64 {
	return d.PageSize.Width - d.Margins.Left - d.Margins.Right
}

// ContentHeight is the printable height between the top margin and the footer area
func (d *Document) ContentHeight() float64 {
	return d.PageSize.Height - d.Margins.Top - d.Margins.Bottom
}

// ImageCount returns the number of images across all sections
func (d *Document) ImageCount() int {
	n := 0
	for _, s := range d.Sections {
		for _, r := range s.Rows {
			if r.Left != nil {
				n++
			}
			if r.Right != nil {
				n++
			}
		}
	}
	return n
}

// BuildDocument lays problems out two per row on A4 pages. When answers is non-empty
// they follow the problems on a new page under AnswerHeading.
// Empty or odd image lists are valid; no I/O is performed.
func BuildDocument(problems []Image, answers []Image, info DocumentInfo) *Document {
	doc := &Document{
		Info:     info,
		PageSize: PageSize{Width: A4Width, Height: A4Height},
		Margins: Margins{
			Left:   DefaultMargin,
			Top:    DefaultMargin,
			Right:  DefaultMargin,
			Bottom: DefaultMargin + DefaultFooterHeight,
		},
		Footer: Footer{
			Height:         DefaultFooterHeight,
			Rule:           true,
			RuleWidth:      0.5,
			ShowPageNumber: true,
			Alignment:      AlignCenter,
		},
	}

	cellWidth := (doc.ContentWidth() - DefaultColumnGap*(ColumnsPerRow-1)) / ColumnsPerRow

	doc.Sections = append(doc.Sections, Section{
		Heading: info.Title,
		Rows:    buildRows(problems, cellWidth),
	})
	if len(answers) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Heading:         AnswerHeading,
			PageBreakBefore: true,
			Rows:            buildRows(answers, cellWidth),
		})
	}
	return doc
}

func buildRows(images []Image, cellWidth float64) []Row {
	rows := make([]Row, 0, (len(images)+1)/ColumnsPerRow)
	for i := 0; i < len(images); i += ColumnsPerRow {
		row := Row{
			Left:         newCell(images[i], cellWidth),
			MarginBottom: DefaultRowSpacing,
		}
		if i+1 < len(images) {
			row.Right = newCell(images[i+1], cellWidth)
		}
		rows = append(rows, row)
	}
	return rows
}

func newCell(img Image, width float64) *Cell {
	return &Cell{Image: img, MaxWidth: width, Alignment: AlignCenter}
}
