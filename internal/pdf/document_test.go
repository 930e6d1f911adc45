package pdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func images(n int, prefix string) []Image {
	out := make([]Image, n)
	for i := range out {
		out[i] = Image{Source: prefix + string(rune('a'+i))}
	}
	return out
}

func TestBuildDocument_TwoPerRow(t *testing.T) {
	info := DocumentInfo{Title: "1학기 중간", Author: "김선생", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	doc := BuildDocument(images(4, "p"), nil, info)

	assert.Equal(t, A4Width, doc.PageSize.Width)
	assert.Equal(t, A4Height, doc.PageSize.Height)
	assert.Equal(t, info, doc.Info)
	require.Len(t, doc.Sections, 1)
	section := doc.Sections[0]
	assert.Equal(t, "1학기 중간", section.Heading)
	require.Len(t, section.Rows, 2)
	for _, row := range section.Rows {
		require.NotNil(t, row.Left)
		require.NotNil(t, row.Right)
		assert.Equal(t, AlignCenter, row.Left.Alignment)
		assert.Equal(t, DefaultRowSpacing, row.MarginBottom)
	}
	assert.Equal(t, "pa", section.Rows[0].Left.Image.Source)
	assert.Equal(t, "pb", section.Rows[0].Right.Image.Source)
	assert.Equal(t, "pd", section.Rows[1].Right.Image.Source)

	width := section.Rows[0].Left.MaxWidth
	assert.InDelta(t, doc.ContentWidth(), width*2+DefaultColumnGap, 0.001)
}

func TestBuildDocument_OddCount(t *testing.T) {
	doc := BuildDocument(images(3, "p"), nil, DocumentInfo{})

	rows := doc.Sections[0].Rows
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[1].Left)
	assert.Nil(t, rows[1].Right)
	assert.Equal(t, 3, doc.ImageCount())
}

func TestBuildDocument_Empty(t *testing.T) {
	doc := BuildDocument(nil, nil, DocumentInfo{Title: "빈 학습지"})

	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].Rows)
	assert.Equal(t, 0, doc.ImageCount())
	assert.True(t, doc.Footer.Rule)
}

func TestBuildDocument_AnswersFollowOnNewPage(t *testing.T) {
	doc := BuildDocument(images(2, "p"), images(1, "s"), DocumentInfo{})

	require.Len(t, doc.Sections, 2)
	answers := doc.Sections[1]
	assert.True(t, answers.PageBreakBefore)
	assert.Equal(t, AnswerHeading, answers.Heading)
	require.Len(t, answers.Rows, 1)
	assert.Equal(t, "sa", answers.Rows[0].Left.Image.Source)
	assert.Nil(t, answers.Rows[0].Right)
}

func TestFooterText(t *testing.T) {
	f := Footer{ShowPageNumber: true}
	assert.Equal(t, "3", f.Text(3))
	assert.Equal(t, "", Footer{}.Text(3))
}

func TestDocument_JSON(t *testing.T) {
	doc := BuildDocument(images(3, "p"), nil, DocumentInfo{Title: "t"})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, doc.ImageCount(), decoded.ImageCount())
	assert.Contains(t, string(raw), `"page_margins"`)
}
