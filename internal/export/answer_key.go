package export

import (
	"fmt"

	"exam-worksheet/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	// AnswerKeySheet is the name of the single sheet in an answer key workbook
	AnswerKeySheet = "정답표"
	// MissingMark labels rows whose problem no longer exists
	MissingMark = "삭제됨"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var answerKeyHeaders = []interface{}{"번호", "문제 ID", "정답", "정답률", "난이도", "비고"}

// AnswerKey writes the answer key of a worksheet as an .xlsx workbook.
// Rows follow the order of problems.
func AnswerKey(worksheet *domain.Worksheet, problems []*domain.Problem) ([]byte, error) {
	if worksheet == nil {
		return nil, fmt.Errorf("worksheet cannot be nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AnswerKeySheet); err != nil {
		return nil, fmt.Errorf("failed to name answer key sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: worksheet.Title, Creator: worksheet.Author}); err != nil {
		return nil, fmt.Errorf("failed to set workbook properties: %w", err)
	}

	sw, err := f.NewStreamWriter(AnswerKeySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetColWidth(2, 2, 40); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	if err := sw.SetRow("A1", answerKeyHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range problems {
		if p == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, answerKeyRow(i+1, p)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush answer key: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write answer key workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func answerKeyRow(number int, p *domain.Problem) []interface{} {
	row := []interface{}{number, sanitizeForExcel(p.ID), "", "", sanitizeForExcel(p.Difficulty), ""}
	if p.Answer != nil {
		row[2] = *p.Answer
	}
	if p.CorrectRate != nil {
		row[3] = *p.CorrectRate
	}
	if p.IsMissing {
		row[5] = MissingMark
	}
	return row
}

// sanitizeForExcel escapes values that spreadsheet apps would evaluate as formulas
func sanitizeForExcel(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
