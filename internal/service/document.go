package service

import (
	"context"
	"errors"
	"strconv"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/export"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/pdf"
	"exam-worksheet/internal/util"

	"go.uber.org/zap"
)

// PDFRenderer renders a layout tree to PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, doc *pdf.Document) ([]byte, error)
}

// DocumentService turns a stored worksheet into printable output
type DocumentService interface {
	// BuildDocument returns the layout tree of a worksheet. Answers are appended when withAnswers is set.
	BuildDocument(ctx context.Context, requesterID, worksheetID string, withAnswers bool) (*pdf.Document, error)
	RenderPDF(ctx context.Context, requesterID, worksheetID string, withAnswers bool) ([]byte, error)
	AnswerKey(ctx context.Context, requesterID, worksheetID string) ([]byte, error)
}

type documentServiceImpl struct {
	worksheets WorksheetService
	images     domain.ImageFetcher
	renderer   PDFRenderer
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(worksheets WorksheetService, images domain.ImageFetcher, renderer PDFRenderer) DocumentService {
	return &documentServiceImpl{worksheets: worksheets, images: images, renderer: renderer}
}

// BuildDocument implements DocumentService
func (s *documentServiceImpl) BuildDocument(ctx context.Context, requesterID, worksheetID string, withAnswers bool) (*pdf.Document, error) {
	detail, err := s.worksheets.Get(ctx, requesterID, worksheetID)
	if err != nil {
		return nil, err
	}

	problemImages := make([]pdf.Image, 0, len(detail.Problems))
	var answerImages []pdf.Image
	for i, p := range detail.Problems {
		if p.IsMissing {
			continue
		}
		caption := strconv.Itoa(i + 1)

		img, ok, err := s.fetchImage(ctx, p.ProblemFilename, caption)
		if err != nil {
			return nil, err
		}
		if ok {
			problemImages = append(problemImages, img)
		}

		if withAnswers && p.HasAnswer() {
			img, ok, err := s.fetchImage(ctx, p.AnswerFilename, caption)
			if err != nil {
				return nil, err
			}
			if ok {
				answerImages = append(answerImages, img)
			}
		}
	}

	ws := detail.Worksheet
	doc := pdf.BuildDocument(problemImages, answerImages, pdf.DocumentInfo{
		Title:     ws.Title,
		Author:    ws.Author,
		CreatedAt: ws.CreatedAt,
	})

	logger.Get().Debug("Worksheet document built",
		zap.String("worksheet_id", worksheetID),
		zap.Int("problems", len(problemImages)),
		zap.Int("answers", len(answerImages)),
		zap.Int("missing", detail.MissingCount()))
	return doc, nil
}

// RenderPDF implements DocumentService
func (s *documentServiceImpl) RenderPDF(ctx context.Context, requesterID, worksheetID string, withAnswers bool) ([]byte, error) {
	doc, err := s.BuildDocument(ctx, requesterID, worksheetID, withAnswers)
	if err != nil {
		return nil, err
	}
	out, err := s.renderer.Render(ctx, doc)
	if err != nil {
		logger.Get().Error("Failed to render worksheet", zap.Error(err), zap.String("worksheet_id", worksheetID))
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		return nil, domain.NewRenderError(err)
	}
	return out, nil
}

// AnswerKey implements DocumentService
func (s *documentServiceImpl) AnswerKey(ctx context.Context, requesterID, worksheetID string) ([]byte, error) {
	detail, err := s.worksheets.Get(ctx, requesterID, worksheetID)
	if err != nil {
		return nil, err
	}
	out, err := export.AnswerKey(detail.Worksheet, detail.Problems)
	if err != nil {
		logger.Get().Error("Failed to export answer key", zap.Error(err), zap.String("worksheet_id", worksheetID))
		return nil, domain.NewInternalError("Failed to export answer key", err)
	}
	return out, nil
}

// fetchImage downloads and inlines one image. Objects missing from storage are
// skipped so a single deleted file does not fail the whole document.
func (s *documentServiceImpl) fetchImage(ctx context.Context, filename, caption string) (pdf.Image, bool, error) {
	if filename == "" {
		return pdf.Image{}, false, nil
	}
	data, err := s.images.Fetch(ctx, filename)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			logger.Get().Warn("Image missing from storage, skipping", zap.String("filename", filename))
			return pdf.Image{}, false, nil
		}
		if _, ok := domain.AsDomainError(err); ok {
			return pdf.Image{}, false, err
		}
		logger.Get().Error("Failed to fetch image", zap.Error(err), zap.String("filename", filename))
		return pdf.Image{}, false, domain.NewStoreError("Failed to fetch problem image", err)
	}
	return pdf.Image{Source: util.EncodeDataURI(data), Caption: caption}, true, nil
}
