package handler

import (
	"fmt"

	"exam-worksheet/internal/export"
	"exam-worksheet/internal/middleware"
	"exam-worksheet/internal/service"

	"github.com/gofiber/fiber/v2"
)

const pdfContentType = "application/pdf"

// DocumentHandler serves printable worksheet output
type DocumentHandler struct {
	service service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// GetDocument godoc
// @Summary Get the layout tree of a worksheet
// @Description Returns the declarative A4 layout with problem images inlined as data URIs. Images missing from storage are skipped.
// @Tags documents
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Param answers query bool false "Append answer images after a page break"
// @Success 200 {object} pdf.Document
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /worksheets/{id}/document [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	doc, err := h.service.BuildDocument(c.Context(), middleware.RequesterID(c), id, c.QueryBool("answers"))
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// GetPDF godoc
// @Summary Download a worksheet as PDF
// @Tags documents
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Param answers query bool false "Append answer images after a page break"
// @Success 200 {file} binary
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /worksheets/{id}/pdf [get]
func (h *DocumentHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	out, err := h.service.RenderPDF(c.Context(), middleware.RequesterID(c), id, c.QueryBool("answers"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, pdfContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="worksheet-%s.pdf"`, id))
	return c.Send(out)
}

// GetAnswerKey godoc
// @Summary Download the answer key of a worksheet
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Success 200 {file} binary
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id}/answer-key.xlsx [get]
func (h *DocumentHandler) GetAnswerKey(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	out, err := h.service.AnswerKey(c.Context(), middleware.RequesterID(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="answer-key-%s.xlsx"`, id))
	return c.Send(out)
}
