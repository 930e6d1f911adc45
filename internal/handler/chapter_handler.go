package handler

import (
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/middleware"
	"exam-worksheet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChapterHandler serves chapter trees
type ChapterHandler struct {
	service service.ChapterService
}

// NewChapterHandler creates a new ChapterHandler instance
func NewChapterHandler(service service.ChapterService) *ChapterHandler {
	return &ChapterHandler{service: service}
}

// GetTree godoc
// @Summary Get the chapter tree of a subject
// @Description Returns the subject's chapter forest, ordered by chapter number. Subjects without tag rows fall back to the configured default tree.
// @Tags chapters
// @Produce json
// @Param subject path string true "Subject name, e.g. 통합사회"
// @Success 200 {object} dto.ChapterTreeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /chapters/{subject} [get]
func (h *ChapterHandler) GetTree(c *fiber.Ctx) error {
	subject := c.Locals(middleware.ValidatedSubjectKey).(string)

	tree, err := h.service.GetTree(c.Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChapterTreeResponse{Subject: subject, Chapters: tree})
}
