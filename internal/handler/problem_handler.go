package handler

import (
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/service"
	"exam-worksheet/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProblemHandler handles problem search requests
type ProblemHandler struct {
	service   service.ProblemService
	validator *validation.Validator
}

// NewProblemHandler creates a new ProblemHandler instance
func NewProblemHandler(service service.ProblemService, v *validation.Validator) *ProblemHandler {
	return &ProblemHandler{service: service, validator: v}
}

// Search godoc
// @Summary Search problems
// @Description Loads the subject's problems, orders them by the sort rules, then applies the filter criteria. Selected chapters are expanded to their descendants; an empty chapter selection returns no problems.
// @Tags problems
// @Accept json
// @Produce json
// @Param request body dto.SearchProblemsRequest true "Search criteria"
// @Success 200 {object} dto.SearchProblemsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /problems/search [post]
func (h *ProblemHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchProblemsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse search request", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Search(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
