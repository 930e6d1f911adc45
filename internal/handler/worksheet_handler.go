package handler

import (
	"exam-worksheet/internal/config"
	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/dto"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/middleware"
	"exam-worksheet/internal/service"
	"exam-worksheet/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WorksheetHandler handles worksheet CRUD and listing
type WorksheetHandler struct {
	service   service.WorksheetService
	validator *validation.Validator
	cfg       config.WorksheetConfig
}

// NewWorksheetHandler creates a new WorksheetHandler instance
func NewWorksheetHandler(service service.WorksheetService, v *validation.Validator, cfg config.WorksheetConfig) *WorksheetHandler {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &WorksheetHandler{service: service, validator: v, cfg: cfg}
}

// Create godoc
// @Summary Create a worksheet
// @Description Saves an ordered problem selection. When a bearer token is sent the requester becomes the owner.
// @Tags worksheets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateWorksheetRequest true "Worksheet"
// @Success 201 {object} dto.WorksheetResponse
// @Failure 400 {object} middleware.ErrorResponse "Empty selection, blank title or mixed ID namespaces"
// @Failure 502 {object} middleware.ErrorResponse
// @Router /worksheets [post]
func (h *WorksheetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorksheetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse create worksheet request", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	created, err := h.service.Create(c.Context(), middleware.RequesterID(c), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewWorksheetResponse(created))
}

// Get godoc
// @Summary Get a worksheet
// @Description Returns the worksheet with current problem data in stored order. Problems deleted since saving are returned as placeholders with is_missing set.
// @Tags worksheets
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Success 200 {object} dto.WorksheetDetailResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id} [get]
func (h *WorksheetHandler) Get(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	detail, err := h.service.Get(c.Context(), middleware.RequesterID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetDetailResponse(detail))
}

// Update godoc
// @Summary Update a worksheet
// @Description Replaces the title, author, selection, criteria and sort rules. Owner only.
// @Tags worksheets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Param request body dto.UpdateWorksheetRequest true "Worksheet"
// @Success 200 {object} dto.WorksheetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id} [put]
func (h *WorksheetHandler) Update(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	var req dto.UpdateWorksheetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse update worksheet request", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	updated, err := h.service.Update(c.Context(), middleware.RequesterID(c), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetResponse(updated))
}

// Delete godoc
// @Summary Delete a worksheet
// @Tags worksheets
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Success 204
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id} [delete]
func (h *WorksheetHandler) Delete(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	if err := h.service.Delete(c.Context(), middleware.RequesterID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetVisibility godoc
// @Summary Publish or unpublish a worksheet
// @Tags worksheets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Worksheet ID (ULID)"
// @Param request body dto.VisibilityRequest true "Visibility"
// @Success 200 {object} dto.WorksheetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /worksheets/{id}/visibility [patch]
func (h *WorksheetHandler) SetVisibility(c *fiber.Ctx) error {
	id := c.Locals(middleware.ValidatedWorksheetIDKey).(string)

	var req dto.VisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateStruct(&req); len(errs) > 0 {
		return errs
	}

	updated, err := h.service.SetVisibility(c.Context(), middleware.RequesterID(c), id, *req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetResponse(updated))
}

// ListPublic godoc
// @Summary List public worksheets
// @Description Newest first. q filters by a case-insensitive title substring.
// @Tags worksheets
// @Produce json
// @Param q query string false "Title search"
// @Param page query int false "Page number, from 1"
// @Param size query int false "Page size"
// @Success 200 {object} dto.WorksheetListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /worksheets/public [get]
func (h *WorksheetHandler) ListPublic(c *fiber.Ctx) error {
	page, errs := h.pagination(c)
	if len(errs) > 0 {
		return errs
	}

	items, total, err := h.service.ListPublic(c.Context(), c.Query("q"), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetListResponse(items, total, page))
}

// ListMine godoc
// @Summary List my worksheets
// @Tags worksheets
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number, from 1"
// @Param size query int false "Page size"
// @Success 200 {object} dto.WorksheetListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /me/worksheets [get]
func (h *WorksheetHandler) ListMine(c *fiber.Ctx) error {
	page, errs := h.pagination(c)
	if len(errs) > 0 {
		return errs
	}

	items, total, err := h.service.ListByOwner(c.Context(), middleware.RequesterID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorksheetListResponse(items, total, page))
}

func (h *WorksheetHandler) pagination(c *fiber.Ctx) (domain.Page, domain.ValidationErrors) {
	return h.validator.ValidatePagination(c.Query("page"), c.Query("size"), h.cfg.DefaultPageSize, h.cfg.MaxPageSize)
}
