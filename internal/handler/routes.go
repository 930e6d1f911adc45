package handler

import (
	"exam-worksheet/internal/middleware"
	"exam-worksheet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Chapters   *ChapterHandler
	Problems   *ProblemHandler
	Worksheets *WorksheetHandler
	Documents  *DocumentHandler
}

// RegisterRoutes mounts every API route on router. Requests carrying a bearer
// token are attributed to its subject; /me routes require one.
func RegisterRoutes(router fiber.Router, h Handlers, authService service.AuthService, vm *middleware.ValidationMiddleware) {
	optionalAuth := middleware.OptionalAuth(authService)
	validID := vm.ValidateWorksheetID()

	router.Get("/chapters/:subject", vm.ValidateSubject(), h.Chapters.GetTree)
	router.Post("/problems/search", h.Problems.Search)

	worksheets := router.Group("/worksheets", optionalAuth)
	worksheets.Post("/", h.Worksheets.Create)
	worksheets.Get("/public", h.Worksheets.ListPublic)
	worksheets.Get("/:id", validID, h.Worksheets.Get)
	worksheets.Put("/:id", validID, h.Worksheets.Update)
	worksheets.Delete("/:id", validID, h.Worksheets.Delete)
	worksheets.Patch("/:id/visibility", validID, h.Worksheets.SetVisibility)
	worksheets.Get("/:id/document", validID, h.Documents.GetDocument)
	worksheets.Get("/:id/pdf", validID, h.Documents.GetPDF)
	worksheets.Get("/:id/answer-key.xlsx", validID, h.Documents.GetAnswerKey)

	me := router.Group("/me", middleware.Protected(authService))
	me.Get("/worksheets", h.Worksheets.ListMine)
}
