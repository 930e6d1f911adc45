package middleware

import (
	"net/url"

	"exam-worksheet/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys for validated path parameters
const (
	ValidatedWorksheetIDKey = "validated_worksheet_id"
	ValidatedSubjectKey     = "validated_subject"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateWorksheetID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateWorksheetID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateWorksheetID(id); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedWorksheetIDKey, id)
		return c.Next()
	}
}

// ValidateSubject validates the :subject path parameter
func (vm *ValidationMiddleware) ValidateSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// clients may leave non-ASCII subjects percent-encoded
		subject, err := url.PathUnescape(c.Params("subject"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "subject is not valid URL encoding")
		}
		if errs := vm.validator.ValidateSubject(subject); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedSubjectKey, subject)
		return c.Next()
	}
}
