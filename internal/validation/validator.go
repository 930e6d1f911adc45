package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/util"

	"github.com/go-playground/validator/v10"
)

const maxSubjectLength = 50

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the struct tag rules of a request body
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

// ValidateWorksheetID validates a worksheet path parameter
func (v *Validator) ValidateWorksheetID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errs = append(errs, domain.NewInvalidFormatError("id", id))
	}

	return errs
}

// ValidateSubject validates a subject path parameter
func (v *Validator) ValidateSubject(subject string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(subject) == "" {
		errs = append(errs, domain.NewMissingFieldError("subject"))
	} else if n := utf8.RuneCountInString(subject); n > maxSubjectLength {
		errs = append(errs, domain.NewOutOfRangeError("subject", n, 1, maxSubjectLength))
	}

	return errs
}

// ValidatePagination parses page and size query values. Blank values take the defaults.
func (v *Validator) ValidatePagination(pageStr, sizeStr string, defaultSize, maxSize int) (domain.Page, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	page := domain.Page{Number: 1, Size: defaultSize}

	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		switch {
		case err != nil:
			errs = append(errs, domain.NewInvalidFormatError("page", pageStr))
		case n < 1:
			errs = append(errs, domain.NewOutOfRangeError("page", n, 1, int(^uint32(0)>>1)))
		default:
			page.Number = n
		}
	}

	if sizeStr != "" {
		n, err := strconv.Atoi(sizeStr)
		switch {
		case err != nil:
			errs = append(errs, domain.NewInvalidFormatError("size", sizeStr))
		case n < 1 || n > maxSize:
			errs = append(errs, domain.NewOutOfRangeError("size", n, 1, maxSize))
		default:
			page.Size = n
		}
	}

	return page, errs
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "min", "max", "gte", "lte", "gt", "lt", "gtefield", "ltefield":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s fails the %s=%s constraint", field, fe.Tag(), fe.Param()),
			Value:   fe.Value(),
		}
	case "oneof":
		ve := domain.NewInvalidFormatError(field, fe.Value())
		ve.Message = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		return ve
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
