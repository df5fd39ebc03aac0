package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"stock-backend/internal/models"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks struct tags and wraps failures in ErrValidation,
// listing field=tag pairs so the caller can see what was rejected.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		fields = append(fields, ve.Field()+"="+ve.Tag())
	}
	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(fields, ", "))
}

// invalid builds an ErrValidation with a message
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, fmt.Sprintf(format, args...))
}

// referenced builds an ErrReferenced for a blocked delete
func referenced(entity string, id int, count int, by string) error {
	return fmt.Errorf("delete %s %d: %w: %d %s", entity, id, models.ErrReferenced, count, by)
}
