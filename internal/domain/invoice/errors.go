package invoice

import (
	ierr "github.com/ledgerline/ledgerline/internal/errors"
)

// NewValidationError creates a field-scoped invoice validation error.
func NewValidationError(field, message string) error {
	return ierr.NewError("invoice validation failed").
		WithHintf("%s %s", field, message).
		WithReportableDetails(map[string]any{
			"field": field,
		}).
		Mark(ierr.ErrValidation)
}
