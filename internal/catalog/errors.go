package catalog

import (
	"errors"
	"fmt"
)

// ValidationError is returned for input that is rejected before the store is contacted.
type ValidationError struct {
	Code    string
	Message string
	Value   string // offending field name or value, when there is one
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrInvalidTransition = &ValidationError{Code: "invalid_transition", Message: "an available book cannot be loaned to anyone"}
	ErrMissingLoanee     = &ValidationError{Code: "missing_loanee", Message: "a loaned book needs the name of the person it is loaned to"}
	ErrInvalidStatus     = &ValidationError{Code: "invalid_status", Message: "status must be Beschikbaar or Uitgeleend"}
	ErrNoCriteria        = &ValidationError{Code: "no_criteria", Message: "at least one search criterion is required"}
	ErrTooManyCovers     = &ValidationError{Code: "too_many_covers", Message: fmt.Sprintf("a book has at most %d cover images", MaxCoverImages)}
	ErrTooManyCategories = &ValidationError{Code: "too_many_categories", Message: fmt.Sprintf("a book has at most %d categories", MaxCategories)}
)

var (
	ErrDuplicateTitle = errors.New("title already exists in the catalog")
	ErrNotFound       = errors.New("book not found")
)

// MissingFieldError reports a required attribute left blank.
func MissingFieldError(name string) *ValidationError {
	return &ValidationError{Code: "missing_field", Message: name + " is required", Value: name}
}

// InvalidCategoryError reports a tag outside the fixed category set.
func InvalidCategoryError(c Category) *ValidationError {
	return &ValidationError{Code: "invalid_category", Message: fmt.Sprintf("unknown category %q", string(c)), Value: string(c)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
