package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrForbidden        = errors.New("you do not have permission to perform this action")
	ErrResourceInUse    = errors.New("the resource is still referenced by other resources and cannot be deleted")
)

// Validation error codes. They are part of the API contract, clients
// match on them.
const (
	CodeRequired         = "required"
	CodeBlank            = "blank"
	CodeMaxLength        = "max_length"
	CodeMinLength        = "min_length"
	CodeInvalid          = "invalid"
	CodeMaxDigits        = "max_digits"
	CodeMaxWholeDigits   = "max_whole_digits"
	CodeMaxDecimalPlaces = "max_decimal_places"
	CodeMinValue         = "min_value"
	CodeDoesNotExist     = "does_not_exist"
	CodeUnique           = "unique"
)

// ValidationError is returned when a field of a resource does not
// satisfy its constraints.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationError(field, code, format string, args ...any) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Required is the error for a field that is missing from a request.
func Required(field string) ValidationError {
	return validationError(field, CodeRequired, "this field is required")
}

// notFoundError matches both ErrResourceNotFound and gorm.ErrRecordNotFound
// so that gorm helpers relying on the latter keep working after the
// query callback rewrote the error.
type notFoundError struct {
	resource string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s %s matching your query", ErrResourceNotFound, e.resource)
}

func (e notFoundError) Is(target error) bool {
	return target == ErrResourceNotFound || target == gorm.ErrRecordNotFound
}

// NotFound returns the not found error for the named resource.
func NotFound(resource string) error {
	return notFoundError{resource: resource}
}
