package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/homebudget/backend/internal/auth"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	codePermissionDenied = "permission_denied"
	codeNotAuthenticated = "not_authenticated"
	codeNotFound         = "not_found"
	codeProtected        = "protected"
	codeError            = "error"
)

type httpError struct {
	Error string `json:"error" example:"this field is required"` // Human readable description of the error
	Code  string `json:"code" example:"required"`                // Machine readable error code
	Field string `json:"field,omitempty" example:"name"`         // The field the error refers to, for validation errors only
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	var validationError models.ValidationError
	var validationErrors validator.ValidationErrors
	var typeError *json.UnmarshalTypeError

	switch {
	case errors.As(err, &validationError), errors.As(err, &validationErrors), errors.As(err, &typeError):
		return http.StatusBadRequest
	case errors.Is(err, httputil.ErrInvalidBody), errors.Is(err, httputil.ErrRequestBodyEmpty), errors.Is(err, httputil.ErrInvalidUUID):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrResourceInUse):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// newHTTPError converts an error into the response body for it.
func newHTTPError(err error) httpError {
	var validationError models.ValidationError
	if errors.As(err, &validationError) {
		return httpError{Error: validationError.Message, Code: validationError.Code, Field: validationError.Field}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fieldError(validationErrors[0])
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		return httpError{
			Error: fmt.Sprintf("expected a value of type %s", typeError.Type),
			Code:  models.CodeInvalid,
			Field: typeError.Field,
		}
	}

	switch status(err) {
	case http.StatusBadRequest:
		return httpError{Error: err.Error(), Code: models.CodeInvalid}
	case http.StatusUnauthorized:
		return httpError{Error: err.Error(), Code: codeNotAuthenticated}
	case http.StatusForbidden:
		return httpError{Error: err.Error(), Code: codePermissionDenied}
	case http.StatusNotFound:
		return httpError{Error: err.Error(), Code: codeNotFound}
	case http.StatusConflict:
		return httpError{Error: err.Error(), Code: codeProtected}
	}

	return httpError{Error: models.ErrGeneral.Error(), Code: codeError}
}

// fieldError converts a failed binding validation.
func fieldError(e validator.FieldError) httpError {
	field := lowerFirst(e.Field())

	switch e.Tag() {
	case "required":
		return httpError{Error: "this field is required", Code: models.CodeRequired, Field: field}
	case "max":
		return httpError{Error: fmt.Sprintf("ensure this field has no more than %s characters", e.Param()), Code: models.CodeMaxLength, Field: field}
	case "min":
		return httpError{Error: fmt.Sprintf("ensure this field has at least %s characters", e.Param()), Code: models.CodeMinLength, Field: field}
	case "email":
		return httpError{Error: "enter a valid email address", Code: models.CodeInvalid, Field: field}
	}

	return httpError{Error: fmt.Sprintf("%s is not valid", field), Code: models.CodeInvalid, Field: field}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// writeError writes the error response. Errors that do not map to a client
// error are logged with the request id.
func writeError(c *gin.Context, err error) {
	s := status(err)
	if s == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, strings.TrimSpace(err.Error()))
	}

	c.AbortWithStatusJSON(s, newHTTPError(err))
}

// WriteError is writeError for middlewares outside of this package.
func WriteError(c *gin.Context, err error) {
	writeError(c, err)
}
