package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/repositories"
)

// ErrorResponse defines the structure of an error response
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error represents an API error
type Error struct {
	Message    string
	StatusCode int
	Code       string
	Fields     map[string]string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Common API errors
var (
	ErrInvalidRequest = &Error{Message: "Invalid request", StatusCode: http.StatusBadRequest, Code: "INVALID_REQUEST"}
	ErrUnauthorized   = &Error{Message: "Unauthorized", StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED"}
	ErrForbidden      = &Error{Message: "Forbidden", StatusCode: http.StatusForbidden, Code: "FORBIDDEN"}
	ErrNotFound       = &Error{Message: "Resource not found", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrConflict       = &Error{Message: "Resource already exists", StatusCode: http.StatusConflict, Code: "CONFLICT"}
	ErrStoreTimeout   = &Error{Message: "Store did not respond in time", StatusCode: http.StatusGatewayTimeout, Code: "STORE_TIMEOUT"}
	ErrStore          = &Error{Message: "Store request failed", StatusCode: http.StatusBadGateway, Code: "STORE_ERROR"}
)

// NewError creates a new API error with custom details
func NewError(message string, statusCode int, code string) *Error {
	return &Error{
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

// invalidRequest reports a malformed body or path parameter
func invalidRequest(message string) *Error {
	return NewError(message, http.StatusBadRequest, ErrInvalidRequest.Code)
}

// toAPIError maps service errors onto API errors
func toAPIError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &Error{
			Message:    "Validation error",
			StatusCode: http.StatusBadRequest,
			Code:       "VALIDATION_ERROR",
			Fields:     verr.Fields,
		}
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return ErrConflict
	case errors.Is(err, context.DeadlineExceeded):
		return ErrStoreTimeout
	default:
		return ErrStore
	}
}

// WriteError aborts the request with an error response
func WriteError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("code", apiErr.Code).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Message: apiErr.Message,
		Code:    apiErr.Code,
		Fields:  apiErr.Fields,
	})
}
