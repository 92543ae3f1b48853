package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"adcheck/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes. UnparsableResponse and SchemaMismatch are distinct from
// UpstreamFailure so an operator can tell "the model misbehaved" apart from
// "the network failed"; both suggest a retry to the user.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, webp, gif"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELD", "a required field is missing"
	case errors.Is(err, domain.ErrInvalidStage):
		return http.StatusConflict, "INVALID_STAGE", "operation not allowed in the session's current stage"
	case errors.Is(err, domain.ErrUnknownAdType):
		return http.StatusBadRequest, "UNKNOWN_AD_TYPE", "unknown advertisement type"
	case errors.Is(err, domain.ErrEmptyChecklist):
		return http.StatusBadGateway, "EMPTY_CHECKLIST", "no checklist is registered for this advertisement type"
	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusBadGateway, "UPSTREAM_FAILURE", "the analysis service did not respond; please retry"
	case errors.Is(err, domain.ErrUnparsableResponse):
		return http.StatusBadGateway, "UNPARSABLE_RESPONSE", "the analysis result could not be interpreted; please retry"
	case errors.Is(err, domain.ErrSchemaMismatch):
		return http.StatusBadGateway, "SCHEMA_MISMATCH", "the analysis result could not be interpreted; please retry"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	RespondError(c, status, code, msg)
}
