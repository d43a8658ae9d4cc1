package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/catalog-search/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeCatalogNotFound  ErrorCode = "CATALOG_NOT_FOUND"
	ErrorCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"
	ErrorCodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendCatalogNotFoundError sends a standardized catalog not found error
func SendCatalogNotFoundError(c *gin.Context, catalogID string) {
	SendError(c, http.StatusNotFound, ErrorCodeCatalogNotFound,
		"Catalog '"+catalogID+"' not found")
}

// SendSessionNotFoundError sends a standardized session not found error
func SendSessionNotFoundError(c *gin.Context, sessionID string) {
	SendError(c, http.StatusNotFound, ErrorCodeSessionNotFound,
		"Session '"+sessionID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendRateLimitedError sends a standardized rate limit error
func SendRateLimitedError(c *gin.Context) {
	SendError(c, http.StatusTooManyRequests, ErrorCodeRateLimited, "rate limit exceeded")
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendDomainError maps errors from the catalog store and session manager to API errors
func SendDomainError(c *gin.Context, operation string, err error) {
	var notFoundCatalog *internalErrors.CatalogNotFoundError
	var notFoundSession *internalErrors.SessionNotFoundError
	var validation *internalErrors.ValidationError

	switch {
	case errors.As(err, &notFoundCatalog):
		SendCatalogNotFoundError(c, notFoundCatalog.CatalogID)
	case errors.As(err, &notFoundSession):
		SendSessionNotFoundError(c, notFoundSession.SessionID)
	case errors.As(err, &validation):
		result := &ValidationResult{Valid: true}
		result.AddError(validation.Field, validation.Message)
		SendStructuredValidationError(c, result)
	case errors.Is(err, internalErrors.ErrManagerStopped):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeServiceUnavailable, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
