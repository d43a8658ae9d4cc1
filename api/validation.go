// Package api provides the HTTP facade over catalogs, one-shot search and debounced search sessions.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/catalog-search/services"
)

const (
	// MaxQueryLength is the longest accepted query, in characters
	MaxQueryLength = 256

	maxCatalogIDLength = 128
	maxMultiQueries    = 20
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCatalogID validates a catalog id path parameter
func ValidateCatalogID(catalogID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if catalogID == "" {
		result.AddError("catalogId", "Catalog ID is required")
		return result
	}

	if strings.TrimSpace(catalogID) != catalogID {
		result.AddError("catalogId", "Catalog ID cannot have leading or trailing whitespace")
		return result
	}

	if len(catalogID) > maxCatalogIDLength {
		result.AddError("catalogId", fmt.Sprintf("Catalog ID cannot be longer than %d bytes", maxCatalogIDLength))
	}

	return result
}

// ValidateSessionID validates a session id, which must be a UUID
func ValidateSessionID(sessionID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if sessionID == "" {
		result.AddError("sessionId", "Session ID is required")
		return result
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		result.AddError("sessionId", "Session ID must be a valid UUID")
	}

	return result
}

// ValidateQuery validates a raw search query. Empty queries are valid.
func ValidateQuery(field, query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !utf8.ValidString(query) {
		result.AddError(field, "Query must be valid UTF-8")
		return result
	}

	if utf8.RuneCountInString(query) > MaxQueryLength {
		result.AddError(field, fmt.Sprintf("Query cannot be longer than %d characters", MaxQueryLength))
	}

	return result
}

// ValidateMultiSearchRequest validates the named queries of a multi-search request
func ValidateMultiSearchRequest(req *services.MultiSearchQuery) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Queries) == 0 {
		result.AddError("queries", "At least one query is required")
		return result
	}

	if len(req.Queries) > maxMultiQueries {
		result.AddError("queries", fmt.Sprintf("At most %d queries are allowed", maxMultiQueries))
		return result
	}

	seen := make(map[string]bool, len(req.Queries))
	for i, namedQuery := range req.Queries {
		field := fmt.Sprintf("queries[%d]", i)
		if strings.TrimSpace(namedQuery.Name) == "" {
			result.AddError(field+".name", "All queries must have a non-empty name")
			continue
		}
		if seen[namedQuery.Name] {
			result.AddError(field+".name", "Query names must be unique: '"+namedQuery.Name+"' appears multiple times")
			continue
		}
		seen[namedQuery.Name] = true

		for _, queryErr := range ValidateQuery(field+".query", namedQuery.Query).Errors {
			result.AddError(queryErr.Field, queryErr.Message)
		}
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
