package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/internal/session"
	"github.com/gcbaptista/catalog-search/services"
)

// CreateSessionRequest opens a debounced search session over a stored catalog.
type CreateSessionRequest struct {
	CatalogID string `json:"catalog_id" binding:"required"`
}

// SetQueryRequest carries the query as currently typed.
type SetQueryRequest struct {
	Query string `json:"query"`
}

// SessionResponse is the state of a session.
type SessionResponse struct {
	SessionID string                `json:"session_id"`
	CatalogID string                `json:"catalog_id"`
	IsActive  bool                  `json:"is_active"`
	Result    services.SearchResult `json:"result"`
}

// CreateSessionHandler creates a new search session.
// Request Body: CreateSessionRequest
func (api *API) CreateSessionHandler(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCatalogID(req.CatalogID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	catalog, err := api.catalogs.Get(req.CatalogID)
	if err != nil {
		SendDomainError(c, "get catalog", err)
		return
	}

	s, err := api.sessions.Create(catalog)
	if err != nil {
		SendDomainError(c, "create session", err)
		return
	}

	api.logger.Debug("session opened", zap.String("session_id", s.ID()), zap.String("catalog_id", catalog.ID))
	c.JSON(http.StatusCreated, SessionResponse{
		SessionID: s.ID(),
		CatalogID: catalog.ID,
		IsActive:  s.IsActive(),
		Result:    s.Snapshot(),
	})
}

// ListSessionsHandler lists the live session ids.
func (api *API) ListSessionsHandler(c *gin.Context) {
	ids := api.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": ids,
		"total":    len(ids),
	})
}

// GetSessionStatsHandler returns session lifecycle statistics.
func (api *API) GetSessionStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.sessions.GetStats())
}

// GetSessionHandler returns the current snapshot of a session.
func (api *API) GetSessionHandler(c *gin.Context) {
	s, ok := api.lookupSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		SessionID: s.ID(),
		CatalogID: s.CatalogID(),
		IsActive:  s.IsActive(),
		Result:    s.Snapshot(),
	})
}

// SetSessionQueryHandler records a typed query. The returned snapshot still holds the
// previous committed results until the debounce delay elapses.
// Request Body: SetQueryRequest
func (api *API) SetSessionQueryHandler(c *gin.Context) {
	s, ok := api.lookupSession(c)
	if !ok {
		return
	}

	var req SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateQuery("query", req.Query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	s.SetQuery(req.Query)
	c.JSON(http.StatusOK, SessionResponse{
		SessionID: s.ID(),
		CatalogID: s.CatalogID(),
		IsActive:  s.IsActive(),
		Result:    s.Snapshot(),
	})
}

// ClearSessionQueryHandler resets the session query immediately.
func (api *API) ClearSessionQueryHandler(c *gin.Context) {
	s, ok := api.lookupSession(c)
	if !ok {
		return
	}

	s.Clear()
	c.JSON(http.StatusOK, SessionResponse{
		SessionID: s.ID(),
		CatalogID: s.CatalogID(),
		IsActive:  s.IsActive(),
		Result:    s.Snapshot(),
	})
}

// DeleteSessionHandler closes a session.
func (api *API) DeleteSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if result := ValidateSessionID(sessionID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.sessions.Delete(sessionID); err != nil {
		SendDomainError(c, "delete session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' deleted"})
}

func (api *API) lookupSession(c *gin.Context) (*session.Session, bool) {
	sessionID := c.Param("sessionId")

	if result := ValidateSessionID(sessionID); result.HasErrors() {
		SendValidationError(c, result)
		return nil, false
	}

	s, err := api.sessions.Get(sessionID)
	if err != nil {
		SendDomainError(c, "get session", err)
		return nil, false
	}
	return s, true
}
