package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/catalog-search/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchHandler runs an immediate, non-debounced search over a catalog.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateQuery("query", req.Query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	catalog, err := api.catalogs.Get(catalogID)
	if err != nil {
		SendDomainError(c, "get catalog", err)
		return
	}

	c.JSON(http.StatusOK, api.searcher.Search(req.Query, catalog))
}

// MultiSearchHandler runs several named queries against the same catalog snapshot.
// Request Body: services.MultiSearchQuery
func (api *API) MultiSearchHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	var req services.MultiSearchQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateMultiSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	catalog, err := api.catalogs.Get(catalogID)
	if err != nil {
		SendDomainError(c, "get catalog", err)
		return
	}

	results, err := api.searcher.MultiSearch(c.Request.Context(), catalog, req)
	if err != nil {
		SendInternalError(c, "multi-search", err)
		return
	}

	c.JSON(http.StatusOK, results)
}
