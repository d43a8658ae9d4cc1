package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/model"
)

// PutCatalogRequest is the body of a catalog upload. The id comes from the path.
type PutCatalogRequest struct {
	Items      []model.CatalogItem     `json:"items"`
	Categories []model.CatalogCategory `json:"categories"`
}

// CatalogSummary describes a stored catalog snapshot.
type CatalogSummary struct {
	CatalogID         string `json:"catalog_id"`
	Version           uint64 `json:"version"`
	ItemCount         int    `json:"item_count"`
	CategoryCount     int    `json:"category_count"`
	SessionsRefreshed int    `json:"sessions_refreshed,omitempty"`
}

func summarize(catalog *model.Catalog) CatalogSummary {
	return CatalogSummary{
		CatalogID:     catalog.ID,
		Version:       catalog.Version,
		ItemCount:     len(catalog.Items),
		CategoryCount: len(catalog.Categories),
	}
}

// PutCatalogHandler creates or replaces a catalog and pushes the new snapshot to its live sessions.
// Request Body: PutCatalogRequest
func (api *API) PutCatalogHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	if result := ValidateCatalogID(catalogID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var req PutCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	stored, err := api.catalogs.Put(model.Catalog{
		ID:         catalogID,
		Items:      req.Items,
		Categories: req.Categories,
	})
	if err != nil {
		SendDomainError(c, "store catalog", err)
		return
	}

	summary := summarize(stored)
	if api.sessions != nil {
		summary.SessionsRefreshed = api.sessions.RefreshCatalog(stored)
	}

	api.logger.Info("catalog stored",
		zap.String("catalog_id", stored.ID),
		zap.Uint64("version", stored.Version),
		zap.Int("items", summary.ItemCount),
	)
	c.JSON(http.StatusOK, summary)
}

// ListCatalogsHandler lists the stored catalogs.
func (api *API) ListCatalogsHandler(c *gin.Context) {
	ids := api.catalogs.List()

	catalogs := make([]CatalogSummary, 0, len(ids))
	for _, id := range ids {
		catalog, err := api.catalogs.Get(id)
		if err != nil {
			// Deleted between List and Get
			continue
		}
		catalogs = append(catalogs, summarize(catalog))
	}

	c.JSON(http.StatusOK, gin.H{
		"catalogs": catalogs,
		"total":    len(catalogs),
	})
}

// GetCatalogHandler returns the current snapshot of a catalog.
func (api *API) GetCatalogHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	catalog, err := api.catalogs.Get(catalogID)
	if err != nil {
		SendDomainError(c, "get catalog", err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// DeleteCatalogHandler deletes a catalog and closes every session searching it.
func (api *API) DeleteCatalogHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	if err := api.catalogs.Delete(catalogID); err != nil {
		SendDomainError(c, "delete catalog", err)
		return
	}

	closed := 0
	if api.sessions != nil {
		closed = api.sessions.DropCatalog(catalogID)
	}

	api.logger.Info("catalog deleted", zap.String("catalog_id", catalogID), zap.Int("sessions_closed", closed))
	c.JSON(http.StatusOK, gin.H{
		"message":         "Catalog '" + catalogID + "' deleted",
		"sessions_closed": closed,
	})
}

// PopularCategoriesHandler returns the categories holding the most items, independent of any query.
func (api *API) PopularCategoriesHandler(c *gin.Context) {
	catalogID := c.Param("catalogId")

	catalog, err := api.catalogs.Get(catalogID)
	if err != nil {
		SendDomainError(c, "get catalog", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog_id": catalogID,
		"categories": api.searcher.PopularCategories(catalog),
	})
}
