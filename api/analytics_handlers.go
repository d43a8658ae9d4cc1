package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"service":   "catalog-search",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}
	if api.catalogs != nil {
		response["catalogs"] = len(api.catalogs.List())
	}
	if api.sessions != nil {
		response["sessions"] = api.sessions.Count()
	}
	c.JSON(http.StatusOK, response)
}
