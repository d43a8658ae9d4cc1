package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/internal/analytics"
	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/internal/metrics"
	"github.com/gcbaptista/catalog-search/internal/search"
	"github.com/gcbaptista/catalog-search/internal/session"
	"github.com/gcbaptista/catalog-search/services"
)

// Dependencies are the components served by the HTTP API.
type Dependencies struct {
	Catalogs  services.CatalogManager
	Searcher  *search.Service
	Sessions  *session.Manager
	Analytics *analytics.Service
	Logger    *zap.Logger
}

// RouterConfig holds the middleware settings of the router.
type RouterConfig struct {
	MaxBodyBytes      int64 // 0 disables the limit
	RequestsPerMinute int   // 0 disables rate limiting
	Burst             int
}

// API holds dependencies for API handlers.
type API struct {
	catalogs  services.CatalogManager
	searcher  *search.Service
	sessions  *session.Manager
	analytics *analytics.Service
	logger    *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	analyticsService := deps.Analytics
	if analyticsService == nil {
		analyticsService = analytics.NewService(deps.Catalogs, deps.Logger)
	}
	return &API{
		catalogs:  deps.Catalogs,
		searcher:  deps.Searcher,
		sessions:  deps.Sessions,
		analytics: analyticsService,
		logger:    logger.OrNop(deps.Logger),
	}
}

// NewRouter builds a gin engine with the standard middleware chain and all routes.
func NewRouter(deps Dependencies, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(logger.OrNop(deps.Logger)))
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware())
	if cfg.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	}
	if cfg.RequestsPerMinute > 0 {
		router.Use(NewIPRateLimiter(cfg.RequestsPerMinute, cfg.Burst).Middleware())
	}

	SetupRoutes(router, deps)
	return router
}

// SetupRoutes defines all the API routes of the catalog search service.
func SetupRoutes(router *gin.Engine, deps Dependencies) *API {
	apiHandler := NewAPI(deps)

	// Health, metrics and analytics routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Catalog management routes
	catalogRoutes := router.Group("/catalogs")
	{
		catalogRoutes.GET("", apiHandler.ListCatalogsHandler)                                    // List stored catalogs
		catalogRoutes.PUT("/:catalogId", apiHandler.PutCatalogHandler)                           // Create or replace a catalog
		catalogRoutes.GET("/:catalogId", apiHandler.GetCatalogHandler)                           // Get a catalog snapshot
		catalogRoutes.DELETE("/:catalogId", apiHandler.DeleteCatalogHandler)                     // Delete a catalog and its sessions
		catalogRoutes.GET("/:catalogId/popular-categories", apiHandler.PopularCategoriesHandler) // Categories with the most items
		catalogRoutes.POST("/:catalogId/search", apiHandler.SearchHandler)                       // Immediate search
		catalogRoutes.POST("/:catalogId/multi-search", apiHandler.MultiSearchHandler)            // Several named searches at once
	}

	// Debounced search session routes
	sessionRoutes := router.Group("/sessions")
	{
		sessionRoutes.POST("", apiHandler.CreateSessionHandler)
		sessionRoutes.GET("", apiHandler.ListSessionsHandler)
		sessionRoutes.GET("/stats", apiHandler.GetSessionStatsHandler)
		sessionRoutes.GET("/:sessionId", apiHandler.GetSessionHandler)
		sessionRoutes.PUT("/:sessionId/query", apiHandler.SetSessionQueryHandler)
		sessionRoutes.DELETE("/:sessionId/query", apiHandler.ClearSessionQueryHandler)
		sessionRoutes.DELETE("/:sessionId", apiHandler.DeleteSessionHandler)
	}

	return apiHandler
}
