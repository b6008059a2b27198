// Package api implements the read-side HTTP API over stored articles.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsharvest/internal/config"
	"github.com/jonesrussell/newsharvest/internal/domain"
	"github.com/jonesrussell/newsharvest/internal/logger"
)

// ArticleReader is the slice of the article repository the API needs.
type ArticleReader interface {
	List(ctx context.Context, begin, limit int) ([]*domain.Article, error)
	Count(ctx context.Context) (int, error)
	Filter(ctx context.Context, field, value string) ([]*domain.Article, error)
}

const readHeaderTimeout = 10 * time.Second

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, repo ArticleReader, imageDir, imageURL string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stored article images are served from the shared asset directory
	// under the same prefix the crawler records in each row.
	if imageDir != "" {
		router.Static(imageURL, imageDir)
	}

	h := NewNewsHandler(repo)
	group := router.Group("/api")
	group.GET("/news", h.List)
	group.GET("/news/count", h.Count)
	group.GET("/news/filter", h.Filter)

	return router
}

// loggingMiddleware creates a middleware that logs HTTP requests.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend access.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// NewHTTPServer builds the HTTP server around the configured router.
func NewHTTPServer(
	log logger.Interface,
	repo ArticleReader,
	cfg *config.Config,
) *http.Server {
	router := SetupRouter(log, repo, cfg.Crawler.ImageDir, cfg.Crawler.ImageURL)

	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
