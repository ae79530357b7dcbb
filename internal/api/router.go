package api

import (
	"net/http"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	bookmarkHandler := NewBookmarkHandler(services, log)
	syncHandler := NewSyncHandler(services, log)
	podcastHandler := NewPodcastHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, cfg))

	// API v1
	v1 := router.Group("/v1")
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/search", articleHandler.SearchArticles)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.POST("/:id/bookmark", bookmarkHandler.AddBookmark)
			articles.DELETE("/:id/bookmark", bookmarkHandler.RemoveBookmark)
		}

		v1.GET("/bookmarks", bookmarkHandler.ListBookmarks)

		categories := v1.Group("/categories")
		{
			categories.GET("", articleHandler.ListCategories)
			categories.GET("/:id/top-level", articleHandler.GetTopLevelCategory)
		}

		sync := v1.Group("/sync")
		{
			sync.POST("", syncHandler.TriggerSync)
			sync.GET("/latest", syncHandler.GetLatestRun)
			sync.GET("/:run_id", syncHandler.GetRun)
		}

		podcasts := v1.Group("/podcasts")
		{
			podcasts.GET("", podcastHandler.ListEpisodes)
			podcasts.POST("/refresh", podcastHandler.RefreshFeed)
			podcasts.POST("/:guid/download", podcastHandler.DownloadEpisode)
			podcasts.DELETE("/:guid/download", podcastHandler.RemoveDownload)
		}

		devotions := v1.Group("/devotions")
		{
			devotions.GET("/today", podcastHandler.GetTodayDevotion)
			devotions.GET("/upcoming", podcastHandler.GetUpcomingDevotions)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "content-sync-api",
	})
}

// metricsHandler returns cache counts and the latest sync run
func metricsHandler(services *service.Services, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		articles, _ := services.Article.List(ctx, models.ArticleListOptions{})
		bookmarks, _ := services.Bookmark.List(ctx)
		latest, _ := services.Sync.GetLatestRun(ctx)

		c.JSON(http.StatusOK, gin.H{
			"cache": gin.H{
				"articles":     len(articles),
				"bookmarks":    len(bookmarks),
				"max_articles": cfg.Cache.MaxArticlesOnDevice,
			},
			"latest_sync": latest,
			"timestamp":   time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
