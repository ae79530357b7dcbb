package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article and category endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListArticles handles GET /v1/articles
// Supports category_ids, before, after, order, per_page and page filters.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	ctx := c.Request.Context()

	opts := models.ArticleListOptions{
		Order: c.DefaultQuery("order", "desc"),
		Limit: 20,
	}
	if opts.Order != "asc" && opts.Order != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	if raw := c.Query("category_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category_ids must be a comma-separated list of ids"})
				return
			}
			opts.CategoryIDs = append(opts.CategoryIDs, id)
		}
	}

	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "before must be an RFC3339 timestamp"})
			return
		}
		opts.Before = &t
	}
	if raw := c.Query("after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be an RFC3339 timestamp"})
			return
		}
		opts.After = &t
	}

	if raw := c.Query("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "per_page must be a positive integer"})
			return
		}
		opts.Limit = perPage
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		opts.Offset = (page - 1) * opts.Limit
	}

	articles, err := h.services.Article.List(ctx, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := h.services.Article.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// SearchArticles handles GET /v1/articles/search?q=
func (h *ArticleHandler) SearchArticles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	articles, err := h.services.Article.Search(c.Request.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Str("query", query).Msg("Search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// ListCategories handles GET /v1/categories
func (h *ArticleHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.Article.Categories(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load categories"})
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetTopLevelCategory handles GET /v1/categories/:id/top-level
func (h *ArticleHandler) GetTopLevelCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	category, err := h.services.Article.TopLevelCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Int64("category_id", id).Msg("Failed to resolve top-level category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve category"})
		return
	}

	c.JSON(http.StatusOK, category)
}
