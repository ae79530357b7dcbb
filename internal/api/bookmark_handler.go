package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BookmarkHandler handles bookmark endpoints
type BookmarkHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(services *service.Services, log zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		services: services,
		log:      log.With().Str("handler", "bookmark").Logger(),
	}
}

// AddBookmark handles POST /v1/articles/:id/bookmark
// Bookmark writes are user-initiated: store failures surface to the
// caller instead of being swallowed like sync-path errors.
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	bookmark, err := h.services.Bookmark.Add(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to add bookmark")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save bookmark"})
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark handles DELETE /v1/articles/:id/bookmark
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.services.Bookmark.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Int64("article_id", id).Msg("Failed to remove bookmark")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove bookmark"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBookmarks handles GET /v1/bookmarks
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.services.Bookmark.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list bookmarks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookmarks"})
		return
	}
	if bookmarks == nil {
		bookmarks = []*models.Bookmark{}
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}
