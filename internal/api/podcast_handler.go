package api

import (
	"errors"
	"net/http"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PodcastHandler handles podcast and devotion endpoints
type PodcastHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPodcastHandler creates a new PodcastHandler
func NewPodcastHandler(services *service.Services, log zerolog.Logger) *PodcastHandler {
	return &PodcastHandler{
		services: services,
		log:      log.With().Str("handler", "podcast").Logger(),
	}
}

// ListEpisodes handles GET /v1/podcasts
func (h *PodcastHandler) ListEpisodes(c *gin.Context) {
	episodes, err := h.services.Podcast.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load episodes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load episodes"})
		return
	}
	if episodes == nil {
		episodes = []models.Podcast{}
	}

	c.JSON(http.StatusOK, gin.H{"episodes": episodes})
}

// RefreshFeed handles POST /v1/podcasts/refresh
func (h *PodcastHandler) RefreshFeed(c *gin.Context) {
	episodes, err := h.services.Podcast.Refresh(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Feed refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "feed refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"episodes": episodes})
}

// DownloadEpisode handles POST /v1/podcasts/:guid/download
func (h *PodcastHandler) DownloadEpisode(c *gin.Context) {
	guid := c.Param("guid")

	if err := h.services.Podcast.Download(c.Request.Context(), guid); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("guid", guid).Msg("Episode download failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "episode download failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveDownload handles DELETE /v1/podcasts/:guid/download
func (h *PodcastHandler) RemoveDownload(c *gin.Context) {
	guid := c.Param("guid")

	if err := h.services.Podcast.RemoveDownload(c.Request.Context(), guid); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Str("guid", guid).Msg("Failed to remove download")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove download"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTodayDevotion handles GET /v1/devotions/today
func (h *PodcastHandler) GetTodayDevotion(c *gin.Context) {
	devotion, err := h.services.Devotion.Today(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load devotion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load devotion"})
		return
	}
	if devotion == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no devotion for today"})
		return
	}

	c.JSON(http.StatusOK, devotion)
}

// GetUpcomingDevotions handles GET /v1/devotions/upcoming
func (h *PodcastHandler) GetUpcomingDevotions(c *gin.Context) {
	devotions, err := h.services.Devotion.Upcoming(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load devotions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load devotions"})
		return
	}
	if devotions == nil {
		devotions = []models.Devotion{}
	}

	c.JSON(http.StatusOK, gin.H{"devotions": devotions})
}
