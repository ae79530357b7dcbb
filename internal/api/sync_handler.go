package api

import (
	"net/http"

	"github.com/content-sync-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SyncHandler handles sync trigger and status endpoints
type SyncHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(services *service.Services, log zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		services: services,
		log:      log.With().Str("handler", "sync").Logger(),
	}
}

// TriggerSync handles POST /v1/sync
// The pipeline runs in the background; the response carries the run
// record to poll. Triggering while a run is outstanding returns the
// outstanding run with 409 instead of starting a second pipeline.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	run, started, err := h.services.Sync.Start(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to start sync")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start sync"})
		return
	}

	if !started {
		c.JSON(http.StatusConflict, gin.H{
			"error": "a sync is already in progress",
			"run":   run,
		})
		return
	}

	c.JSON(http.StatusAccepted, run)
}

// GetRun handles GET /v1/sync/:run_id
func (h *SyncHandler) GetRun(c *gin.Context) {
	run, err := h.services.Sync.GetRun(c.Request.Context(), c.Param("run_id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load sync run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sync run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sync run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetLatestRun handles GET /v1/sync/latest
func (h *SyncHandler) GetLatestRun(c *gin.Context) {
	run, err := h.services.Sync.GetLatestRun(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load latest sync run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load latest sync run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync has run yet"})
		return
	}

	c.JSON(http.StatusOK, run)
}
