package service

import (
	"context"
	"time"

	"github.com/content-sync-api/internal/devotion"
	"github.com/content-sync-api/internal/models"
)

// devotionService is the concrete implementation of DevotionService
type devotionService struct {
	store *devotion.Store
}

// NewDevotionService creates a new DevotionService
func NewDevotionService(store *devotion.Store) DevotionService {
	return &devotionService{store: store}
}

// Today returns the devotion entry dated today, if any
func (s *devotionService) Today(ctx context.Context) (*models.Devotion, error) {
	return s.store.Today(time.Now())
}

// Upcoming returns the look-ahead window of devotion entries starting today
func (s *devotionService) Upcoming(ctx context.Context) ([]models.Devotion, error) {
	return s.store.Upcoming(time.Now())
}
