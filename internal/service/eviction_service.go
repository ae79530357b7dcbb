package service

import (
	"context"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// evictionService is the concrete implementation of EvictionService
type evictionService struct {
	articles repository.ArticleRepository
	maxCount int
	log      zerolog.Logger
}

// NewEvictionService creates a new EvictionService
func NewEvictionService(articles repository.ArticleRepository, cfg *config.Config, log zerolog.Logger) EvictionService {
	return &evictionService{
		articles: articles,
		maxCount: cfg.Cache.MaxArticlesOnDevice,
		log:      log.With().Str("service", "eviction").Logger(),
	}
}

// EnforceCap deletes the oldest non-bookmarked articles above the
// configured cap and returns how many were deleted. Bookmarked articles
// are never evicted regardless of age or count.
func (s *evictionService) EnforceCap(ctx context.Context) (int, error) {
	count, err := s.articles.CountNonBookmarked(ctx)
	if err != nil {
		return 0, err
	}

	excess := count - s.maxCount
	if excess <= 0 {
		return 0, nil
	}

	candidates, err := s.articles.OldestNonBookmarked(ctx, excess)
	if err != nil {
		return 0, err
	}

	ids := lo.Map(candidates, func(a *models.Article, _ int) int64 {
		return a.ID
	})
	if err := s.articles.Delete(ctx, ids); err != nil {
		return 0, err
	}

	s.log.Info().
		Int("deleted", len(ids)).
		Int("cap", s.maxCount).
		Msg("Cache eviction completed")

	return len(ids), nil
}
