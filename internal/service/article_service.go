package service

import (
	"context"
	"fmt"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repos  *repository.Repositories
	client ContentClient
	log    zerolog.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(repos *repository.Repositories, client ContentClient, log zerolog.Logger) ArticleService {
	return &articleService{
		repos:  repos,
		client: client,
		log:    log.With().Str("service", "article").Logger(),
	}
}

// List returns cached articles matching the filter options
func (s *articleService) List(ctx context.Context, opts models.ArticleListOptions) ([]*models.Article, error) {
	return s.repos.Article.List(ctx, opts)
}

// Get returns one cached article with relations resolved
func (s *articleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	return s.repos.Article.GetByID(ctx, id)
}

// Search queries the remote API directly. Errors and empty responses both
// map to an empty result list: search degrades, it does not fail.
func (s *articleService) Search(ctx context.Context, query string) ([]models.Article, error) {
	articles, err := s.client.SearchArticles(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("Search failed, returning empty result")
		return []models.Article{}, nil
	}
	if articles == nil {
		return []models.Article{}, nil
	}
	return articles, nil
}

// TopLevelCategory resolves the root ancestor of a category by walking
// parent links through the full arena
func (s *articleService) TopLevelCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	categories, err := s.repos.Category.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	category, ok := byID[categoryID]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", categoryID, models.ErrNotFound)
	}

	return category.TopLevelAncestor(byID), nil
}

// Categories returns all cached categories
func (s *articleService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.GetAll(ctx)
}
