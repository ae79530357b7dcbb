package service

import (
	"context"
	"fmt"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/repository"
	"github.com/rs/zerolog"
)

// bookmarkService is the concrete implementation of BookmarkService.
// Bookmark writes are user-initiated single-record writes: store failures
// here are surfaced to the caller, unlike sync-path writes.
type bookmarkService struct {
	repos               *repository.Repositories
	defaultCategoryName string
	log                 zerolog.Logger
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) BookmarkService {
	return &bookmarkService{
		repos:               repos,
		defaultCategoryName: cfg.Cache.DefaultCategoryName,
		log:                 log.With().Str("service", "bookmark").Logger(),
	}
}

// Add snapshots the article into a bookmark and flags the article as
// exempt from eviction. The snapshot copies the fields rather than
// referencing the article, so the bookmark survives eviction of its
// source.
func (s *bookmarkService) Add(ctx context.Context, articleID int64) (*models.Bookmark, error) {
	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %d: %w", articleID, models.ErrNotFound)
	}

	bookmark := &models.Bookmark{
		ArticleID: article.ID,
		Title:     article.Title,
		Link:      article.Link,
		Body:      article.Body,
		ImageLink: article.ImageURL,
		Date:      article.Date,
		CreatedAt: time.Now(),
	}

	bookmark.CategoryName = s.defaultCategoryName
	if len(article.Categories) > 0 {
		bookmark.CategoryName = article.Categories[0].Name
	}
	if article.Author != nil {
		bookmark.AuthorName = article.Author.Name
	}

	if err := s.repos.Bookmark.Create(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to store bookmark: %w", err)
	}
	if err := s.repos.Article.SetBookmarked(ctx, articleID, true); err != nil {
		return nil, fmt.Errorf("failed to flag article as bookmarked: %w", err)
	}

	s.log.Info().Int64("article_id", articleID).Msg("Bookmark added")
	return bookmark, nil
}

// Remove deletes the bookmark and clears the article's eviction
// exemption. The article itself may have been evicted already; bookmarks
// have an independent lifecycle, so that is not an error.
func (s *bookmarkService) Remove(ctx context.Context, articleID int64) error {
	if err := s.repos.Bookmark.Delete(ctx, articleID); err != nil {
		return err
	}

	article, err := s.repos.Article.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article != nil {
		if err := s.repos.Article.SetBookmarked(ctx, articleID, false); err != nil {
			return fmt.Errorf("failed to clear bookmark flag: %w", err)
		}
	}

	s.log.Info().Int64("article_id", articleID).Msg("Bookmark removed")
	return nil
}

// List returns all bookmark snapshots
func (s *bookmarkService) List(ctx context.Context) ([]*models.Bookmark, error) {
	return s.repos.Bookmark.List(ctx)
}
