package service

import (
	"context"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/devotion"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/podcast"
	"github.com/content-sync-api/internal/repository"
	"github.com/content-sync-api/internal/wordpress"
	"github.com/rs/zerolog"
)

// ContentClient is the remote API surface the sync pipeline consumes
type ContentClient interface {
	FetchAllPages(ctx context.Context, endpoint string, f wordpress.Filters) ([][]byte, error)
	SearchArticles(ctx context.Context, query string) ([]models.Article, error)
	FetchImageMetadata(ctx context.Context, imageID int64) (*models.Image, error)
}

// EpisodeSource is the podcast feed surface the podcast service consumes
type EpisodeSource interface {
	Fetch(ctx context.Context) ([]models.Podcast, error)
}

// SyncService defines the interface for running the sync pipeline
type SyncService interface {
	// Start launches a sync run in the background and returns its record.
	// If a run is already in flight, that run is returned and started is
	// false: re-entrant invocations join the outstanding run.
	Start(ctx context.Context) (run *models.SyncRun, started bool, err error)

	// Sync runs the pipeline to completion and returns the finished run.
	Sync(ctx context.Context) (*models.SyncRun, error)

	GetRun(ctx context.Context, id string) (*models.SyncRun, error)
	GetLatestRun(ctx context.Context) (*models.SyncRun, error)
}

// ArticleService defines the interface for reading cached articles
type ArticleService interface {
	List(ctx context.Context, opts models.ArticleListOptions) ([]*models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	Search(ctx context.Context, query string) ([]models.Article, error)
	TopLevelCategory(ctx context.Context, categoryID int64) (*models.Category, error)
	Categories(ctx context.Context) ([]*models.Category, error)
}

// BookmarkService defines the interface for bookmark snapshot operations
type BookmarkService interface {
	Add(ctx context.Context, articleID int64) (*models.Bookmark, error)
	Remove(ctx context.Context, articleID int64) error
	List(ctx context.Context) ([]*models.Bookmark, error)
}

// EvictionService defines the interface for enforcing the article cap
type EvictionService interface {
	EnforceCap(ctx context.Context) (int, error)
}

// PodcastService defines the interface for podcast episodes and downloads
type PodcastService interface {
	Refresh(ctx context.Context) ([]models.Podcast, error)
	List(ctx context.Context) ([]models.Podcast, error)
	Download(ctx context.Context, guid string) error
	RemoveDownload(ctx context.Context, guid string) error
}

// DevotionService defines the interface for the daily devotion cache
type DevotionService interface {
	Today(ctx context.Context) (*models.Devotion, error)
	Upcoming(ctx context.Context) ([]models.Devotion, error)
}

// Services holds all service interfaces
type Services struct {
	Sync     SyncService
	Article  ArticleService
	Bookmark BookmarkService
	Eviction EvictionService
	Podcast  PodcastService
	Devotion DevotionService
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	client ContentClient,
	episodes EpisodeSource,
	podcastStore *podcast.Store,
	devotionStore *devotion.Store,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	return &Services{
		Sync:     NewSyncService(repos, client, cfg, log),
		Article:  NewArticleService(repos, client, log),
		Bookmark: NewBookmarkService(repos, cfg, log),
		Eviction: NewEvictionService(repos.Article, cfg, log),
		Podcast:  NewPodcastService(episodes, podcastStore, log),
		Devotion: NewDevotionService(devotionStore),
	}
}
