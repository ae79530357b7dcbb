package repository

import (
	"context"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
)

// ArticleRepository defines the interface for cached article operations
type ArticleRepository interface {
	UpsertBatch(ctx context.Context, articles []*models.Article) (int, error)
	ReplaceCategories(ctx context.Context, articleID int64, categoryIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, opts models.ArticleListOptions) ([]*models.Article, error)
	ImagesToResolve(ctx context.Context) ([]*models.Article, error)
	SetImageURL(ctx context.Context, id int64, imageURL string) error
	SetBookmarked(ctx context.Context, id int64, bookmarked bool) error
	Count(ctx context.Context) (int, error)
	CountNonBookmarked(ctx context.Context) (int, error)
	OldestNonBookmarked(ctx context.Context, limit int) ([]*models.Article, error)
	Delete(ctx context.Context, ids []int64) error
}

// AuthorRepository defines the interface for cached author operations
type AuthorRepository interface {
	UpsertBatch(ctx context.Context, authors []*models.Author) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for cached category operations
type CategoryRepository interface {
	UpsertBatch(ctx context.Context, categories []*models.Category) (int, error)
	LinkParents(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Count(ctx context.Context) (int, error)
}

// BookmarkRepository defines the interface for bookmark snapshot operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, articleID int64) error
	GetByArticleID(ctx context.Context, articleID int64) (*models.Bookmark, error)
	List(ctx context.Context) ([]*models.Bookmark, error)
}

// SyncRunRepository defines the interface for sync run bookkeeping
type SyncRunRepository interface {
	Create(ctx context.Context, run *models.SyncRun) error
	Update(ctx context.Context, run *models.SyncRun) error
	GetByID(ctx context.Context, id string) (*models.SyncRun, error)
	GetLatest(ctx context.Context) (*models.SyncRun, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Author   AuthorRepository
	Category CategoryRepository
	Bookmark BookmarkRepository
	SyncRun  SyncRunRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Author:   NewAuthorRepo(db),
		Category: NewCategoryRepo(db),
		Bookmark: NewBookmarkRepo(db),
		SyncRun:  NewSyncRunRepo(db),
	}
}
