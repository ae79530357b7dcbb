package models

import (
	"time"
)

// SyncStatus represents the status of a sync run
type SyncStatus string

const (
	SyncStatusPending   SyncStatus = "pending"
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncStage names the pipeline stage a run is currently in. The pipeline is
// linear: authors, categories, category parent linking, articles, article
// relation linking, then best-effort image resolution.
type SyncStage string

const (
	StageIdle                    SyncStage = "idle"
	StageFetchingAuthors         SyncStage = "fetching_authors"
	StageFetchingCategories      SyncStage = "fetching_categories"
	StageLinkingCategoryParents  SyncStage = "linking_category_parents"
	StageFetchingArticles        SyncStage = "fetching_articles"
	StageLinkingArticleRelations SyncStage = "linking_article_relations"
	StageResolvingImages         SyncStage = "resolving_images"
)

// SyncRun records one invocation of the sync pipeline
type SyncRun struct {
	ID               string     `json:"run_id" db:"id"`
	Status           SyncStatus `json:"status" db:"status"`
	Stage            SyncStage  `json:"stage" db:"stage"`
	DidChange        bool       `json:"did_change" db:"did_change"`
	AuthorsSynced    int        `json:"authors_synced" db:"authors_synced"`
	CategoriesSynced int        `json:"categories_synced" db:"categories_synced"`
	ArticlesSynced   int        `json:"articles_synced" db:"articles_synced"`
	ErrorMessage     string     `json:"error,omitempty" db:"error_message"`
	DurationMs       int64      `json:"duration_ms,omitempty" db:"duration_ms"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	StartedAt        *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
