package repository

import (
	"context"
	"database/sql"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
)

// syncRunRepo is the concrete implementation of SyncRunRepository
type syncRunRepo struct {
	db *database.DB
}

// NewSyncRunRepo creates a new sync run repository
func NewSyncRunRepo(db *database.DB) SyncRunRepository {
	return &syncRunRepo{db: db}
}

const syncRunColumns = "id, status, stage, did_change, authors_synced, categories_synced, articles_synced, error_message, duration_ms, created_at, started_at, completed_at"

// Create inserts a new sync run record
func (r *syncRunRepo) Create(ctx context.Context, run *models.SyncRun) error {
	query := `
		INSERT INTO sync_runs (id, status, stage, did_change, authors_synced, categories_synced, articles_synced, error_message, duration_ms, created_at, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.Stage, run.DidChange,
		run.AuthorsSynced, run.CategoriesSynced, run.ArticlesSynced,
		run.ErrorMessage, run.DurationMs, run.CreatedAt, run.StartedAt, run.CompletedAt,
	)
	return err
}

// Update overwrites the mutable fields of a sync run record
func (r *syncRunRepo) Update(ctx context.Context, run *models.SyncRun) error {
	query := `
		UPDATE sync_runs SET
			status = $2, stage = $3, did_change = $4,
			authors_synced = $5, categories_synced = $6, articles_synced = $7,
			error_message = $8, duration_ms = $9, started_at = $10, completed_at = $11
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.Stage, run.DidChange,
		run.AuthorsSynced, run.CategoriesSynced, run.ArticlesSynced,
		run.ErrorMessage, run.DurationMs, run.StartedAt, run.CompletedAt,
	)
	return err
}

// GetByID retrieves a sync run by id
func (r *syncRunRepo) GetByID(ctx context.Context, id string) (*models.SyncRun, error) {
	query := "SELECT " + syncRunColumns + " FROM sync_runs WHERE id = $1"
	return r.scanRun(r.db.QueryRowContext(ctx, query, id))
}

// GetLatest retrieves the most recently created sync run
func (r *syncRunRepo) GetLatest(ctx context.Context) (*models.SyncRun, error) {
	query := "SELECT " + syncRunColumns + " FROM sync_runs ORDER BY created_at DESC LIMIT 1"
	return r.scanRun(r.db.QueryRowContext(ctx, query))
}

func (r *syncRunRepo) scanRun(row *sql.Row) (*models.SyncRun, error) {
	var run models.SyncRun
	err := row.Scan(
		&run.ID, &run.Status, &run.Stage, &run.DidChange,
		&run.AuthorsSynced, &run.CategoriesSynced, &run.ArticlesSynced,
		&run.ErrorMessage, &run.DurationMs, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
