package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
)

// authorRepo is the concrete implementation of AuthorRepository
type authorRepo struct {
	db *database.DB
}

// NewAuthorRepo creates a new author repository
func NewAuthorRepo(db *database.DB) AuthorRepository {
	return &authorRepo{db: db}
}

// UpsertBatch inserts or updates authors by server id in one transaction.
// Authors are never deleted by the pipeline.
func (r *authorRepo) UpsertBatch(ctx context.Context, authors []*models.Author) (int, error) {
	if len(authors) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO authors (id, name, bio)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio
		RETURNING (xmax = 0) AS inserted
	`

	newCount := 0
	for _, author := range authors {
		var inserted bool
		if err := tx.QueryRowContext(ctx, query, author.ID, author.Name, author.Bio).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("failed to upsert author %d: %w", author.ID, err)
		}
		if inserted {
			newCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newCount, nil
}

// GetByID retrieves an author by server id
func (r *authorRepo) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var author models.Author
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, bio FROM authors WHERE id = $1", id,
	).Scan(&author.ID, &author.Name, &author.Bio)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Count returns the total number of cached authors
func (r *authorRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&count)
	return count, err
}
