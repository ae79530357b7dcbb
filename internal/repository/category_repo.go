package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// UpsertBatch inserts or updates categories by server id in one
// transaction. Parent ids are stored as given; a parent may not exist yet
// when its child is written, which is why LinkParents runs as a dedicated
// second pass once the stage is complete.
func (r *categoryRepo) UpsertBatch(ctx context.Context, categories []*models.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO categories (id, name, parent_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id
		RETURNING (xmax = 0) AS inserted
	`

	newCount := 0
	for _, category := range categories {
		var inserted bool
		if err := tx.QueryRowContext(ctx, query, category.ID, category.Name, category.ParentID).Scan(&inserted); err != nil {
			return 0, fmt.Errorf("failed to upsert category %d: %w", category.ID, err)
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

// LinkParents is the second pass over all categories, not just
// newly-fetched ones: any parent reference that does not resolve to an
// existing record is normalized to top-level, so ancestor walks always
// terminate at a real root. Returns how many rows were normalized.
func (r *categoryRepo) LinkParents(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories c SET parent_id = 0
		WHERE c.parent_id <> 0
		  AND NOT EXISTS (SELECT 1 FROM categories p WHERE p.id = c.parent_id)
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetAll returns the full category arena for ancestor resolution
func (r *categoryRepo) GetAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, parent_id FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.ParentID); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

// GetByID retrieves a category by server id
func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, parent_id FROM categories WHERE id = $1", id,
	).Scan(&category.ID, &category.Name, &category.ParentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Count returns the total number of cached categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count)
	return count, err
}
