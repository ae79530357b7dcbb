package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
)

// bookmarkRepo is the concrete implementation of BookmarkRepository
type bookmarkRepo struct {
	db *database.DB
}

// NewBookmarkRepo creates a new bookmark repository
func NewBookmarkRepo(db *database.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

const bookmarkColumns = "article_id, title, link, body, image_link, date, category_name, author_name, created_at"

// Create stores a bookmark snapshot. Re-bookmarking the same article
// overwrites the snapshot rather than failing.
func (r *bookmarkRepo) Create(ctx context.Context, bookmark *models.Bookmark) error {
	query := `
		INSERT INTO bookmarks (article_id, title, link, body, image_link, date, category_name, author_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (article_id) DO UPDATE SET
			title = EXCLUDED.title,
			link = EXCLUDED.link,
			body = EXCLUDED.body,
			image_link = EXCLUDED.image_link,
			date = EXCLUDED.date,
			category_name = EXCLUDED.category_name,
			author_name = EXCLUDED.author_name
	`
	_, err := r.db.ExecContext(ctx, query,
		bookmark.ArticleID, bookmark.Title, bookmark.Link, bookmark.Body,
		bookmark.ImageLink, bookmark.Date, bookmark.CategoryName, bookmark.AuthorName,
		time.Now(),
	)
	return err
}

// Delete removes a bookmark by its source article id
func (r *bookmarkRepo) Delete(ctx context.Context, articleID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE article_id = $1", articleID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("bookmark for article %d: %w", articleID, models.ErrNotFound)
	}
	return nil
}

// GetByArticleID retrieves a bookmark by its source article id
func (r *bookmarkRepo) GetByArticleID(ctx context.Context, articleID int64) (*models.Bookmark, error) {
	query := "SELECT " + bookmarkColumns + " FROM bookmarks WHERE article_id = $1"

	var bookmark models.Bookmark
	err := r.db.QueryRowContext(ctx, query, articleID).Scan(
		&bookmark.ArticleID, &bookmark.Title, &bookmark.Link, &bookmark.Body,
		&bookmark.ImageLink, &bookmark.Date, &bookmark.CategoryName, &bookmark.AuthorName,
		&bookmark.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// List returns all bookmarks, newest article first
func (r *bookmarkRepo) List(ctx context.Context) ([]*models.Bookmark, error) {
	query := "SELECT " + bookmarkColumns + " FROM bookmarks ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []*models.Bookmark
	for rows.Next() {
		var bookmark models.Bookmark
		err := rows.Scan(
			&bookmark.ArticleID, &bookmark.Title, &bookmark.Link, &bookmark.Body,
			&bookmark.ImageLink, &bookmark.Date, &bookmark.CategoryName, &bookmark.AuthorName,
			&bookmark.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &bookmark)
	}
	return bookmarks, rows.Err()
}
