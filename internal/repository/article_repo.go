package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/content-sync-api/internal/database"
	"github.com/content-sync-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = "id, date, link, title, body, author_id, image_id, image_url, bookmarked, created_at, updated_at"

// UpsertBatch inserts or updates articles by their server-assigned id in a
// single transaction, so a failing batch leaves nothing committed. Returns
// how many records were newly inserted. The bookmarked flag is never
// touched by an upsert; it belongs to the local bookmark lifecycle.
func (r *articleRepo) UpsertBatch(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (id, date, link, title, body, author_id, image_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			link = EXCLUDED.link,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			author_id = EXCLUDED.author_id,
			image_id = EXCLUDED.image_id,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted
	`

	now := time.Now()
	newCount := 0

	for _, article := range articles {
		var inserted bool
		err := tx.QueryRowContext(ctx, query,
			article.ID, article.Date, article.Link, article.Title, article.Body,
			article.AuthorID, article.ImageID, now,
		).Scan(&inserted)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert article %d: %w", article.ID, err)
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

// ReplaceCategories rewrites the article's category links. Only ids that
// exist as category records are linked; unknown ids are dropped silently
// and picked up by the next sync once the category exists.
func (r *articleRepo) ReplaceCategories(ctx context.Context, articleID int64, categoryIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_categories WHERE article_id = $1", articleID); err != nil {
		return err
	}

	if len(categoryIDs) > 0 {
		query := `
			INSERT INTO article_categories (article_id, category_id)
			SELECT $1, id FROM categories WHERE id = ANY($2)
		`
		if _, err := tx.ExecContext(ctx, query, articleID, pq.Array(categoryIDs)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves an article with its author and categories resolved
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1"

	article, err := r.scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// List returns articles matching the filter options
func (r *articleRepo) List(ctx context.Context, opts models.ArticleListOptions) ([]*models.Article, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if len(opts.CategoryIDs) > 0 {
		args = append(args, pq.Array(opts.CategoryIDs))
		conditions = append(conditions, fmt.Sprintf(
			"id IN (SELECT article_id FROM article_categories WHERE category_id = ANY($%d))", len(args)))
	}
	if opts.Before != nil {
		args = append(args, *opts.Before)
		conditions = append(conditions, fmt.Sprintf("date < $%d", len(args)))
	}
	if opts.After != nil {
		args = append(args, *opts.After)
		conditions = append(conditions, fmt.Sprintf("date > $%d", len(args)))
	}

	query := "SELECT " + articleColumns + " FROM articles"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	order := "DESC"
	if opts.Order == "asc" {
		order = "ASC"
	}
	query += " ORDER BY date " + order

	if opts.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET " + strconv.Itoa(opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, article := range articles {
		if err := r.loadRelations(ctx, article); err != nil {
			return nil, err
		}
	}

	return articles, nil
}

// ImagesToResolve returns articles whose attachment thumbnail has not been
// resolved yet
func (r *articleRepo) ImagesToResolve(ctx context.Context) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE image_id > 0 AND image_url = ''"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// SetImageURL stores a resolved thumbnail URL
func (r *articleRepo) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE articles SET image_url = $2, updated_at = $3 WHERE id = $1",
		id, imageURL, time.Now(),
	)
	return err
}

// SetBookmarked flips the bookmark flag on an article
func (r *articleRepo) SetBookmarked(ctx context.Context, id int64, bookmarked bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE articles SET bookmarked = $2, updated_at = $3 WHERE id = $1",
		id, bookmarked, time.Now(),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// Count returns the total number of cached articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// CountNonBookmarked returns how many cached articles are eviction candidates
func (r *articleRepo) CountNonBookmarked(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE NOT bookmarked").Scan(&count)
	return count, err
}

// OldestNonBookmarked returns the oldest non-bookmarked articles, oldest
// first. Bookmarked articles are never candidates regardless of age.
func (r *articleRepo) OldestNonBookmarked(ctx context.Context, limit int) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE NOT bookmarked ORDER BY date ASC LIMIT $1"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Delete removes the given articles and their category links
func (r *articleRepo) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM article_categories WHERE article_id = ANY($1)", pq.Array(ids)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM articles WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *articleRepo) scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	err := row.Scan(
		&article.ID, &article.Date, &article.Link, &article.Title, &article.Body,
		&article.AuthorID, &article.ImageID, &article.ImageURL, &article.Bookmarked,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// loadRelations fills in the article's author and category projections
func (r *articleRepo) loadRelations(ctx context.Context, article *models.Article) error {
	if article.AuthorID > 0 {
		var author models.Author
		err := r.db.QueryRowContext(ctx,
			"SELECT id, name, bio FROM authors WHERE id = $1", article.AuthorID,
		).Scan(&author.ID, &author.Name, &author.Bio)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			article.Author = &author
		}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.parent_id
		FROM categories c
		JOIN article_categories ac ON ac.category_id = c.id
		WHERE ac.article_id = $1
		ORDER BY c.id
	`, article.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.ParentID); err != nil {
			return err
		}
		article.Categories = append(article.Categories, category)
		article.CategoryIDs = append(article.CategoryIDs, category.ID)
	}
	return rows.Err()
}
