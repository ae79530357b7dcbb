package models

import (
	"time"
)

// Bookmark is a denormalized snapshot of an article taken at bookmark time.
// It is keyed by the source article id but carries its own copy of the
// fields, so deleting the cached article never loses the bookmark.
type Bookmark struct {
	ArticleID    int64     `json:"article_id" db:"article_id"`
	Title        string    `json:"title" db:"title"`
	Link         string    `json:"link" db:"link"`
	Body         string    `json:"body" db:"body"`
	ImageLink    string    `json:"image_link" db:"image_link"`
	Date         time.Time `json:"date" db:"date"`
	CategoryName string    `json:"category_name" db:"category_name"`
	AuthorName   string    `json:"author_name" db:"author_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
