package models

import (
	"time"
)

// Article is a locally cached article keyed by its server-assigned id.
type Article struct {
	ID          int64      `json:"id" db:"id"`
	Date        time.Time  `json:"date" db:"date"`
	Link        string     `json:"link" db:"link"`
	Title       string     `json:"title" db:"title"` // HTML fragment
	Body        string     `json:"body" db:"body"`   // HTML fragment
	AuthorID    int64      `json:"author_id" db:"author_id"`
	ImageID     int64      `json:"image_id" db:"image_id"`
	ImageURL    string     `json:"image_url,omitempty" db:"image_url"`
	CategoryIDs []int64    `json:"category_ids" db:"-"`
	Bookmarked  bool       `json:"bookmarked" db:"bookmarked"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Author      *Author    `json:"author,omitempty" db:"-"`
	Categories  []Category `json:"categories,omitempty" db:"-"`
}

// Author represents an article author synced from the remote API
type Author struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Bio  string `json:"bio" db:"bio"`
}

// Image is a resolved media attachment thumbnail
type Image struct {
	ID           int64  `json:"id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ArticleListOptions are the recognized query filters for listing articles
type ArticleListOptions struct {
	CategoryIDs []int64
	Before      *time.Time
	After       *time.Time
	Order       string // "asc" or "desc" by date
	Limit       int
	Offset      int
}
