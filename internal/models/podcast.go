package models

import (
	"time"
)

// Podcast is one episode parsed from an RSS feed, identified by its guid.
type Podcast struct {
	GUID        string    `json:"guid"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	Summary     string    `json:"summary"`
	AudioURL    string    `json:"audio_url"`
	Keywords    []string  `json:"keywords,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Feed        string    `json:"feed"`
	Downloaded  bool      `json:"downloaded"`
}

// Devotion is one dated devotion entry from the flat-file cache.
type Devotion struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Verse string `json:"verse"`
	Text  string `json:"text"`
}
