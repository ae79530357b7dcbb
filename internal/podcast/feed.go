package podcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// FeedParser fetches and parses the podcast RSS feed
type FeedParser struct {
	feedURL string
	parser  *gofeed.Parser
	log     zerolog.Logger
}

// NewFeedParser creates a new feed parser
func NewFeedParser(cfg *config.PodcastConfig, log zerolog.Logger) *FeedParser {
	return &FeedParser{
		feedURL: cfg.FeedURL,
		parser:  gofeed.NewParser(),
		log:     log.With().Str("component", "podcast-feed").Logger(),
	}
}

// Fetch retrieves the feed and maps its items into podcast episodes
func (f *FeedParser) Fetch(ctx context.Context) ([]models.Podcast, error) {
	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch podcast feed: %w", err)
	}

	episodes := EpisodesFromFeed(feed)
	f.log.Info().Int("episodes", len(episodes)).Str("feed", feed.Title).Msg("Podcast feed parsed")
	return episodes, nil
}

// EpisodesFromFeed maps a parsed feed into podcast episodes. Items without
// a guid fall back to the item link as identity; items with neither are
// skipped because they cannot be deduplicated across refreshes.
func EpisodesFromFeed(feed *gofeed.Feed) []models.Podcast {
	episodes := make([]models.Podcast, 0, len(feed.Items))

	for _, item := range feed.Items {
		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}
		if guid == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		episode := models.Podcast{
			GUID:        guid,
			Title:       item.Title,
			Summary:     item.Description,
			PublishedAt: publishedAt.UTC(),
			Feed:        feed.Title,
		}

		if item.Author != nil {
			episode.Author = item.Author.Name
		}
		if item.ITunesExt != nil {
			if item.ITunesExt.Author != "" {
				episode.Author = item.ITunesExt.Author
			}
			if item.ITunesExt.Summary != "" {
				episode.Summary = item.ITunesExt.Summary
			}
			episode.Duration = item.ITunesExt.Duration
			episode.ImageURL = item.ITunesExt.Image
			if item.ITunesExt.Keywords != "" {
				for _, kw := range strings.Split(item.ITunesExt.Keywords, ",") {
					if kw = strings.TrimSpace(kw); kw != "" {
						episode.Keywords = append(episode.Keywords, kw)
					}
				}
			}
		}
		if episode.ImageURL == "" && item.Image != nil {
			episode.ImageURL = item.Image.URL
		}

		for _, enclosure := range item.Enclosures {
			if strings.HasPrefix(enclosure.Type, "audio/") || enclosure.Type == "" {
				episode.AudioURL = enclosure.URL
				break
			}
		}

		episodes = append(episodes, episode)
	}

	return episodes
}
