package service

import (
	"context"
	"fmt"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/podcast"
	"github.com/rs/zerolog"
)

// podcastService is the concrete implementation of PodcastService
type podcastService struct {
	episodes EpisodeSource
	store    *podcast.Store
	log      zerolog.Logger
}

// NewPodcastService creates a new PodcastService
func NewPodcastService(episodes EpisodeSource, store *podcast.Store, log zerolog.Logger) PodcastService {
	return &podcastService{
		episodes: episodes,
		store:    store,
		log:      log.With().Str("service", "podcast").Logger(),
	}
}

// Refresh fetches the feed and replaces the file cache with its episodes
func (s *podcastService) Refresh(ctx context.Context) ([]models.Podcast, error) {
	episodes, err := s.episodes.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(episodes); err != nil {
		return nil, err
	}

	for i := range episodes {
		episodes[i].Downloaded = s.store.Downloaded(episodes[i].Title)
	}

	return episodes, nil
}

// List returns the cached episodes with their download state
func (s *podcastService) List(ctx context.Context) ([]models.Podcast, error) {
	return s.store.Load()
}

// Download fetches the episode's audio file to local storage
func (s *podcastService) Download(ctx context.Context, guid string) error {
	episode, err := s.find(guid)
	if err != nil {
		return err
	}
	return s.store.Download(ctx, episode.AudioURL, episode.Title)
}

// RemoveDownload deletes the episode's local audio file
func (s *podcastService) RemoveDownload(ctx context.Context, guid string) error {
	episode, err := s.find(guid)
	if err != nil {
		return err
	}
	return s.store.RemoveDownload(episode.Title)
}

func (s *podcastService) find(guid string) (*models.Podcast, error) {
	episodes, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range episodes {
		if episodes[i].GUID == guid {
			return &episodes[i], nil
		}
	}
	return nil, fmt.Errorf("episode %q: %w", guid, models.ErrNotFound)
}
