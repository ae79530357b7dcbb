package devotion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/rs/zerolog"
)

// dateLayout is the date key format of devotion entries.
const dateLayout = "2006-01-02"

// Store keeps the dated devotion entries in a flat JSON file and answers
// today-plus-look-ahead queries for notification scheduling consumers.
type Store struct {
	path      string
	lookAhead int
	mu        sync.Mutex
	log       zerolog.Logger
}

// NewStore creates a new devotion store
func NewStore(cfg *config.CacheConfig, log zerolog.Logger) *Store {
	return &Store{
		path:      cfg.DevotionFilePath,
		lookAhead: cfg.DevotionLookAhead,
		log:       log.With().Str("component", "devotion-store").Logger(),
	}
}

// Load reads all devotion entries, sorted by date. A missing file is an
// empty list.
func (s *Store) Load() ([]models.Devotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read devotion cache: %w", err)
	}

	var devotions []models.Devotion
	if err := json.Unmarshal(data, &devotions); err != nil {
		return nil, fmt.Errorf("failed to decode devotion cache: %w", err)
	}

	sort.Slice(devotions, func(i, j int) bool {
		return devotions[i].Date < devotions[j].Date
	})
	return devotions, nil
}

// Save writes the devotion entries to the cache file
func (s *Store) Save(devotions []models.Devotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(devotions)
	if err != nil {
		return fmt.Errorf("failed to encode devotion cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write devotion cache: %w", err)
	}
	return nil
}

// Today returns the entry dated today, or nil if there is none
func (s *Store) Today(now time.Time) (*models.Devotion, error) {
	devotions, err := s.Load()
	if err != nil {
		return nil, err
	}

	today := now.Format(dateLayout)
	for i := range devotions {
		if devotions[i].Date == today {
			return &devotions[i], nil
		}
	}
	return nil, nil
}

// Upcoming returns entries dated today or later, oldest first, capped at
// the configured look-ahead window size.
func (s *Store) Upcoming(now time.Time) ([]models.Devotion, error) {
	devotions, err := s.Load()
	if err != nil {
		return nil, err
	}

	today := now.Format(dateLayout)
	var upcoming []models.Devotion
	for _, d := range devotions {
		if d.Date >= today {
			upcoming = append(upcoming, d)
		}
		if len(upcoming) == s.lookAhead {
			break
		}
	}
	return upcoming, nil
}
