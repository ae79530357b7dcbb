package podcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/rs/zerolog"
)

// audioExt is the fixed extension of downloaded episode files.
const audioExt = ".mp3"

// Store persists the episode list to a flat JSON file and tracks
// downloaded audio by filesystem presence, keyed by episode title.
type Store struct {
	cachePath string
	audioDir  string
	http      *http.Client
	mu        sync.Mutex
	log       zerolog.Logger
}

// NewStore creates a new podcast store
func NewStore(cfg *config.PodcastConfig, log zerolog.Logger) *Store {
	return &Store{
		cachePath: cfg.CacheFilePath,
		audioDir:  cfg.AudioDir,
		http:      &http.Client{},
		log:       log.With().Str("component", "podcast-store").Logger(),
	}
}

// Load reads the cached episode list. A missing cache file is an empty
// list, not an error. Download flags are recomputed from the filesystem
// on every load.
func (s *Store) Load() ([]models.Podcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.cachePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read podcast cache: %w", err)
	}

	var episodes []models.Podcast
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("failed to decode podcast cache: %w", err)
	}

	for i := range episodes {
		episodes[i].Downloaded = s.downloaded(episodes[i].Title)
	}

	return episodes, nil
}

// Save writes the episode list to the cache file
func (s *Store) Save(episodes []models.Podcast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(episodes)
	if err != nil {
		return fmt.Errorf("failed to encode podcast cache: %w", err)
	}

	if err := os.WriteFile(s.cachePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write podcast cache: %w", err)
	}
	return nil
}

// Downloaded reports whether the episode's audio file is present on disk
func (s *Store) Downloaded(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloaded(title)
}

func (s *Store) downloaded(title string) bool {
	_, err := os.Stat(s.audioPath(title))
	return err == nil
}

// Download fetches the episode audio and stores it under the audio
// directory keyed by title
func (s *Store) Download(ctx context.Context, audioURL, title string) error {
	if audioURL == "" {
		return fmt.Errorf("episode %q has no audio URL", title)
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	dest := s.audioPath(title)
	tmp := dest + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		return err
	}

	s.log.Info().Str("title", title).Str("path", dest).Msg("Episode downloaded")
	return nil
}

// RemoveDownload deletes the episode's audio file
func (s *Store) RemoveDownload(title string) error {
	err := os.Remove(s.audioPath(title))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// audioPath maps an episode title to its on-disk file name. Path
// separators in titles are flattened so the file stays inside the
// audio directory.
func (s *Store) audioPath(title string) string {
	name := strings.NewReplacer("/", "-", "\\", "-", string(os.PathSeparator), "-").Replace(title)
	return filepath.Join(s.audioDir, name+audioExt)
}
