package podcast_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/podcast"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) (*podcast.Store, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.PodcastConfig{
		CacheFilePath: filepath.Join(dir, "podcasts.json"),
		AudioDir:      filepath.Join(dir, "audio"),
	}
	return podcast.NewStore(cfg, zerolog.Nop()), cfg.AudioDir
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	episodes, err := store.Load()
	if err != nil {
		t.Fatalf("Expected missing cache to load as empty, got %v", err)
	}
	if episodes != nil {
		t.Errorf("Expected nil episode list, got %v", episodes)
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, audioDir := newTestStore(t)

	saved := []models.Podcast{
		{GUID: "ep-001", Title: "Episode One", PublishedAt: time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC)},
		{GUID: "ep-002", Title: "Episode Two"},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mark one episode downloaded by dropping its audio file in place
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(audioDir, "Episode One.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	episodes, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("Expected 2 episodes, got %d", len(episodes))
	}
	if !episodes[0].Downloaded {
		t.Error("Expected first episode flagged as downloaded")
	}
	if episodes[1].Downloaded {
		t.Error("Expected second episode not downloaded")
	}
}

func TestStore_DownloadAndRemove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fake audio bytes")
	}))
	defer srv.Close()

	store, audioDir := newTestStore(t)
	ctx := context.Background()

	if err := store.Download(ctx, srv.URL, "Episode One"); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(audioDir, "Episode One.mp3"))
	if err != nil {
		t.Fatalf("Expected audio file on disk: %v", err)
	}
	if string(data) != "fake audio bytes" {
		t.Errorf("Unexpected audio content %q", data)
	}
	if !store.Downloaded("Episode One") {
		t.Error("Expected Downloaded to report true")
	}

	if err := store.RemoveDownload("Episode One"); err != nil {
		t.Fatalf("RemoveDownload failed: %v", err)
	}
	if store.Downloaded("Episode One") {
		t.Error("Expected Downloaded to report false after removal")
	}

	// Removing an episode that was never downloaded is a no-op
	if err := store.RemoveDownload("Episode One"); err != nil {
		t.Errorf("Expected idempotent removal, got %v", err)
	}
}

func TestStore_DownloadFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store, audioDir := newTestStore(t)
	ctx := context.Background()

	if err := store.Download(ctx, "", "No URL"); err == nil {
		t.Error("Expected error for empty audio URL")
	}
	if err := store.Download(ctx, srv.URL, "Gone"); err == nil {
		t.Error("Expected error for non-200 response")
	}
	if store.Downloaded("Gone") {
		t.Error("Expected no file after failed download")
	}

	// No partial files left behind
	entries, _ := os.ReadDir(audioDir)
	for _, entry := range entries {
		t.Errorf("Unexpected leftover file %s", entry.Name())
	}
}

func TestStore_TitleWithPathSeparators(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "audio")
	}))
	defer srv.Close()

	store, audioDir := newTestStore(t)

	if err := store.Download(context.Background(), srv.URL, "Part 1/2: Hope"); err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(audioDir, "Part 1-2: Hope.mp3")); err != nil {
		t.Errorf("Expected flattened file name: %v", err)
	}
}
