package devotion_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/devotion"
	"github.com/content-sync-api/internal/models"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T, lookAhead int) *devotion.Store {
	t.Helper()
	cfg := &config.CacheConfig{
		DevotionFilePath:  filepath.Join(t.TempDir(), "devotions.json"),
		DevotionLookAhead: lookAhead,
	}
	return devotion.NewStore(cfg, zerolog.Nop())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := newTestStore(t, 50)

	devotions, err := store.Load()
	if err != nil {
		t.Fatalf("Expected missing cache to load as empty, got %v", err)
	}
	if devotions != nil {
		t.Errorf("Expected nil list, got %v", devotions)
	}
}

func TestStore_LoadSortsByDate(t *testing.T) {
	store := newTestStore(t, 50)

	saved := []models.Devotion{
		{Date: "2024-05-03", Verse: "John 3:16"},
		{Date: "2024-05-01", Verse: "Psalm 23:1"},
		{Date: "2024-05-02", Verse: "Romans 8:28"},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	devotions, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(devotions) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(devotions))
	}
	for i, want := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		if devotions[i].Date != want {
			t.Errorf("Expected entry %d dated %s, got %s", i, want, devotions[i].Date)
		}
	}
}

func TestStore_Today(t *testing.T) {
	store := newTestStore(t, 50)

	if err := store.Save([]models.Devotion{
		{Date: "2024-05-01", Verse: "Psalm 23:1"},
		{Date: "2024-05-02", Verse: "Romans 8:28"},
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	now := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	today, err := store.Today(now)
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if today == nil || today.Verse != "Romans 8:28" {
		t.Errorf("Expected today's entry, got %+v", today)
	}

	missing, err := store.Today(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for a date with no entry, got %+v", missing)
	}
}

func TestStore_UpcomingWindow(t *testing.T) {
	store := newTestStore(t, 3)

	var devotions []models.Devotion
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		devotions = append(devotions, models.Devotion{
			Date: base.AddDate(0, 0, i).Format("2006-01-02"),
			Text: fmt.Sprintf("Entry %d", i),
		})
	}
	if err := store.Save(devotions); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Past entries are excluded, the window starts today and is capped
	upcoming, err := store.Upcoming(time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("Expected window of 3, got %d", len(upcoming))
	}
	if upcoming[0].Date != "2024-05-04" || upcoming[2].Date != "2024-05-06" {
		t.Errorf("Unexpected window: %v", upcoming)
	}
}
