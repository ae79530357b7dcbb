package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/mocks"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/rs/zerolog"
)

func newEvictionFixture(maxCount int) (*mocks.MockArticleRepository, service.EvictionService) {
	articles := mocks.NewMockArticleRepository()
	cfg := &config.Config{Cache: config.CacheConfig{MaxArticlesOnDevice: maxCount}}
	return articles, service.NewEvictionService(articles, cfg, zerolog.Nop())
}

func seedArticles(articles *mocks.MockArticleRepository, count int) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		id := int64(i + 1)
		articles.Articles[id] = &models.Article{
			ID:    id,
			Title: fmt.Sprintf("Article %d", id),
			Date:  base.Add(time.Duration(i) * time.Hour),
		}
	}
}

func TestEnforceCap_DeletesOldestAboveCap(t *testing.T) {
	articles, svc := newEvictionFixture(200)
	seedArticles(articles, 210)

	deleted, err := svc.EnforceCap(context.Background())
	if err != nil {
		t.Fatalf("EnforceCap failed: %v", err)
	}
	if deleted != 10 {
		t.Fatalf("Expected 10 deletions, got %d", deleted)
	}

	// The ten oldest went, the rest stayed
	for id := int64(1); id <= 10; id++ {
		if _, ok := articles.Articles[id]; ok {
			t.Errorf("Expected article %d evicted", id)
		}
	}
	for id := int64(11); id <= 210; id++ {
		if _, ok := articles.Articles[id]; !ok {
			t.Errorf("Expected article %d retained", id)
		}
	}
}

func TestEnforceCap_NoOpUnderCap(t *testing.T) {
	articles, svc := newEvictionFixture(200)
	seedArticles(articles, 200)

	deleted, err := svc.EnforceCap(context.Background())
	if err != nil {
		t.Fatalf("EnforceCap failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected no deletions at the cap, got %d", deleted)
	}
	if len(articles.DeletedIDs) != 0 {
		t.Errorf("Expected no delete calls, got %v", articles.DeletedIDs)
	}
}

func TestEnforceCap_BookmarkedArticlesExempt(t *testing.T) {
	articles, svc := newEvictionFixture(200)
	seedArticles(articles, 210)

	// Bookmark the five oldest. They no longer count against the cap and
	// must never be evicted regardless of age.
	for id := int64(1); id <= 5; id++ {
		articles.Articles[id].Bookmarked = true
	}

	deleted, err := svc.EnforceCap(context.Background())
	if err != nil {
		t.Fatalf("EnforceCap failed: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("Expected 5 deletions (205 non-bookmarked, cap 200), got %d", deleted)
	}

	for id := int64(1); id <= 5; id++ {
		if _, ok := articles.Articles[id]; !ok {
			t.Errorf("Expected bookmarked article %d retained", id)
		}
	}
	// The oldest non-bookmarked ones went instead
	for id := int64(6); id <= 10; id++ {
		if _, ok := articles.Articles[id]; ok {
			t.Errorf("Expected article %d evicted", id)
		}
	}
}

func TestEnforceCap_AllBookmarkedNothingEvicted(t *testing.T) {
	articles, svc := newEvictionFixture(2)
	seedArticles(articles, 5)
	for _, article := range articles.Articles {
		article.Bookmarked = true
	}

	deleted, err := svc.EnforceCap(context.Background())
	if err != nil {
		t.Fatalf("EnforceCap failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected no deletions when everything is bookmarked, got %d", deleted)
	}
	if count := len(articles.Articles); count != 5 {
		t.Errorf("Expected all 5 articles retained, got %d", count)
	}
}
