package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/content-sync-api/internal/mocks"
	"github.com/content-sync-api/internal/models"
)

func TestMockArticleRepository_UpsertBatch(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()

	articles := []*models.Article{
		{ID: 1, Title: "First", Date: time.Now()},
		{ID: 2, Title: "Second", Date: time.Now()},
	}

	inserted, err := repo.UpsertBatch(ctx, articles)
	if err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if inserted != 2 {
		t.Errorf("Expected 2 inserted, got %d", inserted)
	}

	// Re-upserting the same keys reports zero new records
	inserted, err = repo.UpsertBatch(ctx, articles)
	if err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("Expected 0 inserted on re-upsert, got %d", inserted)
	}
	if len(repo.Articles) != 2 {
		t.Errorf("Expected 2 articles in repo, got %d", len(repo.Articles))
	}
}

func TestMockArticleRepository_UpsertKeepsLocalFields(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	ctx := context.Background()

	if _, err := repo.UpsertBatch(ctx, []*models.Article{{ID: 1, Title: "Old Title"}}); err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if err := repo.SetBookmarked(ctx, 1, true); err != nil {
		t.Fatalf("SetBookmarked failed: %v", err)
	}
	if err := repo.SetImageURL(ctx, 1, "https://cdn.example.com/1.jpg"); err != nil {
		t.Fatalf("SetImageURL failed: %v", err)
	}

	if _, err := repo.UpsertBatch(ctx, []*models.Article{{ID: 1, Title: "New Title"}}); err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}

	article, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if article.Title != "New Title" {
		t.Errorf("Expected remote field updated, got %q", article.Title)
	}
	if !article.Bookmarked {
		t.Error("Expected bookmark flag preserved across upsert")
	}
	if article.ImageURL != "https://cdn.example.com/1.jpg" {
		t.Errorf("Expected image URL preserved across upsert, got %q", article.ImageURL)
	}
}

func TestMockArticleRepository_OldestNonBookmarked(t *testing.T) {
	repo := mocks.NewMockArticleRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		repo.Articles[i] = &models.Article{ID: i, Date: base.Add(time.Duration(i) * time.Hour)}
	}
	repo.Articles[1].Bookmarked = true

	oldest, err := repo.OldestNonBookmarked(context.Background(), 2)
	if err != nil {
		t.Fatalf("OldestNonBookmarked failed: %v", err)
	}
	if len(oldest) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(oldest))
	}
	if oldest[0].ID != 2 || oldest[1].ID != 3 {
		t.Errorf("Expected ids 2, 3 (oldest non-bookmarked), got %d, %d", oldest[0].ID, oldest[1].ID)
	}
}

func TestMockCategoryRepository_LinkParents(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	ctx := context.Background()

	if _, err := repo.UpsertBatch(ctx, []*models.Category{
		{ID: 1, Name: "Faith"},
		{ID: 2, Name: "Prayer", ParentID: 1},
		{ID: 3, Name: "Orphan", ParentID: 99},
	}); err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}

	normalized, err := repo.LinkParents(ctx)
	if err != nil {
		t.Fatalf("LinkParents failed: %v", err)
	}
	if normalized != 1 {
		t.Errorf("Expected 1 normalized row, got %d", normalized)
	}
	if repo.Categories[3].ParentID != 0 {
		t.Errorf("Expected orphan parent cleared, got %d", repo.Categories[3].ParentID)
	}
	if repo.Categories[2].ParentID != 1 {
		t.Errorf("Expected valid parent kept, got %d", repo.Categories[2].ParentID)
	}
}

func TestMockBookmarkRepository_Lifecycle(t *testing.T) {
	repo := mocks.NewMockBookmarkRepository()
	ctx := context.Background()

	bookmark := &models.Bookmark{ArticleID: 10, Title: "Keep", Date: time.Now()}
	if err := repo.Create(ctx, bookmark); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored, err := repo.GetByArticleID(ctx, 10)
	if err != nil {
		t.Fatalf("GetByArticleID failed: %v", err)
	}
	if stored == nil || stored.Title != "Keep" {
		t.Errorf("Unexpected bookmark: %+v", stored)
	}

	if err := repo.Delete(ctx, 10); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	stored, _ = repo.GetByArticleID(ctx, 10)
	if stored != nil {
		t.Errorf("Expected bookmark deleted, got %+v", stored)
	}
}

func TestMockSyncRunRepository_GetLatest(t *testing.T) {
	repo := mocks.NewMockSyncRunRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &models.SyncRun{ID: "run-1", Status: models.SyncStatusCompleted}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &models.SyncRun{ID: "run-2", Status: models.SyncStatusRunning}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	latest, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest == nil || latest.ID != "run-2" {
		t.Errorf("Expected run-2 as latest, got %+v", latest)
	}
}
