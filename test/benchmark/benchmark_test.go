package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/mocks"
	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/service"
	"github.com/content-sync-api/internal/wordpress"
	"github.com/rs/zerolog"
)

func generateArticles(count int) []*models.Article {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := make([]*models.Article, count)
	for i := 0; i < count; i++ {
		articles[i] = &models.Article{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("Article %d", i+1),
			Body:  "<p>Benchmark body content</p>",
			Date:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return articles
}

// BenchmarkUpsertBatch benchmarks merging a full page set into the store
func BenchmarkUpsertBatch(b *testing.B) {
	articles := generateArticles(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		repo := mocks.NewMockArticleRepository()
		repo.UpsertBatch(context.Background(), articles)
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkEvictionScan benchmarks a full cap enforcement pass over an
// over-full store
func BenchmarkEvictionScan(b *testing.B) {
	cfg := &config.Config{Cache: config.CacheConfig{MaxArticlesOnDevice: 200}}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		repo := mocks.NewMockArticleRepository()
		for _, article := range generateArticles(1000) {
			repo.Articles[article.ID] = article
		}
		svc := service.NewEvictionService(repo, cfg, zerolog.Nop())
		b.StartTimer()

		svc.EnforceCap(context.Background())
	}
}

// BenchmarkDecodePosts benchmarks decoding a ten-page fetch result
func BenchmarkDecodePosts(b *testing.B) {
	pages := make([][]byte, 10)
	for p := range pages {
		posts := make([]map[string]interface{}, 100)
		for i := range posts {
			posts[i] = map[string]interface{}{
				"id":       p*100 + i + 1,
				"date_gmt": "2024-05-01T08:00:00",
				"title":    map[string]string{"rendered": "Post"},
				"content":  map[string]string{"rendered": "<p>Body</p>"},
			}
		}
		data, err := json.Marshal(posts)
		if err != nil {
			b.Fatal(err)
		}
		pages[p] = data
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := wordpress.DecodePosts(pages); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkTopLevelAncestor benchmarks the ancestor walk over a deep tree
func BenchmarkTopLevelAncestor(b *testing.B) {
	byID := make(map[int64]*models.Category, 20)
	for i := int64(1); i <= 20; i++ {
		byID[i] = &models.Category{ID: i, ParentID: i - 1}
	}
	leaf := byID[20]

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if root := leaf.TopLevelAncestor(byID); root.ID != 1 {
			b.Fatalf("unexpected root %d", root.ID)
		}
	}
}
