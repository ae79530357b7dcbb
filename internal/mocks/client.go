package mocks

import (
	"context"
	"sync"

	"github.com/content-sync-api/internal/models"
	"github.com/content-sync-api/internal/wordpress"
)

// MockContentClient is a mock implementation of the sync pipeline's
// remote API surface
type MockContentClient struct {
	mu            sync.Mutex
	Pages         map[string][][]byte
	Errs          map[string]error
	SearchResults []models.Article
	SearchErr     error
	Images        map[int64]*models.Image
	ImageErr      error
	FetchCalls    map[string]int
	ImageCalls    int
}

func NewMockContentClient() *MockContentClient {
	return &MockContentClient{
		Pages:      make(map[string][][]byte),
		Errs:       make(map[string]error),
		Images:     make(map[int64]*models.Image),
		FetchCalls: make(map[string]int),
	}
}

func (m *MockContentClient) FetchAllPages(ctx context.Context, endpoint string, f wordpress.Filters) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls[endpoint]++
	if err := m.Errs[endpoint]; err != nil {
		return nil, err
	}
	return m.Pages[endpoint], nil
}

func (m *MockContentClient) SearchArticles(ctx context.Context, query string) ([]models.Article, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults, nil
}

func (m *MockContentClient) FetchImageMetadata(ctx context.Context, imageID int64) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImageCalls++
	if m.ImageErr != nil {
		return nil, m.ImageErr
	}
	return m.Images[imageID], nil
}

// MockEpisodeSource is a mock implementation of the podcast feed surface
type MockEpisodeSource struct {
	Episodes []models.Podcast
	Err      error
}

func (m *MockEpisodeSource) Fetch(ctx context.Context) ([]models.Podcast, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Episodes, nil
}
