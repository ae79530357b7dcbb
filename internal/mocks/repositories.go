package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/content-sync-api/internal/models"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
// It is mutex-guarded because the sync pipeline's image resolution pass
// runs on a background goroutine.
type MockArticleRepository struct {
	mu          sync.Mutex
	Articles    map[int64]*models.Article
	Links       map[int64][]int64
	UpsertErr   error
	UpsertCalls int
	DeletedIDs  []int64
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		Links:    make(map[int64][]int64),
	}
}

func (m *MockArticleRepository) UpsertBatch(ctx context.Context, articles []*models.Article) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls++
	if m.UpsertErr != nil {
		return 0, m.UpsertErr
	}

	newCount := 0
	for _, article := range articles {
		existing, ok := m.Articles[article.ID]
		if !ok {
			newCount++
			copied := *article
			m.Articles[article.ID] = &copied
			continue
		}
		// Upserts never touch the local bookmark flag
		bookmarked := existing.Bookmarked
		copied := *article
		copied.Bookmarked = bookmarked
		copied.ImageURL = existing.ImageURL
		m.Articles[article.ID] = &copied
	}
	return newCount, nil
}

func (m *MockArticleRepository) ReplaceCategories(ctx context.Context, articleID int64, categoryIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Links[articleID] = append([]int64(nil), categoryIDs...)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	article, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	copied.CategoryIDs = append([]int64(nil), m.Links[id]...)
	return &copied, nil
}

func (m *MockArticleRepository) List(ctx context.Context, opts models.ArticleListOptions) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles := m.sortedByDate(false)
	if opts.Order == "asc" {
		articles = m.sortedByDate(true)
	}
	if opts.Limit > 0 && len(articles) > opts.Limit {
		articles = articles[:opts.Limit]
	}
	return articles, nil
}

func (m *MockArticleRepository) ImagesToResolve(ctx context.Context) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var articles []*models.Article
	for _, article := range m.Articles {
		if article.ImageID > 0 && article.ImageURL == "" {
			copied := *article
			articles = append(articles, &copied)
		}
	}
	return articles, nil
}

func (m *MockArticleRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if article, ok := m.Articles[id]; ok {
		article.ImageURL = imageURL
	}
	return nil
}

func (m *MockArticleRepository) SetBookmarked(ctx context.Context, id int64, bookmarked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if article, ok := m.Articles[id]; ok {
		article.Bookmarked = bookmarked
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

func (m *MockArticleRepository) CountNonBookmarked(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, article := range m.Articles {
		if !article.Bookmarked {
			count++
		}
	}
	return count, nil
}

func (m *MockArticleRepository) OldestNonBookmarked(ctx context.Context, limit int) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var candidates []*models.Article
	for _, article := range m.sortedByDate(true) {
		if article.Bookmarked {
			continue
		}
		candidates = append(candidates, article)
		if len(candidates) == limit {
			break
		}
	}
	return candidates, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.Articles, id)
		delete(m.Links, id)
		m.DeletedIDs = append(m.DeletedIDs, id)
	}
	return nil
}

// sortedByDate must be called with the mutex held
func (m *MockArticleRepository) sortedByDate(ascending bool) []*models.Article {
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, article := range m.Articles {
		copied := *article
		articles = append(articles, &copied)
	}
	sort.Slice(articles, func(i, j int) bool {
		if ascending {
			return articles[i].Date.Before(articles[j].Date)
		}
		return articles[j].Date.Before(articles[i].Date)
	})
	return articles
}

// MockAuthorRepository is a mock implementation of AuthorRepository
type MockAuthorRepository struct {
	Authors     map[int64]*models.Author
	UpsertErr   error
	UpsertCalls int
}

func NewMockAuthorRepository() *MockAuthorRepository {
	return &MockAuthorRepository{Authors: make(map[int64]*models.Author)}
}

func (m *MockAuthorRepository) UpsertBatch(ctx context.Context, authors []*models.Author) (int, error) {
	m.UpsertCalls++
	if m.UpsertErr != nil {
		return 0, m.UpsertErr
	}

	newCount := 0
	for _, author := range authors {
		if _, ok := m.Authors[author.ID]; !ok {
			newCount++
		}
		copied := *author
		m.Authors[author.ID] = &copied
	}
	return newCount, nil
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	return m.Authors[id], nil
}

func (m *MockAuthorRepository) Count(ctx context.Context) (int, error) {
	return len(m.Authors), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories  map[int64]*models.Category
	UpsertErr   error
	UpsertCalls int
	LinkCalls   int
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int64]*models.Category)}
}

func (m *MockCategoryRepository) UpsertBatch(ctx context.Context, categories []*models.Category) (int, error) {
	m.UpsertCalls++
	if m.UpsertErr != nil {
		return 0, m.UpsertErr
	}

	newCount := 0
	for _, category := range categories {
		if _, ok := m.Categories[category.ID]; !ok {
			newCount++
		}
		copied := *category
		m.Categories[category.ID] = &copied
	}
	return newCount, nil
}

func (m *MockCategoryRepository) LinkParents(ctx context.Context) (int64, error) {
	m.LinkCalls++

	var normalized int64
	for _, category := range m.Categories {
		if category.ParentID == 0 {
			continue
		}
		if _, ok := m.Categories[category.ParentID]; !ok {
			category.ParentID = 0
			normalized++
		}
	}
	return normalized, nil
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return m.Categories[id], nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Categories), nil
}

// MockBookmarkRepository is a mock implementation of BookmarkRepository
type MockBookmarkRepository struct {
	Bookmarks map[int64]*models.Bookmark
	CreateErr error
}

func NewMockBookmarkRepository() *MockBookmarkRepository {
	return &MockBookmarkRepository{Bookmarks: make(map[int64]*models.Bookmark)}
}

func (m *MockBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	copied := *bookmark
	m.Bookmarks[bookmark.ArticleID] = &copied
	return nil
}

func (m *MockBookmarkRepository) Delete(ctx context.Context, articleID int64) error {
	if _, ok := m.Bookmarks[articleID]; !ok {
		return fmt.Errorf("bookmark for article %d: %w", articleID, models.ErrNotFound)
	}
	delete(m.Bookmarks, articleID)
	return nil
}

func (m *MockBookmarkRepository) GetByArticleID(ctx context.Context, articleID int64) (*models.Bookmark, error) {
	return m.Bookmarks[articleID], nil
}

func (m *MockBookmarkRepository) List(ctx context.Context) ([]*models.Bookmark, error) {
	bookmarks := make([]*models.Bookmark, 0, len(m.Bookmarks))
	for _, bookmark := range m.Bookmarks {
		copied := *bookmark
		bookmarks = append(bookmarks, &copied)
	}
	sort.Slice(bookmarks, func(i, j int) bool {
		return bookmarks[j].Date.Before(bookmarks[i].Date)
	})
	return bookmarks, nil
}

// MockSyncRunRepository is a mock implementation of SyncRunRepository
type MockSyncRunRepository struct {
	mu    sync.Mutex
	Runs  map[string]*models.SyncRun
	Order []string
}

func NewMockSyncRunRepository() *MockSyncRunRepository {
	return &MockSyncRunRepository{Runs: make(map[string]*models.SyncRun)}
}

func (m *MockSyncRunRepository) Create(ctx context.Context, run *models.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *run
	m.Runs[run.ID] = &copied
	m.Order = append(m.Order, run.ID)
	return nil
}

func (m *MockSyncRunRepository) Update(ctx context.Context, run *models.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *run
	m.Runs[run.ID] = &copied
	return nil
}

func (m *MockSyncRunRepository) GetByID(ctx context.Context, id string) (*models.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Runs[id], nil
}

func (m *MockSyncRunRepository) GetLatest(ctx context.Context) (*models.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Order) == 0 {
		return nil, nil
	}
	return m.Runs[m.Order[len(m.Order)-1]], nil
}
