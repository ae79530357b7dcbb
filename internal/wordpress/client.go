package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/content-sync-api/internal/config"
	"github.com/content-sync-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// totalPagesHeader carries the total page count on paged list responses.
// Header lookup is case-insensitive.
const totalPagesHeader = "X-WP-TotalPages"

// Filters are the recognized query filters on paged list endpoints.
type Filters struct {
	CategoryIDs []int64
	Before      *time.Time
	After       *time.Time
	Order       string // "asc" or "desc"
}

// Client fetches remote JSON resources from a WordPress-style REST API and
// decodes them into typed results.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a new API client
func NewClient(cfg *config.WordPressConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		log:      log.With().Str("component", "wordpress").Logger(),
	}
}

// buildURL constructs the request URL for one page of an endpoint.
// page and offset are alternative paging conventions; a zero value leaves
// the corresponding parameter out.
func (c *Client) buildURL(endpoint string, page, perPage, offset int, f Filters) (string, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	q := u.Query()
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(f.CategoryIDs) > 0 {
		ids := lo.Map(f.CategoryIDs, func(id int64, _ int) string {
			return strconv.FormatInt(id, 10)
		})
		q.Set("categories", strings.Join(ids, ","))
	}
	if f.Before != nil {
		q.Set("before", f.Before.UTC().Format(wpDateLayout))
	}
	if f.After != nil {
		q.Set("after", f.After.UTC().Format(wpDateLayout))
	}
	if f.Order != "" {
		q.Set("order", f.Order)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// get issues one GET and returns the body and headers. A non-200 status is
// a BadResponseError.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &BadResponseError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.Header, nil
}

// FetchPage fetches a single page of an endpoint using the offset paging
// convention.
func (c *Client) FetchPage(ctx context.Context, endpoint string, perPage, offset int, f Filters) ([]byte, error) {
	rawURL, err := c.buildURL(endpoint, 0, perPage, offset, f)
	if err != nil {
		return nil, err
	}

	body, _, err := c.get(ctx, rawURL)
	return body, err
}

// FetchAllPages fetches page 1 of the endpoint, reads the total page count
// from the response header, and fetches the remaining pages concurrently.
// Either every page's data is returned or the whole call fails: a missing
// follow-up page is ErrFailedPagingRequest, never a partial result. No
// automatic retry is attempted.
func (c *Client) FetchAllPages(ctx context.Context, endpoint string, f Filters) ([][]byte, error) {
	firstURL, err := c.buildURL(endpoint, 1, c.pageSize, 0, f)
	if err != nil {
		return nil, err
	}

	first, headers, err := c.get(ctx, firstURL)
	if err != nil {
		return nil, err
	}

	totalRaw := headers.Get(totalPagesHeader)
	if totalRaw == "" {
		return nil, ErrMissingTotalPages
	}
	numPages, err := strconv.Atoi(totalRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable %s value %q", ErrMissingTotalPages, totalPagesHeader, totalRaw)
	}

	if numPages <= 1 {
		return [][]byte{first}, nil
	}

	// Fan out pages 2..N. Results are slotted by page index; the mutex is
	// the single accumulation point for all follow-up requests.
	pages := make([][]byte, numPages)
	pages[0] = first

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for page := 2; page <= numPages; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			pageURL, err := c.buildURL(endpoint, page, c.pageSize, 0, f)
			if err != nil {
				c.log.Error().Err(err).Int("page", page).Str("endpoint", endpoint).Msg("Failed to build page URL")
				return
			}
			body, _, err := c.get(ctx, pageURL)
			if err != nil {
				c.log.Error().Err(err).Int("page", page).Str("endpoint", endpoint).Msg("Failed to fetch page")
				return
			}

			mu.Lock()
			pages[page-1] = body
			mu.Unlock()
		}(page)
	}
	wg.Wait()

	for i, page := range pages {
		if page == nil {
			return nil, fmt.Errorf("%w: page %d of %s returned no data", ErrFailedPagingRequest, i+1, endpoint)
		}
	}

	return pages, nil
}

// SearchArticles issues a single non-paginated search request and maps the
// results into domain articles.
func (c *Client) SearchArticles(ctx context.Context, query string) ([]models.Article, error) {
	u, err := url.Parse(c.baseURL + "/posts")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	q := u.Query()
	q.Set("search", query)
	q.Set("per_page", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	body, _, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var posts []PostDTO
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractMismatch, err)
	}

	return lo.Map(posts, func(p PostDTO, _ int) models.Article {
		return p.ToArticle()
	}), nil
}

// FetchImageMetadata resolves the thumbnail URL of a media attachment.
// Resolution is best-effort: a body that does not decode, or one without a
// usable URL, yields nil rather than an error. Callers must never fail a
// sync over a missing thumbnail.
func (c *Client) FetchImageMetadata(ctx context.Context, imageID int64) (*models.Image, error) {
	if imageID == 0 {
		return nil, nil
	}

	body, _, err := c.get(ctx, fmt.Sprintf("%s/media/%d", c.baseURL, imageID))
	if err != nil {
		return nil, err
	}

	var media mediaDTO
	if err := json.Unmarshal(body, &media); err != nil {
		c.log.Warn().Err(err).Int64("image_id", imageID).Msg("Media response did not decode, skipping")
		return nil, nil
	}

	thumb := media.thumbnailURL()
	if thumb == "" {
		return nil, nil
	}

	return &models.Image{ID: imageID, ThumbnailURL: thumb}, nil
}
