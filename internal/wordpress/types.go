package wordpress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/content-sync-api/internal/models"
	"github.com/samber/lo"
)

// wpDateLayout is the timestamp format of the API's *_gmt fields.
const wpDateLayout = "2006-01-02T15:04:05"

// rendered wraps the API's {"rendered": "..."} HTML fragments.
type rendered struct {
	Rendered string `json:"rendered"`
}

// PostDTO is the decode-only shape of one /posts record. It is mapped into
// a domain article and discarded.
type PostDTO struct {
	ID            int64    `json:"id"`
	DateGMT       string   `json:"date_gmt"`
	Link          string   `json:"link"`
	Title         rendered `json:"title"`
	Content       rendered `json:"content"`
	Author        int64    `json:"author"`
	FeaturedMedia int64    `json:"featured_media"`
	Categories    []int64  `json:"categories"`
}

// ToArticle maps the transfer object into a domain article.
func (p *PostDTO) ToArticle() models.Article {
	date, err := time.Parse(wpDateLayout, p.DateGMT)
	if err != nil {
		date = time.Time{}
	}
	return models.Article{
		ID:          p.ID,
		Date:        date.UTC(),
		Link:        p.Link,
		Title:       p.Title.Rendered,
		Body:        p.Content.Rendered,
		AuthorID:    p.Author,
		ImageID:     p.FeaturedMedia,
		CategoryIDs: p.Categories,
	}
}

// AuthorDTO is the decode-only shape of one /users record.
type AuthorDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToAuthor maps the transfer object into a domain author.
func (a *AuthorDTO) ToAuthor() models.Author {
	return models.Author{
		ID:   a.ID,
		Name: a.Name,
		Bio:  a.Description,
	}
}

// CategoryDTO is the decode-only shape of one /categories record.
type CategoryDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Parent int64  `json:"parent"`
}

// ToCategory maps the transfer object into a domain category.
func (c *CategoryDTO) ToCategory() models.Category {
	return models.Category{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: c.Parent,
	}
}

// mediaDTO is the decode-only shape of one /media/{id} record. The
// thumbnail URL lives at media_details.sizes.medium_large.source_url with
// the full source_url as fallback.
type mediaDTO struct {
	ID           int64  `json:"id"`
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

func (m *mediaDTO) thumbnailURL() string {
	if size, ok := m.MediaDetails.Sizes["medium_large"]; ok && size.SourceURL != "" {
		return size.SourceURL
	}
	return m.SourceURL
}

// DecodePosts decodes every fetched page into post transfer objects and
// concatenates them. Page order is irrelevant: record identity, not
// position, determines merge correctness downstream.
func DecodePosts(pages [][]byte) ([]PostDTO, error) {
	return decodePages[PostDTO](pages)
}

// DecodeAuthors decodes every fetched page into author transfer objects.
func DecodeAuthors(pages [][]byte) ([]AuthorDTO, error) {
	return decodePages[AuthorDTO](pages)
}

// DecodeCategories decodes every fetched page into category transfer objects.
func DecodeCategories(pages [][]byte) ([]CategoryDTO, error) {
	return decodePages[CategoryDTO](pages)
}

func decodePages[T any](pages [][]byte) ([]T, error) {
	out := make([][]T, 0, len(pages))
	for _, page := range pages {
		var records []T
		if err := json.Unmarshal(page, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContractMismatch, err)
		}
		out = append(out, records)
	}
	return lo.Flatten(out), nil
}
