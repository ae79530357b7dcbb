package validation

import (
	"fmt"
	"time"

	"github.com/content-sync-api/internal/wordpress"
)

// FieldError reports one invalid field on a decoded transfer object.
type FieldError struct {
	Record  int64       `json:"record"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("record %d: %s %s", e.Record, e.Field, e.Message)
}

// ValidatePosts checks decoded post transfer objects. A record without a
// positive server id cannot be merged by key and fails the whole page: a
// page with invalid records is a contract mismatch and must be rejected
// before any store write.
func ValidatePosts(posts []wordpress.PostDTO) error {
	for _, p := range posts {
		if p.ID <= 0 {
			return &FieldError{Record: p.ID, Field: "id", Message: "must be a positive server id", Value: p.ID}
		}
		if p.DateGMT != "" {
			if _, err := time.Parse("2006-01-02T15:04:05", p.DateGMT); err != nil {
				return &FieldError{Record: p.ID, Field: "date_gmt", Message: "is not a valid timestamp", Value: p.DateGMT}
			}
		}
	}
	return nil
}

// ValidateAuthors checks decoded author transfer objects.
func ValidateAuthors(authors []wordpress.AuthorDTO) error {
	for _, a := range authors {
		if a.ID <= 0 {
			return &FieldError{Record: a.ID, Field: "id", Message: "must be a positive server id", Value: a.ID}
		}
	}
	return nil
}

// ValidateCategories checks decoded category transfer objects. A category
// naming itself as parent would make the ancestor walk degenerate, so it
// is rejected here rather than normalized later.
func ValidateCategories(categories []wordpress.CategoryDTO) error {
	for _, c := range categories {
		if c.ID <= 0 {
			return &FieldError{Record: c.ID, Field: "id", Message: "must be a positive server id", Value: c.ID}
		}
		if c.Parent == c.ID {
			return &FieldError{Record: c.ID, Field: "parent", Message: "references itself", Value: c.Parent}
		}
	}
	return nil
}
