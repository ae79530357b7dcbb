package validation_test

import (
	"errors"
	"testing"

	"github.com/content-sync-api/internal/validation"
	"github.com/content-sync-api/internal/wordpress"
)

func TestValidatePosts(t *testing.T) {
	valid := []wordpress.PostDTO{
		{ID: 1, DateGMT: "2024-05-01T08:00:00"},
		{ID: 2}, // empty date is allowed
	}
	if err := validation.ValidatePosts(valid); err != nil {
		t.Errorf("Expected valid posts to pass, got %v", err)
	}

	if err := validation.ValidatePosts([]wordpress.PostDTO{{ID: 0}}); err == nil {
		t.Error("Expected zero id to fail")
	}
	if err := validation.ValidatePosts([]wordpress.PostDTO{{ID: -3}}); err == nil {
		t.Error("Expected negative id to fail")
	}

	err := validation.ValidatePosts([]wordpress.PostDTO{{ID: 5, DateGMT: "05/01/2024"}})
	if err == nil {
		t.Fatal("Expected malformed date to fail")
	}
	var fieldErr *validation.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Expected FieldError, got %T", err)
	}
	if fieldErr.Record != 5 || fieldErr.Field != "date_gmt" {
		t.Errorf("Unexpected field error: %+v", fieldErr)
	}
}

func TestValidateAuthors(t *testing.T) {
	if err := validation.ValidateAuthors([]wordpress.AuthorDTO{{ID: 1, Name: "Jane"}}); err != nil {
		t.Errorf("Expected valid author to pass, got %v", err)
	}
	if err := validation.ValidateAuthors([]wordpress.AuthorDTO{{ID: 0, Name: "Ghost"}}); err == nil {
		t.Error("Expected zero id to fail")
	}
}

func TestValidateCategories(t *testing.T) {
	valid := []wordpress.CategoryDTO{
		{ID: 1, Name: "Faith"},
		{ID: 2, Name: "Prayer", Parent: 1},
		{ID: 3, Name: "Orphan", Parent: 99}, // dangling parents are normalized later, not rejected
	}
	if err := validation.ValidateCategories(valid); err != nil {
		t.Errorf("Expected valid categories to pass, got %v", err)
	}

	if err := validation.ValidateCategories([]wordpress.CategoryDTO{{ID: 0}}); err == nil {
		t.Error("Expected zero id to fail")
	}
	if err := validation.ValidateCategories([]wordpress.CategoryDTO{{ID: 7, Parent: 7}}); err == nil {
		t.Error("Expected self-referencing parent to fail")
	}
}
