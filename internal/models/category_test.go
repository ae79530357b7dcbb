package models_test

import (
	"testing"

	"github.com/content-sync-api/internal/models"
)

func arena(categories ...*models.Category) map[int64]*models.Category {
	byID := make(map[int64]*models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}
	return byID
}

func TestTopLevelAncestor_Chain(t *testing.T) {
	root := &models.Category{ID: 1, Name: "Faith"}
	child := &models.Category{ID: 2, Name: "Prayer", ParentID: 1}
	grandchild := &models.Category{ID: 3, Name: "Morning Prayer", ParentID: 2}
	byID := arena(root, child, grandchild)

	if got := grandchild.TopLevelAncestor(byID); got.ID != 1 {
		t.Errorf("Expected root 1, got %d", got.ID)
	}
	if got := child.TopLevelAncestor(byID); got.ID != 1 {
		t.Errorf("Expected root 1, got %d", got.ID)
	}
	if got := root.TopLevelAncestor(byID); got.ID != 1 {
		t.Errorf("Expected root to resolve to itself, got %d", got.ID)
	}
}

func TestTopLevelAncestor_MissingParent(t *testing.T) {
	orphan := &models.Category{ID: 5, Name: "Orphan", ParentID: 99}
	byID := arena(orphan)

	if got := orphan.TopLevelAncestor(byID); got.ID != 5 {
		t.Errorf("Expected the orphan itself, got %d", got.ID)
	}
}

func TestTopLevelAncestor_CycleTerminates(t *testing.T) {
	a := &models.Category{ID: 1, ParentID: 2}
	b := &models.Category{ID: 2, ParentID: 3}
	c := &models.Category{ID: 3, ParentID: 1}
	byID := arena(a, b, c)

	got := a.TopLevelAncestor(byID)
	if got == nil {
		t.Fatal("Expected a node, got nil")
	}
	// The walk stops at the node whose parent would re-enter the cycle
	if got.ID != 3 {
		t.Errorf("Expected last node before re-entry, got %d", got.ID)
	}
}

func TestTopLevelAncestor_SelfParentTerminates(t *testing.T) {
	selfish := &models.Category{ID: 7, ParentID: 7}
	byID := arena(selfish)

	if got := selfish.TopLevelAncestor(byID); got.ID != 7 {
		t.Errorf("Expected the node itself, got %d", got.ID)
	}
}

func TestIsTopLevel(t *testing.T) {
	if !(&models.Category{ID: 1}).IsTopLevel() {
		t.Error("Expected zero parent to be top-level")
	}
	if (&models.Category{ID: 2, ParentID: 1}).IsTopLevel() {
		t.Error("Expected non-zero parent to not be top-level")
	}
}
