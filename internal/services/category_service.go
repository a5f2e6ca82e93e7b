package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type CategoryService struct {
	store *storage.Store
}

func NewCategoryService(store *storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// Add creates a category for the user. Blank names fail with
// core.ErrEmptyName, per-user duplicates with core.ErrCategoryExists.
func (s *CategoryService) Add(ctx context.Context, name string, userID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, core.ErrEmptyName
	}

	id, err := s.store.CreateCategory(ctx, name, userID)
	if err != nil {
		return 0, fmt.Errorf("add category %q: %w", name, err)
	}
	return id, nil
}

// List returns the user's category names, alphabetically.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]string, error) {
	names, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// Delete removes the named category scoped to the user. Removing a name
// that is not there is a silent no-op.
func (s *CategoryService) Delete(ctx context.Context, name string, userID int64) error {
	if err := s.store.DeleteCategory(ctx, name, userID); err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	return nil
}
