package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AddCategory appends a new category. Names are unique case-insensitively.
func (s *Store) AddCategory(ctx context.Context, name string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrNameRequired
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return Category{}, ErrDuplicateCategory
		}
	}

	category := Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.categories = append(s.categories, category)

	if err := s.persist(ctx, keyCategories, s.categories); err != nil {
		return Category{}, err
	}
	return category, nil
}

// RenameCategory changes a category display name. Product links are by ID,
// so no cascade is needed.
func (s *Store) RenameCategory(ctx context.Context, id, name string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrNameRequired
	}
	i := s.categoryIndex(id)
	if i < 0 {
		return Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	for j, c := range s.categories {
		if j != i && strings.EqualFold(c.Name, name) {
			return Category{}, ErrDuplicateCategory
		}
	}

	s.categories[i].Name = name

	if err := s.persist(ctx, keyCategories, s.categories); err != nil {
		return Category{}, err
	}
	return s.categories[i], nil
}

// DeleteCategory removes a category that no product references.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return ErrCategoryInUse
		}
	}

	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return s.persist(ctx, keyCategories, s.categories)
}

// GetCategory returns a category by ID.
func (s *Store) GetCategory(id string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return s.categories[i], nil
}

// ListCategories returns a copy of the categories collection.
func (s *Store) ListCategories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}
