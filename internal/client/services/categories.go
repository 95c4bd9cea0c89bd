package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/client/client"
	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// CategoryStore manages the signed-in user's categories. Ordering, cascades
// and transactions are the server's job; the store validates input and wraps
// failures.
type CategoryStore struct {
	client client.Client
}

func NewCategoryStore(c client.Client) *CategoryStore {
	return &CategoryStore{client: c}
}

// Create appends a category after the existing ones.
func (s *CategoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	if blank(name) {
		return nil, common.ErrFieldEmpty
	}
	c, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// List returns the categories ascending by order.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	res, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return res, nil
}

func (s *CategoryStore) Rename(ctx context.Context, id, newName string) error {
	if blank(newName) {
		return common.ErrFieldEmpty
	}
	if err := s.client.RenameCategory(ctx, id, newName); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// Reorder stores categories' positions as their new order, 0..N-1. The slice
// must hold every category of the user exactly once.
func (s *CategoryStore) Reorder(ctx context.Context, categories []models.Category) error {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return s.ReorderIDs(ctx, ids)
}

func (s *CategoryStore) ReorderIDs(ctx context.Context, ids []string) error {
	if err := s.client.ReorderCategories(ctx, ids); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

// Delete removes the category together with its snips.
func (s *CategoryStore) Delete(ctx context.Context, category models.Category) error {
	if err := s.client.DeleteCategory(ctx, category.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Find returns the first category named name in list order.
func (s *CategoryStore) Find(ctx context.Context, name string) (*models.Category, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i], nil
		}
	}
	return nil, common.ErrCategoryNotFound
}
