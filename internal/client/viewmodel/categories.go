package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

type categoryStore interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Rename(ctx context.Context, id, newName string) error
	Reorder(ctx context.Context, categories []models.Category) error
	Delete(ctx context.Context, category models.Category) error
}

const (
	msgLoadCategories  = "Error loading categories: %v"
	msgAddCategory     = "Error adding category: %v"
	msgRenameCategory  = "Error renaming category: %v"
	msgReorderCategory = "Error reordering categories: %v"
	msgDeleteCategory  = "Error deleting category: %v"
)

// CategoriesModel backs the category list. Every successful mutation is
// followed by a fresh List.
type CategoriesModel struct {
	screen
	store      categoryStore
	categories []models.Category
}

func NewCategoriesModel(store categoryStore) *CategoriesModel {
	return &CategoriesModel{store: store}
}

// Categories returns a copy of the last loaded list, ascending by order.
func (m *CategoriesModel) Categories() []models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Category(nil), m.categories...)
}

func categoryMessage(format string, err error) string {
	if errors.Is(err, common.ErrFieldEmpty) {
		return MsgFieldsEmpty
	}
	if errors.Is(err, common.ErrNetwork) {
		return MsgNetwork
	}
	return fmt.Sprintf(format, err)
}

func (m *CategoriesModel) Load(ctx context.Context) error {
	m.begin()
	return m.reload(ctx)
}

func (m *CategoriesModel) reload(ctx context.Context) error {
	list, err := m.store.List(ctx)
	if err != nil {
		m.finish(categoryMessage(msgLoadCategories, err), nil)
		return err
	}
	m.finish("", func() { m.categories = list })
	return nil
}

func (m *CategoriesModel) mutate(ctx context.Context, format string, do func() error) error {
	m.begin()
	if err := do(); err != nil {
		m.finish(categoryMessage(format, err), nil)
		return err
	}
	return m.reload(ctx)
}

func (m *CategoriesModel) Create(ctx context.Context, name string) error {
	return m.mutate(ctx, msgAddCategory, func() error {
		_, err := m.store.Create(ctx, name)
		return err
	})
}

func (m *CategoriesModel) Rename(ctx context.Context, id, newName string) error {
	return m.mutate(ctx, msgRenameCategory, func() error {
		return m.store.Rename(ctx, id, newName)
	})
}

// Move takes the category at index from and puts it at index to of the
// loaded list, then stores the whole new sequence.
func (m *CategoriesModel) Move(ctx context.Context, from, to int) error {
	list := m.Categories()
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		err := fmt.Errorf("move %d -> %d: %w", from, to, common.ErrInvalidReorder)
		m.finish(categoryMessage(msgReorderCategory, err), nil)
		return err
	}
	return m.Reorder(ctx, MoveCategory(list, from, to))
}

func (m *CategoriesModel) Reorder(ctx context.Context, categories []models.Category) error {
	return m.mutate(ctx, msgReorderCategory, func() error {
		return m.store.Reorder(ctx, categories)
	})
}

func (m *CategoriesModel) Delete(ctx context.Context, category models.Category) error {
	return m.mutate(ctx, msgDeleteCategory, func() error {
		return m.store.Delete(ctx, category)
	})
}

// MoveCategory returns a copy of list with the element at from moved to to.
func MoveCategory(list []models.Category, from, to int) []models.Category {
	res := append([]models.Category(nil), list...)
	item := res[from]
	res = append(res[:from], res[from+1:]...)
	res = append(res[:to], append([]models.Category{item}, res[to:]...)...)
	return res
}
