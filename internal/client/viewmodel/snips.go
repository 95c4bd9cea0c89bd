package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

type snipStore interface {
	Create(ctx context.Context, categoryName, title, code string) (*models.Snip, error)
	List(ctx context.Context, categoryName string) ([]models.Snip, error)
	Update(ctx context.Context, categoryName string, snip models.Snip) error
	Delete(ctx context.Context, categoryName, title, code string, timestamp time.Time) error
	DeleteByID(ctx context.Context, snipID string) error
	Export(ctx context.Context, categoryID string) (*models.Export, error)
}

const (
	msgLoadSnips  = "Error loading snips: %v"
	msgAddSnip    = "Error adding snip: %v"
	msgUpdateSnip = "Error updating snip: %v"
	msgDeleteSnip = "Error deleting snip: %v"
	msgExport     = "Error exporting category: %v"
)

// SnipsModel backs the snip list of one category. Snips are kept newest
// first.
type SnipsModel struct {
	screen
	store    snipStore
	category models.Category
	snips    []models.Snip
}

func NewSnipsModel(store snipStore, category models.Category) *SnipsModel {
	return &SnipsModel{store: store, category: category}
}

func (m *SnipsModel) Category() models.Category { return m.category }

// Snips returns a copy of the last loaded list.
func (m *SnipsModel) Snips() []models.Snip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Snip(nil), m.snips...)
}

func snipMessage(format string, err error) string {
	switch {
	case errors.Is(err, common.ErrFieldEmpty):
		return MsgFieldsEmpty
	case errors.Is(err, common.ErrNetwork):
		return MsgNetwork
	default:
		return fmt.Sprintf(format, err)
	}
}

// SortNewestFirst orders snips by timestamp, most recent first.
func SortNewestFirst(snips []models.Snip) {
	sort.SliceStable(snips, func(i, j int) bool {
		return snips[i].Timestamp.After(snips[j].Timestamp)
	})
}

func (m *SnipsModel) Load(ctx context.Context) error {
	m.begin()
	return m.reload(ctx)
}

func (m *SnipsModel) reload(ctx context.Context) error {
	list, err := m.store.List(ctx, m.category.Name)
	if err != nil {
		m.finish(snipMessage(msgLoadSnips, err), nil)
		return err
	}
	SortNewestFirst(list)
	m.finish("", func() { m.snips = list })
	return nil
}

func (m *SnipsModel) mutate(ctx context.Context, format string, do func() error) error {
	m.begin()
	if err := do(); err != nil {
		m.finish(snipMessage(format, err), nil)
		return err
	}
	return m.reload(ctx)
}

func (m *SnipsModel) Create(ctx context.Context, title, code string) error {
	return m.mutate(ctx, msgAddSnip, func() error {
		_, err := m.store.Create(ctx, m.category.Name, title, code)
		return err
	})
}

// Update stores new title and code for snip.
func (m *SnipsModel) Update(ctx context.Context, snip models.Snip, title, code string) error {
	snip.Title, snip.Code = title, code
	return m.mutate(ctx, msgUpdateSnip, func() error {
		return m.store.Update(ctx, m.category.Name, snip)
	})
}

// Delete removes snip by id, or by exact value when it has none.
func (m *SnipsModel) Delete(ctx context.Context, snip models.Snip) error {
	return m.mutate(ctx, msgDeleteSnip, func() error {
		if snip.ID != "" {
			return m.store.DeleteByID(ctx, snip.ID)
		}
		return m.store.Delete(ctx, m.category.Name, snip.Title, snip.Code, snip.Timestamp)
	})
}

// Export returns a download link for the category. The list itself is not
// reloaded.
func (m *SnipsModel) Export(ctx context.Context) (*models.Export, error) {
	m.begin()
	e, err := m.store.Export(ctx, m.category.ID)
	if err != nil {
		m.finish(snipMessage(msgExport, err), nil)
		return nil, err
	}
	m.finish("", nil)
	return e, nil
}
