package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/client/client"
	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// SnipStore manages snips. The name-addressed methods resolve the category by
// name on the server for every call; the ...In and ...ByID forms address
// categories and snips by their ids.
type SnipStore struct {
	client client.Client
}

func NewSnipStore(c client.Client) *SnipStore {
	return &SnipStore{client: c}
}

func byName(name string) models.CategoryRef { return models.CategoryRef{Name: name} }
func byID(id string) models.CategoryRef     { return models.CategoryRef{ID: id} }

func (s *SnipStore) create(ctx context.Context, ref models.CategoryRef, title, code string) (*models.Snip, error) {
	if blank(title, code) {
		return nil, common.ErrFieldEmpty
	}
	sn, err := s.client.CreateSnip(ctx, ref, title, code)
	if err != nil {
		return nil, fmt.Errorf("create snip: %w", err)
	}
	return sn, nil
}

func (s *SnipStore) list(ctx context.Context, ref models.CategoryRef) ([]models.Snip, error) {
	res, err := s.client.ListSnips(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list snips: %w", err)
	}
	return res, nil
}

// Create stores a snip in the first category named categoryName. The server
// stamps the creation time.
func (s *SnipStore) Create(ctx context.Context, categoryName, title, code string) (*models.Snip, error) {
	return s.create(ctx, byName(categoryName), title, code)
}

func (s *SnipStore) CreateIn(ctx context.Context, categoryID, title, code string) (*models.Snip, error) {
	return s.create(ctx, byID(categoryID), title, code)
}

// List returns the snips of categoryName in creation order.
func (s *SnipStore) List(ctx context.Context, categoryName string) ([]models.Snip, error) {
	return s.list(ctx, byName(categoryName))
}

func (s *SnipStore) ListIn(ctx context.Context, categoryID string) ([]models.Snip, error) {
	return s.list(ctx, byID(categoryID))
}

// Update rewrites title and code of snip. Without an ID the snip is found by
// its Timestamp inside categoryName. The timestamp itself never changes.
func (s *SnipStore) Update(ctx context.Context, categoryName string, snip models.Snip) error {
	if blank(snip.Title, snip.Code) {
		return common.ErrFieldEmpty
	}
	if err := s.client.UpdateSnip(ctx, byName(categoryName), snip); err != nil {
		return fmt.Errorf("update snip: %w", err)
	}
	return nil
}

func (s *SnipStore) UpdateByID(ctx context.Context, snipID, title, code string) error {
	return s.Update(ctx, "", models.Snip{ID: snipID, Title: title, Code: code})
}

// Delete removes the snip of categoryName whose title, code and timestamp all
// match exactly; common.ErrSnipNotFound when none does.
func (s *SnipStore) Delete(ctx context.Context, categoryName, title, code string, timestamp time.Time) error {
	snip := models.Snip{Title: title, Code: code, Timestamp: timestamp}
	if err := s.client.DeleteSnip(ctx, byName(categoryName), snip); err != nil {
		return fmt.Errorf("delete snip: %w", err)
	}
	return nil
}

func (s *SnipStore) DeleteByID(ctx context.Context, snipID string) error {
	if err := s.client.DeleteSnip(ctx, models.CategoryRef{}, models.Snip{ID: snipID}); err != nil {
		return fmt.Errorf("delete snip: %w", err)
	}
	return nil
}

// Export uploads the category's snips and returns a temporary download link.
func (s *SnipStore) Export(ctx context.Context, categoryID string) (*models.Export, error) {
	e, err := s.client.ExportCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("export category: %w", err)
	}
	return e, nil
}
