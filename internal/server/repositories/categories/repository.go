// Package categories stores user-owned, user-ordered categories.
package categories

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/server/models"
)

// Repository scopes every call to the owning user. Lookups of a missing
// category return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	// NextOrder returns max(order)+1 over the user's categories, 0 when none.
	NextOrder(ctx context.Context, userID string) (int, error)
	// List returns categories by ascending order, ties by id. Rows without a
	// name are skipped.
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Get(ctx context.Context, userID, id string) (*models.Category, error)
	// FindByName returns the first category named name in list order.
	FindByName(ctx context.Context, userID, name string) (*models.Category, error)
	Rename(ctx context.Context, userID, id, name string) error
	SetOrder(ctx context.Context, userID, id string, order int) error
	Delete(ctx context.Context, userID, id string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}
