// Package snips stores snips under their category.
package snips

import (
	"context"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/server/models"
)

// Repository operations return common.ErrorNotFound for missing rows.
// Ownership is checked through the parent category's user_id.
type Repository interface {
	Create(ctx context.Context, s *models.Snip) (*models.Snip, error)
	// ListByCategory returns snips in creation order.
	ListByCategory(ctx context.Context, categoryID string) ([]*models.Snip, error)
	GetOwned(ctx context.Context, userID, id string) (*models.Snip, error)
	FindByValue(ctx context.Context, categoryID, title, code string, ts time.Time) (*models.Snip, error)
	FindByTimestamp(ctx context.Context, categoryID string, ts time.Time) (*models.Snip, error)
	Update(ctx context.Context, id, title, code string) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}
