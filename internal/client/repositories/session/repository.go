// Package session persists the signed-in session in the client's local
// SQLite metadata table.
package session

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
)

type Repository interface {
	// Load returns the stored session, or nil when nobody is signed in.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}
