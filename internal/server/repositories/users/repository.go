// Package users stores identity accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/server/models"
)

type Repository interface {
	// Create inserts the account, assigning an id when user.ID is empty.
	// A taken email yields common.ErrEmailAlreadyInUse.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetBySubject(ctx context.Context, provider, subject string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
	// Delete removes the account; common.ErrorNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
