// Package profiles stores the per-user profile document.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/server/models"
)

type Repository interface {
	// Create writes the profile once; an existing profile is left untouched.
	Create(ctx context.Context, p *models.Profile) error
	// Lock takes a row lock on the profile for the rest of the transaction.
	Lock(ctx context.Context, uid string) error
	Delete(ctx context.Context, uid string) error
}
