// Package resettokens stores single-use password reset grants.
package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error
	// Consume deletes and returns the token; common.ErrorNotFound for unknown
	// or already redeemed tokens.
	Consume(ctx context.Context, token string) (*models.ResetToken, error)
}
