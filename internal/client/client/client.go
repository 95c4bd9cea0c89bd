package client

import (
	"context"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// SetTokens installs the token pair used for authenticated calls.
	SetTokens(accessToken, refreshToken string)

	Register(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignInWithCredential(ctx context.Context, idToken string) (*models.Session, error)
	SignOut(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	DeleteAccount(ctx context.Context) error

	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RenameCategory(ctx context.Context, id, name string) error
	ReorderCategories(ctx context.Context, ids []string) error
	DeleteCategory(ctx context.Context, id string) error

	CreateSnip(ctx context.Context, ref models.CategoryRef, title, code string) (*models.Snip, error)
	ListSnips(ctx context.Context, ref models.CategoryRef) ([]models.Snip, error)
	UpdateSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error
	DeleteSnip(ctx context.Context, ref models.CategoryRef, snip models.Snip) error

	ExportCategory(ctx context.Context, categoryID string) (*models.Export, error)
}
