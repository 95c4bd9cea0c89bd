// Package services contains application services for the SavvySnip client:
// the identity gateway and the category and snip stores the view-models use.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/savvysnip/internal/client/client"
	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/client/repositories/session"
	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/logging"
)

// AuthService is the identity gateway of the CLI.
//
// Contract:
//   - Register / SignIn / SignInWithExternalCredential: authenticate against
//     the server and persist the session locally.
//   - SignOut: revoke the refresh token (best effort) and drop the session.
//   - CurrentAccount: the signed-in account, or nil when there is none.
//   - ResetPassword: ask the server to mail a reset link.
//   - DeleteAccount: remove the account with all its data.
//   - Resume: reinstall a stored session into the transport.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.Account, error)
	SignIn(ctx context.Context, email, password string) (*models.Account, error)
	SignInWithExternalCredential(ctx context.Context, idToken string) (*models.Account, error)
	SignOut(ctx context.Context) error
	CurrentAccount(ctx context.Context) (*models.Account, error)
	ResetPassword(ctx context.Context, email string) error
	DeleteAccount(ctx context.Context) error
	Resume(ctx context.Context) (*models.Account, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
	logger   logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// local session store.
func NewAuthService(c client.Client, sessions session.Repository, l logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, logger: l}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func (a *authService) persist(ctx context.Context, s *models.Session) (*models.Account, error) {
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s.Account(), nil
}

// Register fails with common.ErrFieldEmpty before any network call when an
// input is blank, with common.ErrEmailAlreadyInUse on a duplicate email and
// with common.ErrRegistrationFailed wrapping the cause otherwise.
func (a *authService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	if blank(email, password) {
		return nil, common.ErrFieldEmpty
	}

	s, err := a.client.Register(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyInUse) || errors.Is(err, common.ErrFieldEmpty) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrRegistrationFailed, err)
	}

	return a.persist(ctx, s)
}

// signInError keeps the failures a user can act on and folds everything else
// into common.ErrSignInFailed.
func signInError(err error) error {
	for _, known := range []error{common.ErrWrongPassword, common.ErrUserNotFound, common.ErrNetwork, common.ErrFieldEmpty} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrSignInFailed, err)
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	if blank(email, password) {
		return nil, common.ErrFieldEmpty
	}

	s, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, signInError(err)
	}

	return a.persist(ctx, s)
}

func (a *authService) SignInWithExternalCredential(ctx context.Context, idToken string) (*models.Account, error) {
	if blank(idToken) {
		return nil, common.ErrFieldEmpty
	}

	s, err := a.client.SignInWithCredential(ctx, idToken)
	if err != nil {
		return nil, signInError(err)
	}

	return a.persist(ctx, s)
}

func (a *authService) SignOut(ctx context.Context) error {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return common.ErrUserNotLoggedIn
	}

	if err := a.client.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "Refresh token revocation failed", "err", err)
	}

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) CurrentAccount(ctx context.Context) (*models.Account, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return s.Account(), nil
}

func (a *authService) Resume(ctx context.Context) (*models.Account, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	a.client.SetTokens(s.AccessToken, s.RefreshToken)
	return s.Account(), nil
}

func (a *authService) ResetPassword(ctx context.Context, email string) error {
	if blank(email) {
		return common.ErrFieldEmpty
	}
	return a.client.RequestPasswordReset(ctx, email)
}

// DeleteAccount returns common.ErrNoCurrentUser without a session. Server
// failures come back as common.ErrDeleteFailed or common.ErrDataDeleteFailed
// and leave the local session in place.
func (a *authService) DeleteAccount(ctx context.Context) error {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		return common.ErrNoCurrentUser
	}

	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info(ctx, "Account deleted", "user_id", s.UserID)
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
