package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/client/models"
	"github.com/dmitrijs2005/savvysnip/internal/client/services"
	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// Alert texts shown for identity failures.
const (
	MsgFieldsEmpty     = "Fields Cannot Be Empty"
	MsgEmailInUse      = "Email is already associated with an existing account."
	MsgWrongPassword   = "Incorrect password. Please try again."
	MsgUserNotFound    = "User not found. Please check your credentials."
	MsgNetwork         = "Network error. Please check your internet connection."
	MsgResetEmailEmpty = "Email field cannot be empty."
	MsgNoCurrentUser   = "No user is signed in."
	msgSignInFailed    = "Sign-in failed: %v"
	msgRegisterFailed  = "Failed to register user: %v"
	msgSignOutFailed   = "Error logging out: %v"
	msgDeleteFailed    = "Error Deleting Account: %v"
	msgResetFailed     = "Error resetting password: %v"
	msgCheckUserFailed = "Error checking authenticated user: %v"
)

// AuthModel backs the sign-in, registration and account screens.
type AuthModel struct {
	screen
	auth    services.AuthService
	account *models.Account
}

func NewAuthModel(auth services.AuthService) *AuthModel {
	return &AuthModel{auth: auth}
}

// Account is the signed-in account, nil when signed out.
func (m *AuthModel) Account() *models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

func (m *AuthModel) setAccount(a *models.Account) func() {
	return func() { m.account = a }
}

func signInMessage(err error, generic string) string {
	switch {
	case errors.Is(err, common.ErrFieldEmpty):
		return MsgFieldsEmpty
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		return MsgEmailInUse
	case errors.Is(err, common.ErrWrongPassword):
		return MsgWrongPassword
	case errors.Is(err, common.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, common.ErrNetwork):
		return MsgNetwork
	default:
		return fmt.Sprintf(generic, err)
	}
}

// Load reads the current account from the local session.
func (m *AuthModel) Load(ctx context.Context) error {
	m.begin()
	a, err := m.auth.CurrentAccount(ctx)
	if err != nil {
		m.finish(fmt.Sprintf(msgCheckUserFailed, err), nil)
		return err
	}
	m.finish("", m.setAccount(a))
	return nil
}

func (m *AuthModel) signIn(do func() (*models.Account, error), generic string) error {
	m.begin()
	a, err := do()
	if err != nil {
		m.finish(signInMessage(err, generic), nil)
		return err
	}
	m.finish("", m.setAccount(a))
	return nil
}

func (m *AuthModel) Register(ctx context.Context, email, password string) error {
	return m.signIn(func() (*models.Account, error) { return m.auth.Register(ctx, email, password) }, msgRegisterFailed)
}

func (m *AuthModel) SignIn(ctx context.Context, email, password string) error {
	return m.signIn(func() (*models.Account, error) { return m.auth.SignIn(ctx, email, password) }, msgSignInFailed)
}

func (m *AuthModel) SignInWithExternalCredential(ctx context.Context, token string) error {
	return m.signIn(func() (*models.Account, error) { return m.auth.SignInWithExternalCredential(ctx, token) }, msgSignInFailed)
}

func (m *AuthModel) SignOut(ctx context.Context) error {
	m.begin()
	if err := m.auth.SignOut(ctx); err != nil {
		m.finish(fmt.Sprintf(msgSignOutFailed, err), nil)
		return err
	}
	m.finish("", m.setAccount(nil))
	return nil
}

func (m *AuthModel) ResetPassword(ctx context.Context, email string) error {
	m.begin()
	if err := m.auth.ResetPassword(ctx, email); err != nil {
		msg := fmt.Sprintf(msgResetFailed, err)
		if errors.Is(err, common.ErrFieldEmpty) {
			msg = MsgResetEmailEmpty
		}
		m.finish(msg, nil)
		return err
	}
	m.finish("", nil)
	return nil
}

func (m *AuthModel) DeleteAccount(ctx context.Context) error {
	m.begin()
	if err := m.auth.DeleteAccount(ctx); err != nil {
		msg := fmt.Sprintf(msgDeleteFailed, err)
		if errors.Is(err, common.ErrNoCurrentUser) {
			msg = MsgNoCurrentUser
		}
		m.finish(msg, nil)
		return err
	}
	m.finish("", m.setAccount(nil))
	return nil
}
