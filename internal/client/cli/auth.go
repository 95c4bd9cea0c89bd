package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password and creates a new account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, email, string(password)); err != nil {
		return a.report(a.auth, err)
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.SignIn(ctx, email, string(password)); err != nil {
		return a.report(a.auth, err)
	}

	a.logger.Info(ctx, "Login successful", "email", email)
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Signed in as %s\n", email)
	return nil
}

// LoginWithToken signs in with an ID token issued by the external identity
// provider.
func (a *App) LoginWithToken(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter ID token", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.SignInWithExternalCredential(ctx, token); err != nil {
		return a.report(a.auth, err)
	}

	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Signed in as %s\n", a.auth.Account().Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		return a.report(a.auth, err)
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.auth.Load(ctx); err != nil {
		return a.report(a.auth, err)
	}

	acc := a.auth.Account()
	if acc == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", acc.Email, acc.UserID)
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, email); err != nil {
		return a.report(a.auth, err)
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset link is on its way.")
	return nil
}

// DeleteAccount removes the account and everything it owns after the user
// types "yes".
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete the account with all categories and snips? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		return a.report(a.auth, err)
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
