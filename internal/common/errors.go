// Package common defines shared constants and sentinel errors used across
// client and server layers of SavvySnip. Callers should use errors.Is to
// match these values. The server sends the sentinel text as the gRPC status
// message, so the client can map a status back to the same value.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrResetTokenExpired   = errors.New("password reset token expired")

	// Identity errors.
	ErrFieldEmpty         = errors.New("fields cannot be empty")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNetwork            = errors.New("network error")
	ErrSignInFailed       = errors.New("sign-in failed")
	ErrUserNotLoggedIn    = errors.New("user not logged in")
	ErrNoCurrentUser      = errors.New("no current user")

	// Account deletion. ErrDeleteFailed means the identity was not removed;
	// ErrDataDeleteFailed means removing the owned data failed.
	ErrDeleteFailed     = errors.New("account delete failed")
	ErrDataDeleteFailed = errors.New("account data delete failed")

	// Category / snip errors.
	ErrCategoryNotFound = errors.New("category not found")
	ErrSnipNotFound     = errors.New("snip not found")
	ErrInvalidReorder   = errors.New("reorder must list every category exactly once")
)

// Sentinels lists every error whose text travels over the wire.
var Sentinels = []error{
	ErrorNotFound,
	ErrorInternal,
	ErrorUnauthorized,
	ErrorValidation,
	ErrInvalidToken,
	ErrTokenExpired,
	ErrRefreshTokenExpired,
	ErrResetTokenExpired,
	ErrFieldEmpty,
	ErrEmailAlreadyInUse,
	ErrRegistrationFailed,
	ErrWrongPassword,
	ErrUserNotFound,
	ErrNetwork,
	ErrSignInFailed,
	ErrUserNotLoggedIn,
	ErrNoCurrentUser,
	ErrDeleteFailed,
	ErrDataDeleteFailed,
	ErrCategoryNotFound,
	ErrSnipNotFound,
	ErrInvalidReorder,
}

// SentinelByMessage returns the sentinel whose text equals msg.
func SentinelByMessage(msg string) (error, bool) {
	for _, e := range Sentinels {
		if e.Error() == msg {
			return e, true
		}
	}
	return nil, false
}
