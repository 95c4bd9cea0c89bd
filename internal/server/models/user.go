// Package models holds the server's persistent records.
package models

import "time"

// Identity providers an account can be bound to.
const (
	ProviderPassword = "password"
	ProviderExternal = "external"
)

// User is an identity account. PasswordHash is empty for external accounts,
// Subject is empty for password accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Provider     string
	Subject      string
	CreatedAt    time.Time
}

// Profile is the per-user document written once when the account appears.
type Profile struct {
	UID   string
	Email string
}
