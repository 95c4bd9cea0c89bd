// Package models defines client-side data models used by the SavvySnip CLI.
package models

import "time"

// Account is the signed-in identity as the rest of the client sees it.
type Account struct {
	UserID string
	Email  string
}

// Session is the locally persisted sign-in state.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

// Account returns the identity part of s.
func (s *Session) Account() *Account {
	return &Account{UserID: s.UserID, Email: s.Email}
}

type Category struct {
	ID    string
	Name  string
	Order int
}

// Snip is a titled code fragment. Timestamp is the creation time in UTC.
type Snip struct {
	ID         string
	CategoryID string
	Title      string
	Code       string
	Timestamp  time.Time
}

// CategoryRef addresses a category by ID or, when ID is empty, by Name.
type CategoryRef struct {
	ID   string
	Name string
}

// Export is a downloadable copy of one category's snips.
type Export struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}
