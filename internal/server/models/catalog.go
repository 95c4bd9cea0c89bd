package models

import "time"

type Category struct {
	ID     string
	UserID string
	Name   string
	Order  int
}

type Snip struct {
	ID         string
	CategoryID string
	Title      string
	Code       string
	Timestamp  time.Time
}
