// Package migrations embeds the client's goose SQL migrations for the local
// SQLite database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
