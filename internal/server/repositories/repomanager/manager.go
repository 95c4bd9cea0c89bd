package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/categories"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/snips"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same service
// code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Categories(db dbx.DBTX) categories.Repository
	Snips(db dbx.DBTX) snips.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
}
