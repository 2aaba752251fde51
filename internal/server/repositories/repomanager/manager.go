// Package repomanager hands out repositories bound to a concrete
// DBTX, so the same repository code runs on the pool or inside a
// transaction started by the caller.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/changes"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/orders"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Orders(db dbx.DBTX) orders.Repository
	Changes(db dbx.DBTX) changes.Repository
}
