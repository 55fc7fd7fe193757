package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/listitems"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/lists"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a concrete database handle.
// Passing a *sql.Tx instead of the root *sql.DB lets services run several
// repository calls inside one transaction (see dbx.WithTx).
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
	Lists(db dbx.DBTX) lists.Repository
	ListItems(db dbx.DBTX) listitems.Repository
}
