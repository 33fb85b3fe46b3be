package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docsync/internal/dbx"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/devices"
	"github.com/dmitrijs2005/docsync/internal/server/repositories/records"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Devices(db dbx.DBTX) devices.Repository
	Records(db dbx.DBTX) records.Repository
}
