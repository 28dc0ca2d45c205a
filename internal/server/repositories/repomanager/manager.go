// Package repomanager hands out repositories bound to a database handle and
// runs work inside transactions. Services depend on RepositoryManager only,
// so the account backend can be swapped without touching them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophdrop/internal/dbx"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// DB is the non-transactional handle.
	DB() dbx.DBTX
	// WithTx runs fn in a transaction; repositories built from the handle
	// passed to fn take part in it.
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Files(db dbx.DBTX) files.NamespaceStore
}
