package repomanager

import (
	"context"
	"database/sql"

	"github.com/khonsu303/estudio/internal/dbx"
	"github.com/khonsu303/estudio/internal/server/repositories/events"
	"github.com/khonsu303/estudio/internal/server/repositories/notes"
	"github.com/khonsu303/estudio/internal/server/repositories/subjects"
	"github.com/khonsu303/estudio/internal/server/repositories/users"
)

// RepositoryManager builds repositories bound to either the pool or a
// transaction, so services can compose several of them atomically.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Subjects(db dbx.DBTX) subjects.Repository
	Notes(db dbx.DBTX) notes.Repository
	Events(db dbx.DBTX) events.Repository
}
