// Package repotest opens migrated in-memory SQLite databases for repository
// and service tests.
package repotest

import (
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a fresh, fully migrated database private to t.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(dbx.SQLite.DriverName, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect(dbx.SQLite.GooseDialect))
	require.NoError(t, goose.Up(db, dbx.SQLite.Name))

	return db
}
