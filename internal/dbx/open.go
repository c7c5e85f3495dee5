package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// Open opens a pool for d and checks that the database answers.
// SQLite pools are capped at one connection, which the engine's single
// writer requires.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if d.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", StoreFailure(err))
	}
	return db, nil
}
