package dbx

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

// sqliteState is the generic SQLSTATE reported for SQLite errors, which
// carry a numeric result code only.
const sqliteState = "HY000"

// StoreError is a failure reported by the database. It keeps the driver's
// native error code, SQLSTATE and message as they were reported.
type StoreError struct {
	Code     int
	SQLState string
	Message  string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure: SQLSTATE[%s] [%d] %s", e.SQLState, e.Code, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// StoreFailure wraps err into a *StoreError. It returns nil for nil and
// leaves errors that already are store failures unchanged.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	out := &StoreError{Message: err.Error(), Err: err}

	var pgErr *pgconn.PgError
	var liteErr *sqlite.Error
	switch {
	case errors.As(err, &pgErr):
		out.SQLState = pgErr.Code
		out.Message = pgErr.Message
	case errors.As(err, &liteErr):
		out.Code = liteErr.Code()
		out.SQLState = sqliteState
	}

	return out
}

// IsStoreFailure reports whether err is or wraps a *StoreError.
func IsStoreFailure(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
