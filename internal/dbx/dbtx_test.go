package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTokensDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(SQLite.DriverName, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE tokens (
		token_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	return db
}

func countTokens(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&n))
	return n
}

func insertToken(ctx context.Context, tx DBTX, userID int64) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO tokens (user_id) VALUES (?)`, userID)
	return err
}

func TestWithTx_Commit(t *testing.T) {
	db := openTokensDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertToken(ctx, tx, 1)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countTokens(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openTokensDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertToken(ctx, tx, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsStoreFailure(err))
	assert.Equal(t, 0, countTokens(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openTokensDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		assert.Equal(t, 0, countTokens(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertToken(ctx, tx, 1))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := openTokensDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	assert.True(t, IsStoreFailure(err))
}

// Runs the translator against a real engine to make sure the compiled
// statements are accepted as written.
func TestCriteria_SQLiteRoundTrip(t *testing.T) {
	db := openTokensDB(t)
	ctx := context.Background()

	for _, uid := range []int64{1, 1, 2, 1} {
		require.NoError(t, insertToken(ctx, db, uid))
	}

	c := criteria.New(criteria.Equals("user_id", int64(1)), criteria.Desc("token_id"),
		criteria.WithLimit(2), criteria.WithOffset(1))

	rows, err := QueryCriteria(ctx, db, SQLite, "SELECT token_id FROM tokens", c)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{2, 1}, ids)

	n, err := DeleteCriteria(ctx, db, SQLite, "tokens",
		criteria.New(criteria.Or(criteria.Equals("user_id", int64(2)), criteria.LessThan("token_id", int64(2))), criteria.None()))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, 2, countTokens(t, db))
}
