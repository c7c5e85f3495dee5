package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseSelect = "SELECT student_id, user_id FROM students"

func TestApplyCriteria(t *testing.T) {
	eq := criteria.Equals("user_id", 42)

	tests := []struct {
		name string
		c    criteria.Criteria
		want string
	}{
		{
			name: "nothing",
			c:    criteria.New(nil, criteria.None()),
			want: baseSelect,
		},
		{
			name: "filter only",
			c:    criteria.New(eq, criteria.None()),
			want: baseSelect + " WHERE " + eq.Predicate(),
		},
		{
			name: "ascending",
			c:    criteria.New(nil, criteria.Asc("created_at")),
			want: baseSelect + ` ORDER BY "created_at" ASC`,
		},
		{
			name: "descending",
			c:    criteria.New(nil, criteria.Desc("created_at")),
			want: baseSelect + ` ORDER BY "created_at" DESC`,
		},
		{
			name: "limit",
			c:    criteria.New(nil, criteria.None(), criteria.WithLimit(10)),
			want: baseSelect + " LIMIT :limit",
		},
		{
			name: "limit and offset",
			c:    criteria.New(nil, criteria.None(), criteria.WithLimit(10), criteria.WithOffset(20)),
			want: baseSelect + " LIMIT :limit OFFSET :offset",
		},
		{
			name: "offset without limit is ignored",
			c:    criteria.New(nil, criteria.None(), criteria.WithOffset(20)),
			want: baseSelect,
		},
		{
			name: "all clauses in order",
			c:    criteria.New(eq, criteria.Asc("created_at"), criteria.WithLimit(25), criteria.WithOffset(0)),
			want: baseSelect + " WHERE " + eq.Predicate() + ` ORDER BY "created_at" ASC LIMIT :limit OFFSET :offset`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyCriteria(baseSelect, tt.c))
		})
	}
}

func TestBindCriteria(t *testing.T) {
	eq := criteria.Equals("user_id", 42)

	assert.Empty(t, BindCriteria(criteria.New(nil, criteria.None())))

	assert.Equal(t,
		map[string]any{eq.Key(): 42, LimitParam: int64(5), OffsetParam: int64(10)},
		BindCriteria(criteria.New(eq, criteria.None(), criteria.WithLimit(5), criteria.WithOffset(10))),
	)

	assert.Equal(t,
		map[string]any{eq.Key(): 42},
		BindCriteria(criteria.New(eq, criteria.None(), criteria.WithOffset(10))),
	)
}

func TestBuildCriteria_Postgres(t *testing.T) {
	a := criteria.Equals("user_id", 42)
	b := criteria.Equals("group", "x")
	c := criteria.New(criteria.And(a, b), criteria.Desc("created_at"), criteria.WithLimit(25), criteria.WithOffset(50))

	query, args, err := BuildCriteria(Postgres, baseSelect, c)
	require.NoError(t, err)

	want := fmt.Sprintf(`%s WHERE ("user_id" = $1) AND ("group" = $2) ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`, baseSelect)
	assert.Equal(t, want, query)
	assert.Equal(t, []any{42, "x", int64(25), int64(50)}, args)
}

func TestBuildCriteria_SQLite(t *testing.T) {
	a := criteria.Equals("user_id", 42)
	c := criteria.New(a, criteria.None(), criteria.WithLimit(1))

	query, args, err := BuildCriteria(SQLite, baseSelect, c)
	require.NoError(t, err)

	assert.Equal(t, baseSelect+` WHERE "user_id" = ? LIMIT ?`, query)
	assert.Equal(t, []any{42, int64(1)}, args)
}

func TestBuildCriteria_IsIdempotent(t *testing.T) {
	build := func() (string, []any) {
		c := criteria.New(criteria.Or(criteria.Equals("a", 1), criteria.Equals("b", 2)), criteria.None())
		q, args, err := BuildCriteria(Postgres, baseSelect, c)
		require.NoError(t, err)
		return q, args
	}

	q1, a1 := build()
	q2, a2 := build()
	assert.Equal(t, q1, q2)
	assert.Equal(t, a1, a2)
}

func TestCompile_LeavesLiteralsAndCastsAlone(t *testing.T) {
	query := `SELECT ':nope', "col:x", created_at::date FROM t WHERE a = :a AND b = :missing AND c = :a`

	got, args, err := Postgres.Compile(query, map[string]any{"a": 1, "nope": 2, "x": 3})
	require.NoError(t, err)

	assert.Equal(t, `SELECT ':nope', "col:x", created_at::date FROM t WHERE a = $1 AND b = :missing AND c = $2`, got)
	assert.Equal(t, []any{1, 1}, args)
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"pgx", "postgres", "PostgreSQL"} {
		d, err := DialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, Postgres.Name, d.Name)
	}
	for _, name := range []string{"sqlite", "sqlite3"} {
		d, err := DialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, SQLite.Name, d.Name)
	}
	_, err := DialectFor("mysql")
	assert.Error(t, err)
}

func newMock(t *testing.T) (DBTX, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestQueryCriteria_BindsInOrder(t *testing.T) {
	db, mock := newMock(t)

	c := criteria.New(criteria.Equals("user_id", 7), criteria.Asc("created_at"), criteria.WithLimit(2), criteria.WithOffset(4))

	mock.ExpectQuery(baseSelect+` WHERE "user_id" = $1 ORDER BY "created_at" ASC LIMIT $2 OFFSET $3`).
		WithArgs(7, 2, 4).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "user_id"}).AddRow(1, 7))

	rows, err := QueryCriteria(context.Background(), db, Postgres, baseSelect, c)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryCriteria_StoreFailure(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(baseSelect).WillReturnError(errors.New("connection reset"))

	_, err := QueryCriteria(context.Background(), db, Postgres, baseSelect, criteria.New(nil, criteria.None()))

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "connection reset", se.Message)
}

func TestDeleteCriteria(t *testing.T) {
	db, mock := newMock(t)

	f := criteria.Equals("user_id", 3)
	mock.ExpectExec(`DELETE FROM tokens WHERE "user_id" = $1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// order and paging never reach a DELETE
	n, err := DeleteCriteria(context.Background(), db, Postgres, "tokens",
		criteria.New(f, criteria.Asc("created_at"), criteria.WithLimit(1)))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCriteria_NoFilter(t *testing.T) {
	db, mock := newMock(t)

	_, err := DeleteCriteria(context.Background(), db, Postgres, "tokens", criteria.New(nil, criteria.None()))

	assert.ErrorIs(t, err, common.ErrNoFilterForDelete)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCriteria_StoreFailure(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM tokens WHERE "user_id" = $1`).
		WithArgs(3).
		WillReturnError(errors.New("db down"))

	_, err := DeleteCriteria(context.Background(), db, Postgres, "tokens",
		criteria.New(criteria.Equals("user_id", 3), criteria.None()))

	assert.True(t, IsStoreFailure(err))
}
