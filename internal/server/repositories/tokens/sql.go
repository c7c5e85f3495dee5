package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

const table = "tokens"

// SQLRepository implements Repository over dbx.DBTX (satisfied by *sql.DB
// or *sql.Tx) for any supported dialect.
type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

// NewSQLRepository constructs a repository bound to db.
func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*models.Token, error) {
	query, args, err := r.d.Builder().
		Select("token_id", "user_id", "created_at").
		From(table).
		Where(sq.Eq{"token_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var (
		tokenID, userID int64
		createdAt       time.Time
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&tokenID, &userID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}

	return models.RestoreToken(tokenID, userID, createdAt), nil
}

// Save inserts t. Tokens are never updated, so saving a token that already
// has an id fails with common.ErrIDAlreadyAssigned.
func (r *SQLRepository) Save(ctx context.Context, t *models.Token) (*models.Token, error) {
	if _, ok := t.ID(); ok {
		return nil, common.ErrIDAlreadyAssigned
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.d.Builder().
		Insert(table).
		Columns("user_id", "created_at").
		Values(t.UserID(), t.CreatedAt).
		Suffix("RETURNING token_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	if err := t.AssignID(id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLRepository) Delete(ctx context.Context, t *models.Token) (bool, error) {
	id, ok := t.ID()
	if !ok {
		return false, nil
	}

	query, args, err := r.d.Builder().
		Delete(table).
		Where(sq.Eq{"token_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return n > 0, nil
}

// DeleteByCriteria reports true once the statement ran, whether or not any
// row matched.
func (r *SQLRepository) DeleteByCriteria(ctx context.Context, c criteria.Criteria) (bool, error) {
	if _, err := dbx.DeleteCriteria(ctx, r.db, r.d, table, c); err != nil {
		if errors.Is(err, common.ErrNoFilterForDelete) {
			return false, err
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
