// Package users stores API users.
package users

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

const (
	table   = "users"
	columns = "user_id, email, username, password, created_at, updated_at"
)

type SQLRepository struct {
	db dbx.DBTX
	d  dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, d: d}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	u := &models.User{}
	if err := s.Scan(&u.ID, &u.Email, &u.UserName, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByID returns common.ErrorNotFound when no user has the id.
func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.d.Builder().
		Select(columns).
		From(table).
		Where(sq.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return u, nil
}

func (r *SQLRepository) FindByCriteria(ctx context.Context, c criteria.Criteria) ([]*models.User, error) {
	rows, err := dbx.QueryCriteria(ctx, r.db, r.d, "SELECT "+columns+" FROM "+table, c)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return out, nil
}

func (r *SQLRepository) Save(ctx context.Context, u *models.User) (*models.User, error) {
	if u.ID != 0 {
		return nil, common.ErrIDAlreadyAssigned
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	query, args, err := r.d.Builder().
		Insert(table).
		Columns("email", "username", "password", "created_at", "updated_at").
		Values(u.Email, u.UserName, u.Password, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return u, nil
}

// Update rewrites every mutable column. It returns common.ErrorNotFound
// when the user row is gone.
func (r *SQLRepository) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()

	query, args, err := r.d.Builder().
		Update(table).
		Set("email", u.Email).
		Set("username", u.UserName).
		Set("password", u.Password).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"user_id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, u *models.User) (bool, error) {
	query, args, err := r.d.Builder().
		Delete(table).
		Where(sq.Eq{"user_id": u.ID}).
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

func (r *SQLRepository) DeleteByCriteria(ctx context.Context, c criteria.Criteria) (bool, error) {
	if _, err := dbx.DeleteCriteria(ctx, r.db, r.d, table, c); err != nil {
		if errors.Is(err, common.ErrNoFilterForDelete) {
			return false, err
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}
