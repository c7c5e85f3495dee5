package students

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
	table   = "students"
	columns = `student_id, user_id, full_name, "group", created_at, updated_at`
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

func scanStudent(s scanner) (*models.Student, error) {
	st := &models.Student{}
	var group sql.NullString
	if err := s.Scan(&st.ID, &st.UserID, &st.FullName, &group, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return nil, err
	}
	st.Group = models.DefaultGroup
	if group.Valid {
		st.Group = group.String
	}
	return st, nil
}

func nullGroup(g string) sql.NullString {
	return sql.NullString{String: g, Valid: g != ""}
}

// FindByID returns common.ErrorNotFound when no student has the id.
func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.d.Builder().
		Select(columns).
		From(table).
		Where(sq.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	st, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return st, nil
}

func (r *SQLRepository) FindByCriteria(ctx context.Context, c criteria.Criteria) ([]*models.Student, error) {
	rows, err := dbx.QueryCriteria(ctx, r.db, r.d, "SELECT "+columns+" FROM "+table, c)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Student, 0)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	return out, nil
}

// Save inserts s. An empty group is stored as NULL and read back as
// models.DefaultGroup.
func (r *SQLRepository) Save(ctx context.Context, s *models.Student) (*models.Student, error) {
	if s.ID != 0 {
		return nil, common.ErrIDAlreadyAssigned
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	query, args, err := r.d.Builder().
		Insert(table).
		Columns("user_id", "full_name", `"group"`, "created_at", "updated_at").
		Values(s.UserID, s.FullName, nullGroup(s.Group), s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING student_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.StoreFailure(err))
	}
	if s.Group == "" {
		s.Group = models.DefaultGroup
	}
	return s, nil
}

func (r *SQLRepository) Update(ctx context.Context, s *models.Student) error {
	s.UpdatedAt = time.Now().UTC()

	query, args, err := r.d.Builder().
		Update(table).
		Set("full_name", s.FullName).
		Set(`"group"`, nullGroup(s.Group)).
		Set("updated_at", s.UpdatedAt).
		Where(sq.Eq{"student_id": s.ID}).
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

func (r *SQLRepository) Delete(ctx context.Context, s *models.Student) (bool, error) {
	query, args, err := r.d.Builder().
		Delete(table).
		Where(sq.Eq{"student_id": s.ID}).
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
