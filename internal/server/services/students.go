package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// Paging defaults for student listings.
const (
	DefaultPage    = 1
	DefaultPerPage = 25
)

// Page turns a 1-based page number and page size into LIMIT and OFFSET.
// Values below 1 fall back to the defaults.
func Page(page, perPage int) (limit, offset int64) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return int64(perPage), int64((page - 1) * perPage)
}

type StudentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStudentService(db *sql.DB, m repomanager.RepositoryManager) *StudentService {
	return &StudentService{db: db, repomanager: m}
}

// ListForUser returns one page of the students owned by userID, oldest
// first.
func (s *StudentService) ListForUser(ctx context.Context, userID int64, page, perPage int) ([]*models.Student, error) {
	limit, offset := Page(page, perPage)

	list, err := s.repomanager.Students(s.db).FindByCriteria(ctx, criteria.New(
		criteria.Equals("user_id", userID),
		criteria.Asc("created_at"),
		criteria.WithLimit(limit),
		criteria.WithOffset(offset),
	))
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return list, nil
}

func (s *StudentService) Create(ctx context.Context, st *models.Student) (*models.Student, error) {
	out, err := s.repomanager.Students(s.db).Save(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return out, nil
}
