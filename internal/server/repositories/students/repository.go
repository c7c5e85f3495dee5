// Package students stores the student records owned by users.
package students

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByCriteria(ctx context.Context, c criteria.Criteria) ([]*models.Student, error)
	Save(ctx context.Context, s *models.Student) (*models.Student, error)
	Update(ctx context.Context, s *models.Student) error
	Delete(ctx context.Context, s *models.Student) (bool, error)
	DeleteByCriteria(ctx context.Context, c criteria.Criteria) (bool, error)
}
