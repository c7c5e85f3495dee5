package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByCriteria(ctx context.Context, c criteria.Criteria) ([]*models.User, error)
	Save(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, u *models.User) (bool, error)
	DeleteByCriteria(ctx context.Context, c criteria.Criteria) (bool, error)
}
