// Package tokens stores the allow-list rows backing issued credentials.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is everything the token service needs from storage.
type Repository interface {
	// FindByID returns nil without an error when no row has the id.
	FindByID(ctx context.Context, id int64) (*models.Token, error)
	// Save inserts t and assigns the generated id to it.
	Save(ctx context.Context, t *models.Token) (*models.Token, error)
	// Delete removes t and reports whether a row was deleted.
	Delete(ctx context.Context, t *models.Token) (bool, error)
	// DeleteByCriteria removes every row matched by the filter of c. It
	// fails with common.ErrNoFilterForDelete when c has no filter.
	DeleteByCriteria(ctx context.Context, c criteria.Criteria) (bool, error)
}
