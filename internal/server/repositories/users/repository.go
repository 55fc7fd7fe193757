package users

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository is the storage contract for user accounts. Default reads never
// return the password hash; FindOneByEmailWithPassword is the single opt-in
// projection that does.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindAll(ctx context.Context, roles []models.Role, p args.Pagination, s args.Search) ([]*models.User, error)
	FindOneByID(ctx context.Context, id string) (*models.User, error)
	FindOneByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	DeleteAll(ctx context.Context) error
}
