package lists

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository is the storage contract for lists. Owner-scoped lookups take
// the owner's user id; FindOneByID ignores ownership and exists for
// reference validation.
type Repository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.List, error)
	FindOneByUser(ctx context.Context, id, userID string) (*models.List, error)
	FindOneByID(ctx context.Context, id string) (*models.List, error)
	Update(ctx context.Context, list *models.List) (*models.List, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteAll(ctx context.Context) error
}
