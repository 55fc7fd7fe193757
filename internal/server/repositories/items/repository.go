package items

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository is the storage contract for items. Owner-scoped lookups take
// the owner's user id; FindOneByID ignores ownership and exists for
// reference validation and admin reads.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.Item, error)
	FindOneByUser(ctx context.Context, id, userID string) (*models.Item, error)
	FindOneByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteAll(ctx context.Context) error
}
