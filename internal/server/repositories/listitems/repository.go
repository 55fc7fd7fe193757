package listitems

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository is the storage contract for list/item pairings. There is no
// single-row delete: pairings only disappear when their list or item is
// removed (cascade) or the table is wiped for reseeding.
type Repository interface {
	Create(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error)
	FindAllByList(ctx context.Context, listID string, p args.Pagination, s args.Search) ([]*models.ListItem, error)
	FindOneByID(ctx context.Context, id string) (*models.ListItem, error)
	Update(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error)
	CountByList(ctx context.Context, listID string) (int64, error)
	DeleteAll(ctx context.Context) error
}
