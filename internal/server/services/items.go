package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

// CreateItemInput carries the fields for a new item.
type CreateItemInput struct {
	Name          string  `json:"name"`
	QuantityUnits *string `json:"quantityUnits,omitempty"`
	Category      *string `json:"category,omitempty"`
}

// UpdateItemInput is a partial update: nil fields are left untouched.
type UpdateItemInput struct {
	Name          *string `json:"name,omitempty"`
	QuantityUnits *string `json:"quantityUnits,omitempty"`
	Category      *string `json:"category,omitempty"`
}

// ItemService owns item records. Every operation is scoped to the acting
// identity: a record owned by someone else behaves exactly like a missing
// one.
type ItemService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, rm repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, rm: rm}
}

func (s *ItemService) Create(ctx context.Context, input CreateItemInput, owner *models.User) (*models.Item, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:          strings.TrimSpace(input.Name),
		QuantityUnits: input.QuantityUnits,
		Category:      input.Category,
		UserID:        owner.ID,
	}

	return s.rm.Items(s.db).Create(ctx, item)
}

func (s *ItemService) FindAll(ctx context.Context, owner *models.User, p args.Pagination, sr args.Search) ([]*models.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.rm.Items(s.db).FindAllByUser(ctx, owner.ID, p, sr)
}

func (s *ItemService) FindOne(ctx context.Context, id string, owner *models.User) (*models.Item, error) {
	return s.rm.Items(s.db).FindOneByUser(ctx, id, owner.ID)
}

// Update re-validates ownership before applying the patch.
func (s *ItemService) Update(ctx context.Context, id string, patch UpdateItemInput, owner *models.User) (*models.Item, error) {
	item, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := requireName(*patch.Name); err != nil {
			return nil, err
		}
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.QuantityUnits != nil {
		item.QuantityUnits = patch.QuantityUnits
	}
	if patch.Category != nil {
		item.Category = patch.Category
	}

	return s.rm.Items(s.db).Update(ctx, item)
}

// Remove hard-deletes the item and returns a snapshot of the deleted row.
func (s *ItemService) Remove(ctx context.Context, id string, owner *models.User) (*models.Item, error) {
	item, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if err := s.rm.Items(s.db).Delete(ctx, item.ID); err != nil {
		return nil, err
	}

	return item, nil
}

// CountByUser is the on-demand aggregate behind a user's itemCount field.
func (s *ItemService) CountByUser(ctx context.Context, owner *models.User) (int64, error) {
	return s.rm.Items(s.db).CountByUser(ctx, owner.ID)
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	return nil
}
