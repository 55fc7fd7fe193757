package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

// CreateListInput carries the fields for a new list.
type CreateListInput struct {
	Name string `json:"name"`
}

// UpdateListInput is a partial update: nil fields are left untouched.
type UpdateListInput struct {
	Name *string `json:"name,omitempty"`
}

// ListService owns list records, with the same ownership scoping as
// ItemService.
type ListService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewListService(db *sql.DB, rm repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, rm: rm}
}

func (s *ListService) Create(ctx context.Context, input CreateListInput, owner *models.User) (*models.List, error) {
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	list := &models.List{
		Name:   strings.TrimSpace(input.Name),
		UserID: owner.ID,
	}

	return s.rm.Lists(s.db).Create(ctx, list)
}

func (s *ListService) FindAll(ctx context.Context, owner *models.User, p args.Pagination, sr args.Search) ([]*models.List, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.rm.Lists(s.db).FindAllByUser(ctx, owner.ID, p, sr)
}

func (s *ListService) FindOne(ctx context.Context, id string, owner *models.User) (*models.List, error) {
	return s.rm.Lists(s.db).FindOneByUser(ctx, id, owner.ID)
}

// Update re-validates ownership before applying the patch.
func (s *ListService) Update(ctx context.Context, id string, patch UpdateListInput, owner *models.User) (*models.List, error) {
	list, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := requireName(*patch.Name); err != nil {
			return nil, err
		}
		list.Name = strings.TrimSpace(*patch.Name)
	}

	return s.rm.Lists(s.db).Update(ctx, list)
}

// Remove hard-deletes the list and returns a snapshot of the deleted row.
// Pairings referencing the list go with it (cascade).
func (s *ListService) Remove(ctx context.Context, id string, owner *models.User) (*models.List, error) {
	list, err := s.FindOne(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if err := s.rm.Lists(s.db).Delete(ctx, list.ID); err != nil {
		return nil, err
	}

	return list, nil
}

// CountByUser is the on-demand aggregate behind a user's listCount field.
func (s *ListService) CountByUser(ctx context.Context, owner *models.User) (int64, error) {
	return s.rm.Lists(s.db).CountByUser(ctx, owner.ID)
}
