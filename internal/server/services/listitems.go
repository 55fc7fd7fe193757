package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

// CreateListItemInput carries the fields for a new pairing. Quantity, when
// present, must be positive.
type CreateListItemInput struct {
	ListID    string `json:"listId"`
	ItemID    string `json:"itemId"`
	Quantity  *int   `json:"quantity,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}

// UpdateListItemInput is a partial update. ListID/ItemID re-point the
// pairing; the new reference is validated like on create.
type UpdateListItemInput struct {
	ListID    *string `json:"listId,omitempty"`
	ItemID    *string `json:"itemId,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// ListItemService manages list/item pairings. A pairing may join a list and
// an item owned by different users; readers still only reach pairings
// through lists they own. There is no delete operation.
type ListItemService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewListItemService(db *sql.DB, rm repomanager.RepositoryManager) *ListItemService {
	return &ListItemService{db: db, rm: rm}
}

// Create validates both references and inserts the pairing in a single
// transaction, so a concurrently deleted list or item cannot slip through.
func (s *ListItemService) Create(ctx context.Context, input CreateListItemInput) (*models.ListItem, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}

	listItem := &models.ListItem{
		Quantity: input.Quantity,
		ListID:   input.ListID,
		ItemID:   input.ItemID,
	}
	if input.Completed != nil {
		listItem.Completed = *input.Completed
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkReferences(ctx, tx, listItem.ListID, listItem.ItemID); err != nil {
			return err
		}

		_, err := s.rm.ListItems(tx).Create(ctx, listItem)
		return err
	})
	if err != nil {
		return nil, err
	}

	return listItem, nil
}

// FindAllByList returns the pairings of a list the caller has already
// resolved through the ownership-scoped ListService. The search term
// matches against the associated item's name.
func (s *ListItemService) FindAllByList(ctx context.Context, list *models.List, p args.Pagination, sr args.Search) ([]*models.ListItem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.rm.ListItems(s.db).FindAllByList(ctx, list.ID, p, sr)
}

func (s *ListItemService) FindOne(ctx context.Context, id string) (*models.ListItem, error) {
	return s.rm.ListItems(s.db).FindOneByID(ctx, id)
}

// Update applies a partial update, re-validating any re-pointed reference.
func (s *ListItemService) Update(ctx context.Context, id string, patch UpdateListItemInput) (*models.ListItem, error) {
	if err := validateQuantity(patch.Quantity); err != nil {
		return nil, err
	}

	var updated *models.ListItem

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.ListItems(tx)

		listItem, err := repo.FindOneByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.ListID != nil {
			listItem.ListID = *patch.ListID
		}
		if patch.ItemID != nil {
			listItem.ItemID = *patch.ItemID
		}
		if patch.ListID != nil || patch.ItemID != nil {
			if err := s.checkReferences(ctx, tx, listItem.ListID, listItem.ItemID); err != nil {
				return err
			}
		}
		if patch.Quantity != nil {
			listItem.Quantity = patch.Quantity
		}
		if patch.Completed != nil {
			listItem.Completed = *patch.Completed
		}

		updated, err = repo.Update(ctx, listItem)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// CountByList is the on-demand aggregate behind a list's totalItems field.
func (s *ListItemService) CountByList(ctx context.Context, list *models.List) (int64, error) {
	return s.rm.ListItems(s.db).CountByList(ctx, list.ID)
}

// checkReferences confirms that both ends of the pairing exist, regardless
// of who owns them. The schema's foreign keys back this up.
func (s *ListItemService) checkReferences(ctx context.Context, db dbx.DBTX, listID, itemID string) error {
	if _, err := s.rm.Lists(db).FindOneByID(ctx, listID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: list %q does not exist", common.ErrNotFound, listID)
		}
		return err
	}
	if _, err := s.rm.Items(db).FindOneByID(ctx, itemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: item %q does not exist", common.ErrNotFound, itemID)
		}
		return err
	}
	return nil
}

func validateQuantity(quantity *int) error {
	if quantity != nil && *quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", common.ErrValidation)
	}
	return nil
}
