package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// SeedService wipes the database and repopulates it with fixture data for
// development environments. Within each stage the creations run
// concurrently and are awaited jointly; a stage only starts once the rows
// it references exist.
type SeedService struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	env       string
	users     *UserService
	items     *ItemService
	lists     *ListService
	listItems *ListItemService
}

func NewSeedService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config,
	users *UserService, items *ItemService, lists *ListService, listItems *ListItemService) *SeedService {
	return &SeedService{
		db:        db,
		rm:        rm,
		env:       cfg.Env,
		users:     users,
		items:     items,
		lists:     lists,
		listItems: listItems,
	}
}

// Run reseeds the database. It refuses to run against production.
func (s *SeedService) Run(ctx context.Context) error {
	if s.env == config.EnvProd {
		return fmt.Errorf("cannot seed a %q environment", s.env)
	}

	if err := s.wipe(ctx); err != nil {
		return fmt.Errorf("error wiping database: %w", err)
	}

	seededUsers, err := s.createUsers(ctx)
	if err != nil {
		return fmt.Errorf("error seeding users: %w", err)
	}

	userItems, userLists, err := s.createItemsAndLists(ctx, seededUsers)
	if err != nil {
		return fmt.Errorf("error seeding items and lists: %w", err)
	}

	if err := s.createListItems(ctx, seededUsers, userItems, userLists); err != nil {
		return fmt.Errorf("error seeding list items: %w", err)
	}

	return nil
}

// wipe deletes all rows in one transaction, children first.
func (s *SeedService) wipe(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.ListItems(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.rm.Items(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.rm.Lists(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return s.rm.Users(tx).DeleteAll(ctx)
	})
}

func (s *SeedService) createUsers(ctx context.Context) ([]*models.User, error) {
	result := make([]*models.User, len(seedUsers))

	g, ctx := errgroup.WithContext(ctx)
	for i, fixture := range seedUsers {
		g.Go(func() error {
			user, err := s.users.Create(ctx, fixture)
			if err != nil {
				return err
			}
			result[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// createItemsAndLists creates every user's items and lists concurrently.
// Items and lists do not reference each other, so they share one stage.
func (s *SeedService) createItemsAndLists(ctx context.Context, owners []*models.User) (map[string][]*models.Item, map[string][]*models.List, error) {
	userItems := make(map[string][]*models.Item, len(owners))
	userLists := make(map[string][]*models.List, len(owners))
	for _, owner := range owners {
		userItems[owner.ID] = make([]*models.Item, len(seedItems))
		userLists[owner.ID] = make([]*models.List, len(seedLists))
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, owner := range owners {
		for i, fixture := range seedItems {
			g.Go(func() error {
				item, err := s.items.Create(ctx, fixture, owner)
				if err != nil {
					return err
				}
				userItems[owner.ID][i] = item
				return nil
			})
		}
		for i, fixture := range seedLists {
			g.Go(func() error {
				list, err := s.lists.Create(ctx, fixture, owner)
				if err != nil {
					return err
				}
				userLists[owner.ID][i] = list
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return userItems, userLists, nil
}

// createListItems pairs each user's first list with a few of their items.
func (s *SeedService) createListItems(ctx context.Context, owners []*models.User, userItems map[string][]*models.Item, userLists map[string][]*models.List) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, owner := range owners {
		items := userItems[owner.ID]
		list := userLists[owner.ID][0]

		for i, fixture := range seedPairings {
			g.Go(func() error {
				quantity := fixture.Quantity
				_, err := s.listItems.Create(ctx, CreateListItemInput{
					ListID:    list.ID,
					ItemID:    items[i].ID,
					Quantity:  &quantity,
					Completed: &fixture.Completed,
				})
				return err
			})
		}
	}
	return g.Wait()
}
