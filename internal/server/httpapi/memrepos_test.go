package httpapi

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/listitems"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/lists"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

// memManager vends in-memory repositories so handler tests can run the full
// middleware/service/repository stack without a database.
type memManager struct {
	mu        sync.Mutex
	users     map[string]*models.User
	items     map[string]*models.Item
	lists     map[string]*models.List
	listItems map[string]*models.ListItem
	order     map[string][]string
}

func newMemManager() *memManager {
	return &memManager{
		users:     map[string]*models.User{},
		items:     map[string]*models.Item{},
		lists:     map[string]*models.List{},
		listItems: map[string]*models.ListItem{},
		order:     map[string][]string{},
	}
}

// nextID issues uuid primary keys, matching what the database generates,
// so handler-level id validation behaves the same as against Postgres.
func (m *memManager) nextID(prefix string) string {
	id := uuid.NewString()
	m.order[prefix] = append(m.order[prefix], id)
	return id
}

func (m *memManager) dropID(prefix, id string) {
	ids := m.order[prefix]
	for i, v := range ids {
		if v == id {
			m.order[prefix] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

func (m *memManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *memManager) Users(db dbx.DBTX) users.Repository                  { return (*memUserRepo)(m) }
func (m *memManager) Items(db dbx.DBTX) items.Repository                  { return (*memItemRepo)(m) }
func (m *memManager) Lists(db dbx.DBTX) lists.Repository                  { return (*memListRepo)(m) }
func (m *memManager) ListItems(db dbx.DBTX) listitems.Repository          { return (*memListItemRepo)(m) }

type memUserRepo memManager

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Roles = append([]models.Role(nil), u.Roles...)
	return &cp
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, &common.ConflictError{Field: "email", Value: user.Email}
		}
	}
	user.ID = (*memManager)(r).nextID("u")
	user.IsActive = true
	r.users[user.ID] = cloneUser(user)
	return user, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, roles []models.Role, p args.Pagination, s args.Search) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.User
	for _, id := range r.order["u"] {
		u := r.users[id]
		if len(roles) > 0 && !u.HasAnyRole(roles...) {
			continue
		}
		if s.Term != "" {
			term := strings.ToLower(s.Term)
			if !strings.Contains(strings.ToLower(u.FullName), term) &&
				!strings.Contains(strings.ToLower(u.Email), term) {
				continue
			}
		}
		cp := cloneUser(u)
		cp.PasswordHash = ""
		matched = append(matched, cp)
	}
	return page(matched, p), nil
}

func (r *memUserRepo) FindOneByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := cloneUser(u)
	cp.PasswordHash = ""
	return cp, nil
}

func (r *memUserRepo) FindOneByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := cloneUser(user)
	if cp.PasswordHash == "" {
		cp.PasswordHash = stored.PasswordHash
	}
	r.users[user.ID] = cp
	return user, nil
}

func (r *memUserRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = map[string]*models.User{}
	r.order["u"] = nil
	return nil
}

type memItemRepo memManager

func (r *memItemRepo) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = (*memManager)(r).nextID("i")
	cp := *item
	r.items[item.ID] = &cp
	return item, nil
}

func (r *memItemRepo) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Item
	for _, id := range r.order["i"] {
		it := r.items[id]
		if it == nil || it.UserID != userID {
			continue
		}
		if s.Term != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(s.Term)) {
			continue
		}
		cp := *it
		matched = append(matched, &cp)
	}
	return page(matched, p), nil
}

func (r *memItemRepo) FindOneByUser(ctx context.Context, id, userID string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) FindOneByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return item, nil
}

func (r *memItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, id)
	(*memManager)(r).dropID("i", id)
	return nil
}

func (r *memItemRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, it := range r.items {
		if it.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memItemRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = map[string]*models.Item{}
	r.order["i"] = nil
	return nil
}

type memListRepo memManager

func (r *memListRepo) Create(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list.ID = (*memManager)(r).nextID("l")
	cp := *list
	r.lists[list.ID] = &cp
	return list, nil
}

func (r *memListRepo) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.List
	for _, id := range r.order["l"] {
		l := r.lists[id]
		if l == nil || l.UserID != userID {
			continue
		}
		if s.Term != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(s.Term)) {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	return page(matched, p), nil
}

func (r *memListRepo) FindOneByUser(ctx context.Context, id, userID string) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok || l.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memListRepo) FindOneByID(ctx context.Context, id string) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memListRepo) Update(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[list.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *list
	r.lists[list.ID] = &cp
	return list, nil
}

func (r *memListRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.lists, id)
	(*memManager)(r).dropID("l", id)
	return nil
}

func (r *memListRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, l := range r.lists {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memListRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = map[string]*models.List{}
	r.order["l"] = nil
	return nil
}

type memListItemRepo memManager

func (r *memListItemRepo) Create(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, li := range r.listItems {
		if li.ListID == listItem.ListID && li.ItemID == listItem.ItemID {
			return nil, &common.ConflictError{Field: "listId/itemId", Value: li.ListID + "/" + li.ItemID}
		}
	}
	listItem.ID = (*memManager)(r).nextID("li")
	cp := *listItem
	r.listItems[listItem.ID] = &cp
	return listItem, nil
}

func (r *memListItemRepo) FindAllByList(ctx context.Context, listID string, p args.Pagination, s args.Search) ([]*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.ListItem
	for _, id := range r.order["li"] {
		li := r.listItems[id]
		if li == nil || li.ListID != listID {
			continue
		}
		if s.Term != "" {
			item := r.items[li.ItemID]
			if item == nil || !strings.Contains(strings.ToLower(item.Name), strings.ToLower(s.Term)) {
				continue
			}
		}
		cp := *li
		matched = append(matched, &cp)
	}
	return page(matched, p), nil
}

func (r *memListItemRepo) FindOneByID(ctx context.Context, id string) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	li, ok := r.listItems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *li
	return &cp, nil
}

func (r *memListItemRepo) Update(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listItems[listItem.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *listItem
	r.listItems[listItem.ID] = &cp
	return listItem, nil
}

func (r *memListItemRepo) CountByList(ctx context.Context, listID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, li := range r.listItems {
		if li.ListID == listID {
			n++
		}
	}
	return n, nil
}

func (r *memListItemRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listItems = map[string]*models.ListItem{}
	r.order["li"] = nil
	return nil
}

func page[T any](all []T, p args.Pagination) []T {
	if p.Offset >= len(all) {
		return nil
	}
	all = all[p.Offset:]
	if p.Limit < len(all) {
		all = all[:p.Limit]
	}
	return all
}
