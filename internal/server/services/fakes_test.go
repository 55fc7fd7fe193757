package services

import (
	"context"
	"database/sql"
	"fmt"
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
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func paginate[T any](all []T, p args.Pagination) []T {
	if p.Offset >= len(all) {
		return nil
	}
	all = all[p.Offset:]
	if p.Limit < len(all) {
		all = all[:p.Limit]
	}
	return all
}

// fakeManager vends in-memory repositories regardless of the database
// handle it is given, so services can be exercised without a database.
type fakeManager struct {
	users     *fakeUserRepo
	items     *fakeItemRepo
	lists     *fakeListRepo
	listItems *fakeListItemRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users:     &fakeUserRepo{byID: map[string]*models.User{}},
		items:     &fakeItemRepo{byID: map[string]*models.Item{}},
		lists:     &fakeListRepo{byID: map[string]*models.List{}},
		listItems: &fakeListItemRepo{byID: map[string]*models.ListItem{}},
	}
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeManager) Items(db dbx.DBTX) items.Repository                  { return m.items }
func (m *fakeManager) Lists(db dbx.DBTX) lists.Repository                  { return m.lists }
func (m *fakeManager) ListItems(db dbx.DBTX) listitems.Repository          { return m.listItems }

type fakeUserRepo struct {
	mu   sync.Mutex
	seq  int
	ids  []string
	byID map[string]*models.User
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Roles = append([]models.Role(nil), u.Roles...)
	return &cp
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.ids {
		if r.byID[id].Email == user.Email {
			return nil, &common.ConflictError{Field: "email", Value: user.Email}
		}
	}

	r.seq++
	user.ID = fmt.Sprintf("u-%d", r.seq)
	user.IsActive = true
	r.ids = append(r.ids, user.ID)
	r.byID[user.ID] = copyUser(user)
	return user, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, roles []models.Role, p args.Pagination, s args.Search) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.User
	for _, id := range r.ids {
		u := r.byID[id]
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
		cp := copyUser(u)
		cp.PasswordHash = ""
		matched = append(matched, cp)
	}
	return paginate(matched, p), nil
}

func (r *fakeUserRepo) FindOneByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := copyUser(u)
	cp.PasswordHash = ""
	return cp, nil
}

func (r *fakeUserRepo) FindOneByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.ids {
		if r.byID[id].Email == email {
			return copyUser(r.byID[id]), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}

	cp := copyUser(user)
	// empty hash keeps the stored credential
	if cp.PasswordHash == "" {
		cp.PasswordHash = stored.PasswordHash
	}
	r.byID[user.ID] = cp
	return user, nil
}

func (r *fakeUserRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = nil
	r.byID = map[string]*models.User{}
	return nil
}

type fakeItemRepo struct {
	mu   sync.Mutex
	seq  int
	ids  []string
	byID map[string]*models.Item
}

func (r *fakeItemRepo) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	item.ID = fmt.Sprintf("i-%d", r.seq)
	cp := *item
	r.ids = append(r.ids, item.ID)
	r.byID[item.ID] = &cp
	return item, nil
}

func (r *fakeItemRepo) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Item
	for _, id := range r.ids {
		it := r.byID[id]
		if it.UserID != userID {
			continue
		}
		if s.Term != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(s.Term)) {
			continue
		}
		cp := *it
		matched = append(matched, &cp)
	}
	return paginate(matched, p), nil
}

func (r *fakeItemRepo) FindOneByUser(ctx context.Context, id, userID string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.byID[id]
	if !ok || it.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) FindOneByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[item.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *item
	r.byID[item.ID] = &cp
	return item, nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeItemRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range r.ids {
		if r.byID[id].UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = nil
	r.byID = map[string]*models.Item{}
	return nil
}

type fakeListRepo struct {
	mu   sync.Mutex
	seq  int
	ids  []string
	byID map[string]*models.List
}

func (r *fakeListRepo) Create(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	list.ID = fmt.Sprintf("l-%d", r.seq)
	cp := *list
	r.ids = append(r.ids, list.ID)
	r.byID[list.ID] = &cp
	return list, nil
}

func (r *fakeListRepo) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.List
	for _, id := range r.ids {
		l := r.byID[id]
		if l.UserID != userID {
			continue
		}
		if s.Term != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(s.Term)) {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	return paginate(matched, p), nil
}

func (r *fakeListRepo) FindOneByUser(ctx context.Context, id, userID string) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok || l.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListRepo) FindOneByID(ctx context.Context, id string) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListRepo) Update(ctx context.Context, list *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[list.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *list
	r.byID[list.ID] = &cp
	return list, nil
}

func (r *fakeListRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeListRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range r.ids {
		if r.byID[id].UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeListRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = nil
	r.byID = map[string]*models.List{}
	return nil
}

type fakeListItemRepo struct {
	mu   sync.Mutex
	seq  int
	ids  []string
	byID map[string]*models.ListItem
}

func (r *fakeListItemRepo) Create(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.ids {
		li := r.byID[id]
		if li.ListID == listItem.ListID && li.ItemID == listItem.ItemID {
			return nil, &common.ConflictError{Field: "listId/itemId", Value: li.ListID + "/" + li.ItemID}
		}
	}

	r.seq++
	listItem.ID = fmt.Sprintf("li-%d", r.seq)
	cp := *listItem
	r.ids = append(r.ids, listItem.ID)
	r.byID[listItem.ID] = &cp
	return listItem, nil
}

func (r *fakeListItemRepo) FindAllByList(ctx context.Context, listID string, p args.Pagination, s args.Search) ([]*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.ListItem
	for _, id := range r.ids {
		li := r.byID[id]
		if li.ListID != listID {
			continue
		}
		cp := *li
		matched = append(matched, &cp)
	}
	return paginate(matched, p), nil
}

func (r *fakeListItemRepo) FindOneByID(ctx context.Context, id string) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	li, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *li
	return &cp, nil
}

func (r *fakeListItemRepo) Update(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[listItem.ID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *listItem
	r.byID[listItem.ID] = &cp
	return listItem, nil
}

func (r *fakeListItemRepo) CountByList(ctx context.Context, listID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range r.ids {
		if r.byID[id].ListID == listID {
			n++
		}
	}
	return n, nil
}

func (r *fakeListItemRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = nil
	r.byID = map[string]*models.ListItem{}
	return nil
}
