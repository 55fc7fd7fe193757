// Package lists provides the PostgreSQL-backed repository for list rows.
package lists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query := `
		INSERT INTO lists (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, list.Name, list.UserID).Scan(&list.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// FindAllByUser returns the owner's lists in stable id order, offset first,
// then limit. A search term matches the list name case-insensitively.
func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.List, error) {
	query := `
		SELECT id, name, user_id
		FROM lists
		WHERE user_id = $1
	`
	params := []any{userID}

	if !s.IsEmpty() {
		params = append(params, s.Term)
		query += " AND name ILIKE '%' || $2 || '%'"
	}

	params = append(params, p.Limit, p.Offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.List
	for rows.Next() {
		var list models.List
		if err := rows.Scan(&list.ID, &list.Name, &list.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// FindOneByUser resolves a list only when it belongs to userID; a row owned
// by someone else is indistinguishable from a missing one.
func (r *PostgresRepository) FindOneByUser(ctx context.Context, id, userID string) (*models.List, error) {
	return r.queryOne(ctx, `SELECT id, name, user_id FROM lists WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *PostgresRepository) FindOneByID(ctx context.Context, id string) (*models.List, error) {
	return r.queryOne(ctx, `SELECT id, name, user_id FROM lists WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, list *models.List) (*models.List, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE lists SET name = $2 WHERE id = $1`, list.ID, list.Name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrNotFound
	}
	return list, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM lists WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lists`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, params ...any) (*models.List, error) {
	var list models.List
	err := r.db.QueryRowContext(ctx, query, params...).Scan(&list.ID, &list.Name, &list.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &list, nil
}
