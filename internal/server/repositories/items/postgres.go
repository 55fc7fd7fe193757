// Package items provides the PostgreSQL-backed repository for item rows.
package items

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

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (name, quantity_units, category, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.QuantityUnits, item.Category, item.UserID,
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// FindAllByUser returns the owner's items in stable id order, offset first,
// then limit. A search term matches the item name case-insensitively.
func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID string, p args.Pagination, s args.Search) ([]*models.Item, error) {
	query := `
		SELECT id, name, quantity_units, category, user_id
		FROM items
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

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.QuantityUnits, &item.Category, &item.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// FindOneByUser resolves an item only when it belongs to userID; a row owned
// by someone else is indistinguishable from a missing one.
func (r *PostgresRepository) FindOneByUser(ctx context.Context, id, userID string) (*models.Item, error) {
	query := `
		SELECT id, name, quantity_units, category, user_id
		FROM items
		WHERE id = $1 AND user_id = $2
	`
	return r.queryOne(ctx, query, id, userID)
}

func (r *PostgresRepository) FindOneByID(ctx context.Context, id string) (*models.Item, error) {
	query := `
		SELECT id, name, quantity_units, category, user_id
		FROM items
		WHERE id = $1
	`
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		UPDATE items
		SET name = $2, quantity_units = $3, category = $4
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.QuantityUnits, item.Category)
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
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
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
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM items WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, params ...any) (*models.Item, error) {
	var item models.Item
	err := r.db.QueryRowContext(ctx, query, params...).Scan(
		&item.ID, &item.Name, &item.QuantityUnits, &item.Category, &item.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
