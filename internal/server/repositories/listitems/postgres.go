// Package listitems provides the PostgreSQL-backed repository for
// list/item pairings.
package listitems

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapWriteError translates constraint violations into domain errors: a
// duplicate (list_id, item_id) pair is a conflict, a dangling list or item
// reference is a not-found.
func mapWriteError(err error, li *models.ListItem) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &common.ConflictError{Field: "listId/itemId", Value: li.ListID + "/" + li.ItemID}
		case pgForeignKeyViolation:
			return common.ErrNotFound
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	query := `
		INSERT INTO list_items (quantity, completed, list_id, item_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		listItem.Quantity, listItem.Completed, listItem.ListID, listItem.ItemID,
	).Scan(&listItem.ID)
	if err != nil {
		return nil, mapWriteError(err, listItem)
	}

	return listItem, nil
}

// FindAllByList returns the list's pairings in stable id order. A search
// term matches the associated item's name, not the pairing's own fields.
func (r *PostgresRepository) FindAllByList(ctx context.Context, listID string, p args.Pagination, s args.Search) ([]*models.ListItem, error) {
	query := `
		SELECT li.id, li.quantity, li.completed, li.list_id, li.item_id
		FROM list_items li
		WHERE li.list_id = $1
	`
	params := []any{listID}

	if !s.IsEmpty() {
		params = append(params, s.Term)
		query += `
		AND EXISTS (
			SELECT 1 FROM items i
			WHERE i.id = li.item_id AND i.name ILIKE '%' || $2 || '%'
		)`
	}

	params = append(params, p.Limit, p.Offset)
	query += fmt.Sprintf(" ORDER BY li.id LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ListItem
	for rows.Next() {
		var li models.ListItem
		if err := rows.Scan(&li.ID, &li.Quantity, &li.Completed, &li.ListID, &li.ItemID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindOneByID(ctx context.Context, id string) (*models.ListItem, error) {
	query := `
		SELECT id, quantity, completed, list_id, item_id
		FROM list_items
		WHERE id = $1
	`

	var li models.ListItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(&li.ID, &li.Quantity, &li.Completed, &li.ListID, &li.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &li, nil
}

func (r *PostgresRepository) Update(ctx context.Context, listItem *models.ListItem) (*models.ListItem, error) {
	query := `
		UPDATE list_items
		SET quantity = $2, completed = $3, list_id = $4, item_id = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		listItem.ID, listItem.Quantity, listItem.Completed, listItem.ListID, listItem.ItemID,
	)
	if err != nil {
		return nil, mapWriteError(err, listItem)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrNotFound
	}
	return listItem, nil
}

func (r *PostgresRepository) CountByList(ctx context.Context, listID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM list_items WHERE list_id = $1`, listID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM list_items`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
