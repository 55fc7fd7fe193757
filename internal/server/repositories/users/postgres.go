// Package users provides the PostgreSQL-backed repository for user
// accounts. Roles are stored as text[] and travel through SQL as
// comma-joined strings so that the repository works over plain
// database/sql handles.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const pgUniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (full_name, email, password_hash, roles)
		VALUES ($1, $2, $3, string_to_array($4, ','))
		RETURNING id, is_active
	`

	err := r.db.QueryRowContext(ctx, query,
		user.FullName, user.Email, user.PasswordHash,
		strings.Join(models.RoleStrings(user.Roles), ","),
	).Scan(&user.ID, &user.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, &common.ConflictError{Field: "email", Value: user.Email}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, roles []models.Role, p args.Pagination, s args.Search) ([]*models.User, error) {
	query := `SELECT id, full_name, email, array_to_string(roles, ','), is_active, updated_by FROM users`

	var (
		conds  []string
		params []any
	)

	if len(roles) > 0 {
		params = append(params, strings.Join(models.RoleStrings(roles), ","))
		conds = append(conds, fmt.Sprintf("roles && string_to_array($%d, ',')", len(params)))
	}
	if !s.IsEmpty() {
		params = append(params, s.Term)
		conds = append(conds, fmt.Sprintf("(full_name ILIKE '%%' || $%d || '%%' OR email ILIKE '%%' || $%d || '%%')", len(params), len(params)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	params = append(params, p.Limit, p.Offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindOneByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, array_to_string(roles, ','), is_active, updated_by
		FROM users
		WHERE id = $1
	`
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) FindOneByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, array_to_string(roles, ','), is_active, updated_by, password_hash
		FROM users
		WHERE email = $1
	`

	user := &models.User{}
	var rolesCSV string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &rolesCSV,
		&user.IsActive, &user.UpdatedByID, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Roles, err = parseStoredRoles(rolesCSV); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	// An empty PasswordHash keeps the stored credential.
	query := `
		UPDATE users
		SET full_name = $2, email = $3,
		    password_hash = COALESCE(NULLIF($4, ''), password_hash),
		    roles = string_to_array($5, ','), is_active = $6, updated_by = $7
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.FullName, user.Email, user.PasswordHash,
		strings.Join(models.RoleStrings(user.Roles), ","),
		user.IsActive, user.UpdatedByID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, &common.ConflictError{Field: "email", Value: user.Email}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrNotFound
	}
	return user, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, queryArgs ...any) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, queryArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var rolesCSV string

	err := row.Scan(&user.ID, &user.FullName, &user.Email, &rolesCSV, &user.IsActive, &user.UpdatedByID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	roles, err := parseStoredRoles(rolesCSV)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func parseStoredRoles(csv string) ([]models.Role, error) {
	roles, err := models.ParseRoles(strings.Split(csv, ","))
	if err != nil {
		return nil, fmt.Errorf("stored roles are corrupt: %w", err)
	}
	return roles, nil
}
