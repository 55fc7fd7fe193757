// Package services implements the application operations on top of the
// repository layer: authentication, the ownership-scoped entity services,
// and database seeding. Services receive the acting identity explicitly;
// nothing is pulled out of ambient state.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/args"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

// CreateUserInput carries the signup fields. Roles is optional; when empty
// the default role set {user} is assigned.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Roles    []models.Role
}

// UpdateUserInput is a partial update: nil fields are left untouched.
// Password, when present, is re-hashed before storage.
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Password *string
	Roles    []models.Role
	IsActive *bool
}

// UserService owns account records. Reads and writes here are admin-gated
// at the transport boundary; the service itself only guards invariants
// (role set never empty, no self-blocking, hashed credentials).
type UserService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, rm: rm}
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	user := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Roles:        roles,
	}

	return s.rm.Users(s.db).Create(ctx, user)
}

// FindAll returns users holding at least one of the given roles (all users
// when the filter is empty), paginated and searchable by full name.
func (s *UserService) FindAll(ctx context.Context, roles []models.Role, p args.Pagination, sr args.Search) ([]*models.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.rm.Users(s.db).FindAll(ctx, roles, p, sr)
}

func (s *UserService) FindOneByID(ctx context.Context, id string) (*models.User, error) {
	return s.rm.Users(s.db).FindOneByID(ctx, id)
}

// FindOneByEmailWithPassword is the opt-in projection that includes the
// credential hash. Only the login path should need it.
func (s *UserService) FindOneByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	return s.rm.Users(s.db).FindOneByEmailWithPassword(ctx, normalizeEmail(email))
}

// Update applies a partial update to the user with the given id and records
// actor as the last modifier.
func (s *UserService) Update(ctx context.Context, id string, patch UpdateUserInput, actor *models.User) (*models.User, error) {
	user, err := s.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Email != nil {
		user.Email = normalizeEmail(*patch.Email)
	}
	if patch.Roles != nil {
		if len(patch.Roles) == 0 {
			return nil, fmt.Errorf("%w: a user must hold at least one role", common.ErrValidation)
		}
		user.Roles = patch.Roles
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	// An empty hash tells the repository to keep the stored one.
	user.PasswordHash = ""
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedByID = &actor.ID

	return s.rm.Users(s.db).Update(ctx, user)
}

// BlockUser deactivates the target account. The block takes effect on the
// target's next request, when identity resolution re-checks the flag.
func (s *UserService) BlockUser(ctx context.Context, id string, actor *models.User) (*models.User, error) {
	if id == actor.ID {
		return nil, fmt.Errorf("%w: cannot block your own account", common.ErrValidation)
	}

	user, err := s.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	user.UpdatedByID = &actor.ID
	user.PasswordHash = ""

	return s.rm.Users(s.db).Update(ctx, user)
}

func validateSignup(input CreateUserInput) error {
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: fullName must not be empty", common.ErrValidation)
	}
	if !strings.Contains(input.Email, "@") {
		return fmt.Errorf("%w: email is malformed", common.ErrValidation)
	}
	return validatePassword(input.Password)
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
