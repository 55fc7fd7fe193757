package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// AuthResult pairs an identity with a freshly issued token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignupInput carries the self-service registration fields. Roles cannot be
// chosen at signup; every new account starts with the default set.
type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the credential pair for password login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService implements signup, login, token refresh for an authenticated
// caller, and identity resolution for verified token payloads.
type AuthService struct {
	users         *UserService
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewAuthService(users *UserService, cfg *config.Config) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Signup registers a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	user, err := s.users.Create(ctx, CreateUserInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.issueFor(user)
}

// Login verifies the credential pair. A missing account and a wrong
// password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindOneByEmailWithPassword(ctx, input.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return s.issueFor(user)
}

// ValidateUser resolves a verified token payload's user id to a live
// identity. This is the single place that turns a blocked account into an
// immediate loss of access: every request passes through here, so no token
// revocation list is needed.
func (s *AuthService) ValidateUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindOneByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrUserInactive
	}
	return user, nil
}

// Revalidate issues a fresh token for an already-authenticated identity.
func (s *AuthService) Revalidate(ctx context.Context, user *models.User) (*AuthResult, error) {
	return s.issueFor(user)
}

// VerifyToken checks signature and expiry and returns the embedded user id.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	return auth.GetUserIDFromToken(tokenString, s.jwtSecret)
}

func (s *AuthService) issueFor(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
