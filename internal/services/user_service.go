package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"finboard/internal/auth"
	"finboard/internal/core"
	"finboard/internal/storage"
)

// UserService covers registration and login. Registration seeds the default
// category set so a fresh account is usable immediately.
type UserService struct {
	store      *storage.Store
	authMgr    *auth.Manager
	categories *CategoryService
	now        func() time.Time
}

func NewUserService(store *storage.Store, authMgr *auth.Manager, categories *CategoryService) *UserService {
	return &UserService{store: store, authMgr: authMgr, categories: categories, now: time.Now}
}

// AuthResult is the register/login response payload.
type AuthResult struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

func (s *UserService) Register(ctx context.Context, email, name, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, core.BadRequestf("a valid email is required")
	}
	if len(password) < 8 {
		return nil, core.BadRequestf("password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, core.BadRequestf("name is required")
	}

	hash, err := s.authMgr.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := core.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.categories.SeedDefaults(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same answer for unknown email and wrong password.
		return nil, core.BadRequestf("invalid credentials")
	}
	if err := s.authMgr.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, core.BadRequestf("invalid credentials")
	}
	return s.issueToken(*user)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*core.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) issueToken(user core.User) (*AuthResult, error) {
	token, err := s.authMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
