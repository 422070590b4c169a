package services

import (
	"context"
	"strings"

	"github.com/George-coder-ai/MarkIt-Up1/internal/store"
	"github.com/George-coder-ai/MarkIt-Up1/types"
)

// NormalizeEmail lowercases and trims an email so lookups and storage
// always agree on the same key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserService encapsulates user and settings use-cases over the active
// store.
type UserService struct {
	store store.UserStore
}

func NewUserService(s store.UserStore) *UserService {
	return &UserService{store: s}
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.store.GetUserByEmail(ctx, NormalizeEmail(email))
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	user.Email = NormalizeEmail(user.Email)
	return s.store.CreateUser(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, id)
}

func (s *UserService) Settings(ctx context.Context, userID string) (types.Settings, error) {
	return s.store.GetUserSettings(ctx, userID)
}

func (s *UserService) UpdateSettings(ctx context.Context, userID string, fields map[string]any) error {
	return s.store.UpdateUserSettings(ctx, userID, fields)
}
