// Package services holds the domain operations the presentation layer calls
// into. Validation happens here, before anything reaches the store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// UserService handles registration and login.
//
// SECURITY: credentials are stored and compared as plain text to stay
// behavior-compatible with existing databases. Any non-prototype deployment
// must replace this with salted hashing.
type UserService struct {
	store *storage.Store
}

func NewUserService(store *storage.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a new account and returns its id. Duplicate usernames
// fail with core.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (int64, error) {
	if strings.TrimSpace(username) == "" {
		return 0, core.ErrEmptyUsername
	}

	id, err := s.store.CreateUser(ctx, username, password)
	if err != nil {
		return 0, fmt.Errorf("register %q: %w", username, err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", id, "username", username)
	return id, nil
}

// Authenticate returns the user id on an exact credential match. A failed
// match is (0, false, nil); only storage trouble is an error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (int64, bool, error) {
	id, ok, err := s.store.GetUserByCredentials(ctx, username, password)
	if err != nil {
		return 0, false, fmt.Errorf("authenticate %q: %w", username, err)
	}
	return id, ok, nil
}
