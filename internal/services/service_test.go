package services

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func registerTestUser(t *testing.T, s *storage.Store, username string) int64 {
	t.Helper()
	id, err := NewUserService(s).Register(context.Background(), username, "pw")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return id
}
