package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/George-coder-ai/MarkIt-Up1/types"
)

const memoryBackendName = "In-Memory DB"

// MemoryStore is the fallback backend used when no document database is
// configured. Records live for the process lifetime only.
//
// The mutex is held across each whole operation so the slices are safe
// under concurrent handlers. Note that it does not make the handler-level
// check-then-insert sequence atomic: two concurrent signups for the same
// email can still both pass the duplicate check before either inserts.
type MemoryStore struct {
	mu       sync.Mutex
	users    []types.User
	settings []types.Settings
	nextID   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lowered := strings.ToLower(email)
	for _, user := range s.users {
		if strings.ToLower(user.Email) == lowered {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ids are never reused, even after deletions.
	user.ID = strconv.Itoa(s.nextID)
	s.nextID++
	user.Email = strings.ToLower(user.Email)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) GetUserSettings(ctx context.Context, userID string) (types.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, settings := range s.settings {
		if settings.UserID == userID {
			return copySettings(settings), nil
		}
	}
	return types.Settings{}, ErrNotFound
}

func (s *MemoryStore) UpdateUserSettings(ctx context.Context, userID string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, settings := range s.settings {
		if settings.UserID == userID {
			for name, value := range fields {
				s.settings[i].Values[name] = value
			}
			return nil
		}
	}

	created := types.Settings{UserID: userID, Values: make(map[string]any, len(fields))}
	for name, value := range fields {
		created.Values[name] = value
	}
	s.settings = append(s.settings, created)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Name() string {
	return memoryBackendName
}

// Users returns a snapshot of all stored users for the debug endpoint.
func (s *MemoryStore) Users() []types.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]types.User, len(s.users))
	copy(snapshot, s.users)
	return snapshot
}

func copySettings(settings types.Settings) types.Settings {
	copied := types.Settings{UserID: settings.UserID, Values: make(map[string]any, len(settings.Values))}
	for name, value := range settings.Values {
		copied.Values[name] = value
	}
	return copied
}
