package store

import (
	"context"
	"errors"

	"github.com/George-coder-ai/MarkIt-Up1/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// UserStore handles persistence for users and their settings. Two
// implementations exist: MemoryStore (process-lifetime fallback) and
// MongoStore (external document database). The active implementation is
// chosen once at startup.
//
// Lookups signal absence with ErrNotFound; any other error is a
// backend-level failure and is propagated unchanged. Empty emails and
// user ids are ordinary non-matching values, not rejected here —
// request validation belongs to the calling handler.
type UserStore interface {
	// GetUserByEmail returns the user whose normalized (lowercase)
	// email matches.
	GetUserByEmail(ctx context.Context, email string) (types.User, error)

	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id string) (types.User, error)

	// CreateUser inserts the record and returns it with the assigned
	// id. Email uniqueness is not enforced here.
	CreateUser(ctx context.Context, user types.User) (types.User, error)

	// DeleteUser removes the record with the given id.
	DeleteUser(ctx context.Context, id string) error

	// GetUserSettings returns the settings record for the user id.
	GetUserSettings(ctx context.Context, userID string) (types.Settings, error)

	// UpdateUserSettings merges fields into the user's settings record,
	// creating it when absent. Existing fields not named are untouched.
	UpdateUserSettings(ctx context.Context, userID string, fields map[string]any) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend for diagnostics.
	Name() string
}
