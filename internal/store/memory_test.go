package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/George-coder-ai/MarkIt-Up1/types"
)

func TestMemoryStoreEmailLookupIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.CreateUser(ctx, types.User{Name: "Ann", Email: "Ann@X.com"})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", created.Email)

	for _, email := range []string{"ann@x.com", "ANN@X.COM", "Ann@x.Com"} {
		found, err := s.GetUserByEmail(ctx, email)
		require.NoError(t, err, "lookup %q", email)
		assert.Equal(t, created.ID, found.ID)
	}
}

func TestMemoryStoreCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.CreateUser(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, types.User{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)

	found, err := s.GetUserByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, found)
}

func TestMemoryStoreIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.CreateUser(ctx, types.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, types.User{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, first.ID))

	third, err := s.CreateUser(ctx, types.User{Name: "Cam", Email: "cam@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "3", third.ID)

	_, err = s.GetUserByID(ctx, first.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreGetUserMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetUserByEmail(ctx, "nobody@x.com")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GetUserByID(ctx, "42")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Empty values are ordinary non-matching keys, not errors.
	_, err = s.GetUserByEmail(ctx, "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreSettingsMergeNotReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetUserSettings(ctx, "1")
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.UpdateUserSettings(ctx, "1", map[string]any{"a": 1}))
	require.NoError(t, s.UpdateUserSettings(ctx, "1", map[string]any{"b": 2}))
	require.NoError(t, s.UpdateUserSettings(ctx, "1", map[string]any{"a": 3}))

	settings, err := s.GetUserSettings(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", settings.UserID)
	assert.Equal(t, 3, settings.Values["a"])
	assert.Equal(t, 2, settings.Values["b"])
}

func TestMemoryStoreSettingsIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpdateUserSettings(ctx, "1", map[string]any{"theme": "dark"}))
	require.NoError(t, s.UpdateUserSettings(ctx, "2", map[string]any{"theme": "light"}))

	first, err := s.GetUserSettings(ctx, "1")
	require.NoError(t, err)
	second, err := s.GetUserSettings(ctx, "2")
	require.NoError(t, err)

	assert.Equal(t, "dark", first.Values["theme"])
	assert.Equal(t, "light", second.Values["theme"])
}

func TestMemoryStoreSettingsSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpdateUserSettings(ctx, "1", map[string]any{"a": 1}))

	settings, err := s.GetUserSettings(ctx, "1")
	require.NoError(t, err)
	settings.Values["a"] = "mutated"

	again, err := s.GetUserSettings(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Values["a"])
}

func TestMemoryStorePingAndName(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, "In-Memory DB", s.Name())
}
