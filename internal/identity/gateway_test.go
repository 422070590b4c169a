package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFirebaseMissingCredentialsIsNonFatal(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "firebase-key.json")

	gateway, err := NewFirebase(context.Background(), keyPath)
	require.NoError(t, err)
	require.NotNil(t, gateway)
}

func TestDisabledGatewayOperationsFail(t *testing.T) {
	ctx := context.Background()
	gateway, err := NewFirebase(ctx, filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	_, err = gateway.CreateIdentity(ctx, "ann@x.com", "pw123456")
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = gateway.VerifyToken(ctx, "some-token")
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = gateway.LookupByEmail(ctx, "ann@x.com")
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = gateway.DeleteIdentity(ctx, "uid-1")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("EMAIL_EXISTS")
	err := &ProviderError{Op: "create user", Err: cause}

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "create user")
	assert.Contains(t, err.Error(), "EMAIL_EXISTS")

	var providerErr *ProviderError
	assert.True(t, errors.As(err, &providerErr))
}
