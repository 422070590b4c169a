package identity

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is returned for every token verification failure
	// (expired, malformed, wrong issuer). Callers must treat it
	// uniformly as "unauthenticated" without distinguishing sub-reasons.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUnavailable is returned by every operation while the provider
	// has no credentials configured.
	ErrUnavailable = errors.New("identity provider not configured")
)

// ProviderError wraps a provider-side rejection (duplicate email, weak
// password, transport failure) so the caller can surface the provider's
// message instead of retrying silently.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Claims carries the identity facts extracted from a verified token.
type Claims struct {
	UID   string
	Email string
}

// Identity describes a credential record held by the provider.
type Identity struct {
	ProviderID string
	Email      string
}

// Gateway bridges to an external identity provider for the credential
// lifecycle this system does not implement itself: password verification
// by a third party, bearer token issuance and validation. Implementations
// return identity facts only and make no user or session decisions.
type Gateway interface {
	// CreateIdentity registers a new credential set with the provider
	// and returns the provider-assigned id. Provider rejections come
	// back as a *ProviderError.
	CreateIdentity(ctx context.Context, email, password string) (string, error)

	// VerifyToken validates a bearer token's signature, issuer, and
	// expiry. Any failure is ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (Claims, error)

	// LookupByEmail returns the provider identity for the email, or
	// (nil, nil) when the provider reports no such identity.
	LookupByEmail(ctx context.Context, email string) (*Identity, error)

	// DeleteIdentity removes the remote identity. Failure is an error,
	// not swallowed.
	DeleteIdentity(ctx context.Context, providerID string) error
}
