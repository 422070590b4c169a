package identity

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Firebase implements Gateway over the Firebase Admin SDK.
type Firebase struct {
	client *auth.Client
}

// NewFirebase initializes the provider from the credential bundle at
// keyPath. A missing bundle is a non-fatal warning: the gateway comes
// back disabled and every operation returns ErrUnavailable until the
// process is restarted with credentials in place.
func NewFirebase(ctx context.Context, keyPath string) (*Firebase, error) {
	if _, err := os.Stat(keyPath); err != nil {
		log.Printf("warning: firebase credentials not found at %s, identity provider disabled", keyPath)
		return &Firebase{}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(keyPath))
	if err != nil {
		return nil, &ProviderError{Op: "init", Err: err}
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, &ProviderError{Op: "init", Err: err}
	}

	log.Printf("firebase initialized from %s", keyPath)
	return &Firebase{client: client}, nil
}

func (f *Firebase) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	if f.client == nil {
		return "", ErrUnavailable
	}

	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", &ProviderError{Op: "create user", Err: err}
	}
	return record.UID, nil
}

func (f *Firebase) VerifyToken(ctx context.Context, token string) (Claims, error) {
	if f.client == nil {
		return Claims{}, ErrUnavailable
	}

	decoded, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}

func (f *Firebase) LookupByEmail(ctx context.Context, email string) (*Identity, error) {
	if f.client == nil {
		return nil, ErrUnavailable
	}

	record, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, nil
		}
		return nil, &ProviderError{Op: "get user", Err: err}
	}
	return &Identity{ProviderID: record.UID, Email: record.Email}, nil
}

func (f *Firebase) DeleteIdentity(ctx context.Context, providerID string) error {
	if f.client == nil {
		return ErrUnavailable
	}

	if err := f.client.DeleteUser(ctx, providerID); err != nil {
		return &ProviderError{Op: "delete user", Err: err}
	}
	return nil
}
