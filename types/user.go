package types

import "time"

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user. It is assigned by the
	// active store: a counter value in the in-memory backend, a
	// provider-generated object id in the document database.
	ID string `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`

	// Email is the user's email address, always stored lowercase.
	// At most one record exists per normalized email.
	Email string `json:"email"`

	// PasswordRef holds either a locally computed bcrypt hash or a
	// provider-prefixed marker for an externally verified identity
	// (e.g. "firebase:<uid>"), depending on the signup path.
	// This field is never exposed in API responses.
	PasswordRef string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}
