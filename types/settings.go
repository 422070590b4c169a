package types

// Settings holds per-user preferences as an arbitrary name/value mapping.
// At most one settings record exists per user id; updates merge fields
// into the existing record rather than replacing it.
type Settings struct {
	// UserID references the owning User record. The reference is not
	// ownership: the user may be deleted independently.
	UserID string `json:"user_id"`

	// Values is the setting-name to value mapping.
	Values map[string]any `json:"values"`
}
