package entity

import "time"

// OAuthState is a one-time CSRF token for the Google sign-in flow.
type OAuthState struct {
	State     string    `db:"state" json:"state"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
