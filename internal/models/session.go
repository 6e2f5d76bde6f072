package models

import "time"

// Session is one authenticated login, keyed by its opaque bearer token.
// Role is copied from the user at issuance and never changes afterwards;
// a role change on the account requires a fresh login to take effect.
type Session struct {
	Token     string    `db:"token" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
