package models

import "time"

// Session binds one issued bearer token to a user on the server side.
// Deleting the row is the only revocation mechanism: the token itself stays
// cryptographically valid until its exp claim elapses.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Token     string     `json:"-"`
	IPAddress string     `json:"ipAddress,omitempty"`
	UserAgent string     `json:"userAgent,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	// LastUsedAt is informational only; sessions have no sliding expiry.
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "user_sessions"
}

// Live reports whether the session is usable at the given instant.
func (s Session) Live(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}
