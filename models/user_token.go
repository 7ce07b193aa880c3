package models

import "time"

// UserTokenType enumerates single-use token purposes.
type UserTokenType string

const (
	UserTokenEmailVerification UserTokenType = "email_verification"
	UserTokenPasswordReset     UserTokenType = "password_reset"
)

// UserToken is a single-use, expiring token for flows such as email
// verification and password reset. Once IsUsed is set the token is never
// accepted again.
type UserToken struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Token     string        `json:"-"`
	Type      UserTokenType `json:"type"`
	IsUsed    bool          `json:"isUsed"`
	UsedAt    *time.Time    `json:"usedAt,omitempty"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// TableName returns the name of the database table
// associated with the UserToken model.
func (t UserToken) TableName() string {
	return "user_tokens"
}
