package models

import "github.com/golang-jwt/jwt/v5"

// RoleClaim is the role summary embedded in an issued token.
type RoleClaim struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Claims is the payload of an issued bearer token: the standard registered
// claim set (iss, aud, sub, iat, exp, jti) plus the identity attributes the
// API embeds so that protected handlers do not need a user lookup to know who
// is calling.
//
// UserID duplicates the "sub" claim under the "id" key, matching the wire
// shape consumed by existing clients.
type Claims struct {
	jwt.RegisteredClaims

	UserID          string      `json:"id"`
	Email           string      `json:"email,omitempty"`
	Username        string      `json:"username,omitempty"`
	FirstName       string      `json:"firstName,omitempty"`
	LastName        string      `json:"lastName,omitempty"`
	DisplayName     string      `json:"displayName,omitempty"`
	ProfileImageURL string      `json:"profileImageUrl,omitempty"`
	PhoneNumber     string      `json:"phoneNumber,omitempty"`
	Roles           []RoleClaim `json:"roles,omitempty"`
}
