// Package token issues and verifies the signed bearer tokens backing API
// sessions. Tokens are HMAC-SHA256 JWTs carrying the identity claim set of
// [models.Claims]; expiry, issuer, audience, and algorithm are fixed at
// construction time, never per call.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/asifrahman/go-identity-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any failure: bad signature,
// expiry, wrong issuer or audience, malformed input. Callers must not be
// able to distinguish why a token was rejected.
var ErrInvalidToken = errors.New("token is invalid or expired")

// Issuer signs and verifies bearer tokens. Safe for concurrent use; all
// state is read-only after construction.
type Issuer struct {
	signKey  []byte
	issuer   string
	audience string
	duration time.Duration
}

// NewIssuer constructs an Issuer. All parameters are required.
func NewIssuer(signKey, issuer, audience string, duration time.Duration) (*Issuer, error) {
	if signKey == "" || issuer == "" || audience == "" || duration == 0 {
		return nil, errors.New("invalid params for token issuer")
	}

	return &Issuer{
		signKey:  []byte(signKey),
		issuer:   issuer,
		audience: audience,
		duration: duration,
	}, nil
}

// Issue produces a signed token for the given user. The claim set embeds the
// user's public identity attributes and role summaries; "sub" carries the
// user id. A random "jti" distinguishes tokens issued within the same second.
func (i *Issuer) Issue(user models.User) (string, error) {
	now := time.Now()

	roles := make([]models.RoleClaim, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, models.RoleClaim{ID: r.ID, Name: r.Name, Description: r.Description})
	}

	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			ID:        uuid.NewString(),
		},
		UserID:          user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		DisplayName:     user.DisplayName,
		ProfileImageURL: user.ProfileImageURL,
		PhoneNumber:     user.PhoneNumber,
		Roles:           roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// Verify validates a raw token string: signature, algorithm, expiry, issuer,
// audience. On success it returns the embedded claim set; every failure is
// normalised to [ErrInvalidToken].
func (i *Issuer) Verify(raw string) (*models.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &models.Claims{}, func(t *jwt.Token) (any, error) {
		return i.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*models.Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
