package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/store"
)

const usernameSuffixAttempts = 5

// generateUsername derives a unique handle for a new account. The base is
// "first.last" reduced to lowercase letters, digits and dots; when both names
// sanitize to nothing the email's local part is used instead, and "user" as
// the last resort. On collision it retries with a random 4-digit suffix, then
// falls back to a millisecond timestamp suffix, which cannot collide with a
// previous fallback. Availability-check failures are not fatal: the loop
// stops and the timestamp fallback is used, so registration never fails on a
// username lookup.
func generateUsername(ctx context.Context, users store.UserRepository, firstName, lastName, email string) string {
	log := logger.FromContext(ctx)

	base := sanitizeUsernamePart(firstName)
	if last := sanitizeUsernamePart(lastName); last != "" {
		if base != "" {
			base += "."
		}
		base += last
	}
	if base == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			base = sanitizeUsernamePart(email[:at])
		}
	}
	if base == "" {
		base = "user"
	}

	candidate := base
	for attempt := 0; attempt <= usernameSuffixAttempts; attempt++ {
		if attempt > 0 {
			candidate = base + randomDigits(4)
		}
		available, err := users.CheckUsernameAvailability(ctx, candidate)
		if err != nil {
			log.Err(err).Str("func", "generateUsername").Msg("username availability check failed")
			break
		}
		if available {
			return candidate
		}
	}

	return fmt.Sprintf("%s%d", base, time.Now().UnixMilli())
}

// sanitizeUsernamePart lowercases the input and strips everything outside
// letters and digits.
func sanitizeUsernamePart(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func randomDigits(n int) string {
	var sb strings.Builder
	for range n {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing means the platform RNG is broken;
			// a fixed digit keeps the candidate well-formed.
			sb.WriteByte('0')
			continue
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}
