package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userBaseColumns is the outward-facing projection of the users table, in
// scan order. The password hash is deliberately absent; see
// buildUserSelectQuery.
var userBaseColumns = []string{
	"id",
	"email",
	"username",
	"first_name",
	"last_name",
	"display_name",
	"phone_number",
	"profile_image_url",
	"provider",
	"provider_id",
	"is_email_verified",
	"is_phone_verified",
	"is_active",
	"timezone",
	"locale",
	"bio",
	"dob",
	"gender",
	"tagline",
	"website",
	"country_code_iso3",
	"created_at",
	"updated_at",
}

// buildUserSelectQuery builds the single-user SELECT with the given filter.
// includePassword widens the projection with the password_hash column —
// the privacy gate used only by the login and password-change paths.
func buildUserSelectQuery(where sq.Sqlizer, includePassword bool) (string, []any, error) {
	columns := userBaseColumns
	if includePassword {
		columns = append([]string{}, userBaseColumns...)
		columns = append(columns, "password_hash")
	}

	return psql.Select(columns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
}

func userByIDQuery(id string, includePassword bool) (string, []any, error) {
	return buildUserSelectQuery(sq.Eq{"id": id}, includePassword)
}

func userByEmailQuery(email string, includePassword bool) (string, []any, error) {
	return buildUserSelectQuery(sq.Eq{"email": email}, includePassword)
}

func userByEmailOrUsernameQuery(emailOrUsername string, includePassword bool) (string, []any, error) {
	return buildUserSelectQuery(sq.Or{
		sq.Eq{"email": emailOrUsername},
		sq.Eq{"username": emailOrUsername},
	}, includePassword)
}

const (
	createUser = `INSERT INTO users (
			id, email, username, password_hash, first_name, last_name, display_name,
			phone_number, profile_image_url, provider, provider_id,
			timezone, locale, bio, dob, gender, tagline, website, country_code_iso3
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at;`

	updateUserPassword = `UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1;`

	countUsersByUsername = `SELECT count(*) FROM users WHERE username = $1;`

	findRoleByName = `SELECT id, name, description, created_at
		FROM roles
		WHERE name = $1;`

	findRolesByUserID = `SELECT r.id, r.name, r.description, r.created_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name;`

	mapRoleToUser = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2);`

	getLiveSession = `SELECT id, user_id, token, ip_address, user_agent, expires_at, is_active, created_at, last_used_at
		FROM user_sessions
		WHERE user_id = $1 AND token = $2 AND is_active = TRUE AND expires_at > NOW();`

	createSession = `INSERT INTO user_sessions (id, user_id, token, ip_address, user_agent, expires_at, is_active, created_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING id, user_id, token, ip_address, user_agent, expires_at, is_active, created_at, last_used_at;`

	deleteSession = `DELETE FROM user_sessions
		WHERE user_id = $1 AND token = $2;`

	recentPasswordHashes = `SELECT password_hash
		FROM user_password_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;`

	appendPasswordHistory = `INSERT INTO user_password_history (id, user_id, password_hash)
		VALUES ($1, $2, $3);`

	getValidUserToken = `SELECT id, user_id, token, type, is_used, used_at, ip_address, user_agent, created_at, expires_at
		FROM user_tokens
		WHERE user_id = $1 AND token = $2 AND type = $3 AND is_used = FALSE AND expires_at > NOW();`

	createUserToken = `INSERT INTO user_tokens (id, user_id, token, type, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, token, type, is_used, used_at, ip_address, user_agent, created_at, expires_at;`

	markUserTokenUsed = `UPDATE user_tokens
		SET is_used = TRUE, used_at = $3
		WHERE user_id = $1 AND token = $2 AND is_used = FALSE
		RETURNING id, user_id, token, type, is_used, used_at, ip_address, user_agent, created_at, expires_at;`

	findAllCountries = `SELECT name, code, code_iso3, created_at, updated_at
		FROM countries
		ORDER BY name;`

	findCountryByCode = `SELECT name, code, code_iso3, created_at, updated_at
		FROM countries
		WHERE code = $1;`

	findCountryByCodeISO3 = `SELECT name, code, code_iso3, created_at, updated_at
		FROM countries
		WHERE code_iso3 = $1;`
)
