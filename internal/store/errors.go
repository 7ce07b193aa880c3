package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when an INSERT collides with the
	// unique email constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when an INSERT collides with the
	// unique username constraint.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrRoleNotFound is returned when no role with the requested name or id
	// exists.
	ErrRoleNotFound = errors.New("role was not found")

	// ErrSessionNotFound is returned by session deletion when no row matched
	// the (user id, token) pair. The service layer decides whether that is a
	// failure (it is not: logout is idempotent).
	ErrSessionNotFound = errors.New("session was not found")

	// ErrUserTokenNotFound is returned when a single-use token lookup or
	// update matches no row.
	ErrUserTokenNotFound = errors.New("user token was not found")

	// ErrCountryNotFound is returned when a country lookup matches no row.
	ErrCountryNotFound = errors.New("country was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
