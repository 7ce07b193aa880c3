package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_buildUserSelectQuery_SQLContainsParts(t *testing.T) {
	query, args, err := userByIDQuery("user-1", false)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 1)
	require.Equal(t, "user-1", args[0])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from users")
	require.Contains(t, q, "where")
	require.Contains(t, q, "limit 1")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
}

func Test_buildUserSelectQuery_SelectsAllExpectedColumns(t *testing.T) {
	query, _, err := userByEmailQuery("jane@example.com", false)
	require.NoError(t, err)

	q := strings.ToLower(query)

	// "contains" check; it does not enforce order but catches regressions quickly
	for _, c := range userBaseColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildUserSelectQuery_PasswordGate(t *testing.T) {
	withoutPassword, _, err := userByIDQuery("user-1", false)
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(withoutPassword), "password_hash")

	withPassword, _, err := userByIDQuery("user-1", true)
	require.NoError(t, err)
	q := strings.ToLower(withPassword)
	// password_hash must be the final column so the scan order stays stable
	require.Contains(t, q, "password_hash from users")
}

func Test_buildUserSelectQuery_DoesNotMutateBaseColumns(t *testing.T) {
	before := len(userBaseColumns)

	_, _, err := userByIDQuery("user-1", true)
	require.NoError(t, err)

	require.Len(t, userBaseColumns, before)
	require.NotEqual(t, "password_hash", userBaseColumns[len(userBaseColumns)-1])
}

func Test_userByEmailOrUsernameQuery(t *testing.T) {
	query, args, err := userByEmailOrUsernameQuery("jane.doe", false)
	require.NoError(t, err)

	// the same value is matched against both identity columns
	require.Len(t, args, 2)
	require.Equal(t, "jane.doe", args[0])
	require.Equal(t, "jane.doe", args[1])

	q := strings.ToLower(query)
	require.Contains(t, q, "email = $1")
	require.Contains(t, q, "username = $2")
	require.Contains(t, q, " or ")
}
