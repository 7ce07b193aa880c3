package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/password"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/models"
)

func TestUserService_Create(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	studentRole := models.Role{ID: "role-1", Name: models.RoleStudent}

	var insertedUser models.User
	var mappedRoleID, mappedUserID, appendedHash string

	users := &mockUserRepository{
		checkUsernameAvailabilityFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
		createTxFn: func(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error) {
			insertedUser = user
			user.ID = "user-1"
			user.IsActive = true
			return user, nil
		},
	}
	roles := &mockRoleRepository{
		findByNameFn: func(ctx context.Context, name string) (models.Role, error) {
			assert.Equal(t, models.RoleStudent, name)
			return studentRole, nil
		},
		mapRoleToUserTxFn: func(ctx context.Context, tx *sql.Tx, roleID, userID string) error {
			mappedRoleID, mappedUserID = roleID, userID
			return nil
		},
	}
	history := &mockPasswordHistoryRepository{
		appendTxFn: func(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error {
			appendedHash = passwordHash
			return nil
		},
	}

	svc := NewUserService(db, users, roles, history, &mockUserTokenRepository{}, logger.Nop())

	created, err := svc.Create(testContext(), models.CreateUserRequest{
		Email:     "Jane@Example.com",
		Password:  "Passw0rd!",
		FirstName: "Jane",
		LastName:  "Doe",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "user-1", created.ID)
	assert.Equal(t, "jane@example.com", created.Email, "email is normalised to lower case")
	assert.Equal(t, "jane.doe", created.Username)
	assert.Equal(t, "Jane Doe", created.DisplayName)
	assert.Empty(t, created.PasswordHash, "created user is the public projection")
	require.Len(t, created.Roles, 1)
	assert.Equal(t, models.RoleStudent, created.Roles[0].Name)

	assert.Equal(t, models.ProviderCredentials, insertedUser.Provider)
	assert.True(t, password.Compare("Passw0rd!", insertedUser.PasswordHash))
	assert.Equal(t, insertedUser.PasswordHash, appendedHash, "initial hash enters the history")
	assert.Equal(t, "role-1", mappedRoleID)
	assert.Equal(t, "user-1", mappedUserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Create_ValidationFailures(t *testing.T) {
	db, _ := newTxDB(t)
	svc := NewUserService(db, &mockUserRepository{}, &mockRoleRepository{}, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	tests := []struct {
		name     string
		req      models.CreateUserRequest
		wantCode string
	}{
		{
			name:     "missing email",
			req:      models.CreateUserRequest{Password: "Passw0rd!", FirstName: "Jane"},
			wantCode: CodeValidationError,
		},
		{
			name:     "invalid email",
			req:      models.CreateUserRequest{Email: "not-an-email", Password: "Passw0rd!", FirstName: "Jane"},
			wantCode: CodeValidationError,
		},
		{
			name:     "missing first name",
			req:      models.CreateUserRequest{Email: "jane@example.com", Password: "Passw0rd!"},
			wantCode: CodeValidationError,
		},
		{
			name:     "weak password",
			req:      models.CreateUserRequest{Email: "jane@example.com", Password: "password", FirstName: "Jane"},
			wantCode: CodeWeakPassword,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(testContext(), tc.req, nil)
			requireServiceError(t, err, http.StatusBadRequest, tc.wantCode)
		})
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	db, _ := newTxDB(t)
	roles := &mockRoleRepository{
		findByNameFn: func(ctx context.Context, name string) (models.Role, error) {
			return models.Role{}, store.ErrRoleNotFound
		},
	}
	svc := NewUserService(db, &mockUserRepository{}, roles, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	_, err := svc.Create(testContext(), models.CreateUserRequest{
		Email:     "jane@example.com",
		Password:  "Passw0rd!",
		FirstName: "Jane",
		Role:      "Superuser",
	}, nil)
	requireServiceError(t, err, http.StatusBadRequest, CodeInvalidRole)
}

func TestUserService_Create_Conflicts(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		wantCode  string
	}{
		{name: "duplicate email", createErr: store.ErrEmailAlreadyExists, wantCode: CodeEmailAlreadyExists},
		{name: "duplicate username", createErr: store.ErrUsernameAlreadyExists, wantCode: CodeUsernameAlreadyExists},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTxDB(t)
			mock.ExpectBegin()
			mock.ExpectRollback()

			users := &mockUserRepository{
				checkUsernameAvailabilityFn: func(ctx context.Context, username string) (bool, error) {
					return true, nil
				},
				createTxFn: func(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error) {
					return models.User{}, tc.createErr
				},
			}
			roles := &mockRoleRepository{
				findByNameFn: func(ctx context.Context, name string) (models.Role, error) {
					return models.Role{ID: "role-1", Name: models.RoleStudent}, nil
				},
			}
			svc := NewUserService(db, users, roles, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

			_, err := svc.Create(testContext(), models.CreateUserRequest{
				Email:     "jane@example.com",
				Password:  "Passw0rd!",
				FirstName: "Jane",
			}, nil)
			requireServiceError(t, err, http.StatusConflict, tc.wantCode)
		})
	}
}

func TestUserService_Create_AttachesProfileImage(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	users := &mockUserRepository{
		checkUsernameAvailabilityFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
		createTxFn: func(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error) {
			assert.Equal(t, "https://cdn.example.com/avatar.png", user.ProfileImageURL)
			user.ID = "user-1"
			return user, nil
		},
	}
	roles := &mockRoleRepository{
		findByNameFn: func(ctx context.Context, name string) (models.Role, error) {
			return models.Role{ID: "role-1", Name: models.RoleStudent}, nil
		},
		mapRoleToUserTxFn: func(ctx context.Context, tx *sql.Tx, roleID, userID string) error { return nil },
	}
	history := &mockPasswordHistoryRepository{
		appendTxFn: func(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error { return nil },
	}
	svc := NewUserService(db, users, roles, history, &mockUserTokenRepository{}, logger.Nop())

	created, err := svc.Create(testContext(), models.CreateUserRequest{
		Email:     "jane@example.com",
		Password:  "Passw0rd!",
		FirstName: "Jane",
	}, &models.BlobUploadResult{Status: "success", URL: "https://cdn.example.com/avatar.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", created.ProfileImageURL)
}

func userWithPassword(t *testing.T, plaintext string) models.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	return models.User{ID: "user-1", Email: "jane@example.com", PasswordHash: hash, IsActive: true}
}

func TestUserService_UpdatePassword(t *testing.T) {
	user := userWithPassword(t, "OldPass1!")

	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var updatedHash, appendedHash string

	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string, includePassword bool) (models.User, error) {
			assert.True(t, includePassword, "password change must request the hash")
			return user, nil
		},
		updatePasswordTxFn: func(ctx context.Context, tx *sql.Tx, id, passwordHash string) error {
			assert.Equal(t, "user-1", id)
			updatedHash = passwordHash
			return nil
		},
	}
	history := &mockPasswordHistoryRepository{
		recentHashesFn: func(ctx context.Context, userID string, limit int) ([]string, error) {
			assert.Equal(t, 5, limit)
			return []string{user.PasswordHash}, nil
		},
		appendTxFn: func(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error {
			appendedHash = passwordHash
			return nil
		},
	}
	svc := NewUserService(db, users, &mockRoleRepository{}, history, &mockUserTokenRepository{}, logger.Nop())

	err := svc.UpdatePassword(testContext(), "user-1", models.UpdatePasswordRequest{
		CurrentPassword: "OldPass1!",
		NewPassword:     "NewPass1!",
	})
	require.NoError(t, err)

	assert.True(t, password.Compare("NewPass1!", updatedHash))
	assert.Equal(t, updatedHash, appendedHash, "the new hash enters the history in the same transaction")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdatePassword_OrderedChecks(t *testing.T) {
	user := userWithPassword(t, "OldPass1!")
	reusedHash, err := password.Hash("Reused1!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		req      models.UpdatePasswordRequest
		history  []string
		wantCode string
	}{
		{
			name:     "incorrect current password",
			req:      models.UpdatePasswordRequest{CurrentPassword: "WrongOld1!", NewPassword: "NewPass1!"},
			wantCode: CodeIncorrectCurrentPassword,
		},
		{
			// also weak; the current-password check must win
			name:     "incorrect current password reported before weakness",
			req:      models.UpdatePasswordRequest{CurrentPassword: "WrongOld1!", NewPassword: "weak"},
			wantCode: CodeIncorrectCurrentPassword,
		},
		{
			name:     "new password equals current",
			req:      models.UpdatePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "OldPass1!"},
			wantCode: CodePasswordSameAsOld,
		},
		{
			name:     "weak new password",
			req:      models.UpdatePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "weakpass"},
			wantCode: CodeWeakPassword,
		},
		{
			name:     "new password found in history",
			req:      models.UpdatePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "Reused1!"},
			history:  []string{user.PasswordHash, reusedHash},
			wantCode: CodePasswordUsedInLast5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, _ := newTxDB(t)
			users := &mockUserRepository{
				findByIDFn: func(ctx context.Context, id string, includePassword bool) (models.User, error) {
					return user, nil
				},
			}
			history := &mockPasswordHistoryRepository{
				recentHashesFn: func(ctx context.Context, userID string, limit int) ([]string, error) {
					return tc.history, nil
				},
			}
			svc := NewUserService(db, users, &mockRoleRepository{}, history, &mockUserTokenRepository{}, logger.Nop())

			err := svc.UpdatePassword(testContext(), "user-1", tc.req)
			requireServiceError(t, err, http.StatusBadRequest, tc.wantCode)
		})
	}
}

func TestUserService_UpdatePassword_UserNotFound(t *testing.T) {
	db, _ := newTxDB(t)
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string, includePassword bool) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := NewUserService(db, users, &mockRoleRepository{}, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	err := svc.UpdatePassword(testContext(), "ghost", models.UpdatePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "NewPass1!"})
	requireServiceError(t, err, http.StatusNotFound, CodeUserNotFound)
}

func TestUserService_FindByEmail_NotFound(t *testing.T) {
	db, _ := newTxDB(t)
	users := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string, includePassword bool) (models.User, error) {
			assert.Equal(t, "ghost@example.com", email)
			return models.User{}, store.ErrUserNotFound
		},
	}
	svc := NewUserService(db, users, &mockRoleRepository{}, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	_, err := svc.FindByEmail(testContext(), " Ghost@Example.com ")
	requireServiceError(t, err, http.StatusNotFound, CodeUserNotFound)
}

func TestUserService_FindRolesByUserID(t *testing.T) {
	db, _ := newTxDB(t)
	roles := &mockRoleRepository{
		findRolesByUserIDFn: func(ctx context.Context, userID string) ([]models.Role, error) {
			assert.Equal(t, "user-1", userID)
			return []models.Role{{ID: "role-1", Name: models.RoleTeacher}}, nil
		},
	}
	svc := NewUserService(db, &mockUserRepository{}, roles, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	got, err := svc.FindRolesByUserID(testContext(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.RoleTeacher, got[0].Name)
}

func TestUserService_FindRolesByUserID_StoreError(t *testing.T) {
	db, _ := newTxDB(t)
	roles := &mockRoleRepository{
		findRolesByUserIDFn: func(ctx context.Context, userID string) ([]models.Role, error) {
			return nil, assert.AnError
		},
	}
	svc := NewUserService(db, &mockUserRepository{}, roles, &mockPasswordHistoryRepository{}, &mockUserTokenRepository{}, logger.Nop())

	_, err := svc.FindRolesByUserID(testContext(), "user-1")
	requireServiceError(t, err, http.StatusInternalServerError, CodeInternalServerError)
}

func TestUserService_UserTokenLifecycle(t *testing.T) {
	db, _ := newTxDB(t)

	var issued models.UserToken
	tokens := &mockUserTokenRepository{
		createFn: func(ctx context.Context, userToken models.UserToken) (models.UserToken, error) {
			userToken.ID = "token-row-1"
			issued = userToken
			return userToken, nil
		},
		getValidFn: func(ctx context.Context, userID, tok string, tokenType models.UserTokenType) (models.UserToken, error) {
			if tok != issued.Token || issued.IsUsed {
				return models.UserToken{}, store.ErrUserTokenNotFound
			}
			return issued, nil
		},
		markUsedFn: func(ctx context.Context, userID, tok string, usedAt time.Time) (models.UserToken, error) {
			issued.IsUsed = true
			issued.UsedAt = &usedAt
			return issued, nil
		},
	}
	svc := NewUserService(db, &mockUserRepository{}, &mockRoleRepository{}, &mockPasswordHistoryRepository{}, tokens, logger.Nop())

	created, err := svc.IssueUserToken(testContext(), "user-1", models.UserTokenEmailVerification)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token, "token value is generated server-side")
	assert.Equal(t, models.UserTokenEmailVerification, created.Type)

	used, err := svc.ConsumeUserToken(testContext(), "user-1", created.Token, models.UserTokenEmailVerification)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)

	// a consumed token is never accepted again
	_, err = svc.ConsumeUserToken(testContext(), "user-1", created.Token, models.UserTokenEmailVerification)
	requireServiceError(t, err, http.StatusBadRequest, CodeTokenInvalidOrExpired)
}
