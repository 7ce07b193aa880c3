package service

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/models"
)

// Function-field mocks of the store ports. Each method field can be
// overridden per test case; unset fields panic, which keeps tests honest
// about what they exercise.

type mockUserRepository struct {
	findByIDFn                  func(ctx context.Context, id string, includePassword bool) (models.User, error)
	findByEmailFn               func(ctx context.Context, email string, includePassword bool) (models.User, error)
	findByEmailOrUsernameFn     func(ctx context.Context, emailOrUsername string, includePassword bool) (models.User, error)
	checkUsernameAvailabilityFn func(ctx context.Context, username string) (bool, error)
	createTxFn                  func(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error)
	updatePasswordTxFn          func(ctx context.Context, tx *sql.Tx, id, passwordHash string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string, includePassword bool) (models.User, error) {
	return m.findByIDFn(ctx, id, includePassword)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string, includePassword bool) (models.User, error) {
	return m.findByEmailFn(ctx, email, includePassword)
}

func (m *mockUserRepository) FindByEmailOrUsername(ctx context.Context, emailOrUsername string, includePassword bool) (models.User, error) {
	return m.findByEmailOrUsernameFn(ctx, emailOrUsername, includePassword)
}

func (m *mockUserRepository) CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	return m.checkUsernameAvailabilityFn(ctx, username)
}

func (m *mockUserRepository) CreateTx(ctx context.Context, tx *sql.Tx, user models.User) (models.User, error) {
	return m.createTxFn(ctx, tx, user)
}

func (m *mockUserRepository) UpdatePasswordTx(ctx context.Context, tx *sql.Tx, id, passwordHash string) error {
	return m.updatePasswordTxFn(ctx, tx, id, passwordHash)
}

type mockRoleRepository struct {
	findByNameFn        func(ctx context.Context, name string) (models.Role, error)
	findRolesByUserIDFn func(ctx context.Context, userID string) ([]models.Role, error)
	mapRoleToUserTxFn   func(ctx context.Context, tx *sql.Tx, roleID, userID string) error
}

func (m *mockRoleRepository) FindByName(ctx context.Context, name string) (models.Role, error) {
	return m.findByNameFn(ctx, name)
}

func (m *mockRoleRepository) FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error) {
	return m.findRolesByUserIDFn(ctx, userID)
}

func (m *mockRoleRepository) MapRoleToUserTx(ctx context.Context, tx *sql.Tx, roleID, userID string) error {
	return m.mapRoleToUserTxFn(ctx, tx, roleID, userID)
}

type mockSessionRepository struct {
	getLiveSessionFn func(ctx context.Context, userID, token string) (models.Session, error)
	createFn         func(ctx context.Context, userID, token, ip, userAgent string, expiresAt time.Time) (models.Session, error)
	deleteFn         func(ctx context.Context, userID, token string) error
}

func (m *mockSessionRepository) GetLiveSession(ctx context.Context, userID, token string) (models.Session, error) {
	return m.getLiveSessionFn(ctx, userID, token)
}

func (m *mockSessionRepository) Create(ctx context.Context, userID, token, ip, userAgent string, expiresAt time.Time) (models.Session, error) {
	return m.createFn(ctx, userID, token, ip, userAgent, expiresAt)
}

func (m *mockSessionRepository) Delete(ctx context.Context, userID, token string) error {
	return m.deleteFn(ctx, userID, token)
}

type mockPasswordHistoryRepository struct {
	recentHashesFn func(ctx context.Context, userID string, limit int) ([]string, error)
	appendTxFn     func(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error
}

func (m *mockPasswordHistoryRepository) RecentHashes(ctx context.Context, userID string, limit int) ([]string, error) {
	return m.recentHashesFn(ctx, userID, limit)
}

func (m *mockPasswordHistoryRepository) AppendTx(ctx context.Context, tx *sql.Tx, userID, passwordHash string) error {
	return m.appendTxFn(ctx, tx, userID, passwordHash)
}

type mockUserTokenRepository struct {
	getValidFn func(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error)
	createFn   func(ctx context.Context, userToken models.UserToken) (models.UserToken, error)
	markUsedFn func(ctx context.Context, userID, token string, usedAt time.Time) (models.UserToken, error)
}

func (m *mockUserTokenRepository) GetValid(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error) {
	return m.getValidFn(ctx, userID, token, tokenType)
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken models.UserToken) (models.UserToken, error) {
	return m.createFn(ctx, userToken)
}

func (m *mockUserTokenRepository) MarkUsed(ctx context.Context, userID, token string, usedAt time.Time) (models.UserToken, error) {
	return m.markUsedFn(ctx, userID, token, usedAt)
}

type mockCountryRepository struct {
	findAllFn       func(ctx context.Context) ([]models.Country, error)
	findByCodeFn    func(ctx context.Context, code string) (models.Country, error)
	findByCodeISO3Fn func(ctx context.Context, codeISO3 string) (models.Country, error)
}

func (m *mockCountryRepository) FindAll(ctx context.Context) ([]models.Country, error) {
	return m.findAllFn(ctx)
}

func (m *mockCountryRepository) FindByCode(ctx context.Context, code string) (models.Country, error) {
	return m.findByCodeFn(ctx, code)
}

func (m *mockCountryRepository) FindByCodeISO3(ctx context.Context, codeISO3 string) (models.Country, error) {
	return m.findByCodeISO3Fn(ctx, codeISO3)
}

type mockBlobStore struct {
	uploadFn func(ctx context.Context, file io.Reader, originalName, contentType string, size int64) models.BlobUploadResult
	deleteFn func(ctx context.Context, fileName string) error
}

func (m *mockBlobStore) Upload(ctx context.Context, file io.Reader, originalName, contentType string, size int64) models.BlobUploadResult {
	return m.uploadFn(ctx, file, originalName, contentType, size)
}

func (m *mockBlobStore) Delete(ctx context.Context, fileName string) error {
	return m.deleteFn(ctx, fileName)
}

// newTxDB wraps a sqlmock connection in a store.DB so transactional service
// paths can run against expectations.
func newTxDB(t *testing.T) (*store.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &store.DB{DB: db}, mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}
