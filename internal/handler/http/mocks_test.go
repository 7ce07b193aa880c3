package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/service"
	"github.com/asifrahman/go-identity-api/models"
)

const testClientID = "client-123"

// Function-field mocks of the service layer. Each method field can be
// overridden per test case.

type mockAuthService struct {
	authenticateFn func(ctx context.Context, req models.LoginRequest, ip, userAgent string) (models.LoginResponse, error)
	registerFn     func(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	logoutFn       func(ctx context.Context, userID, sessionToken string) error
	identityFn     func(ctx context.Context, rawToken string) (models.User, models.Session, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, req models.LoginRequest, ip, userAgent string) (models.LoginResponse, error) {
	return m.authenticateFn(ctx, req, ip, userAgent)
}

func (m *mockAuthService) Register(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, userID, sessionToken string) error {
	return m.logoutFn(ctx, userID, sessionToken)
}

func (m *mockAuthService) Identity(ctx context.Context, rawToken string) (models.User, models.Session, error) {
	return m.identityFn(ctx, rawToken)
}

type mockUserService struct {
	createFn            func(ctx context.Context, req models.CreateUserRequest, image *models.BlobUploadResult) (models.User, error)
	findByIDFn          func(ctx context.Context, userID string) (models.User, error)
	findByEmailFn       func(ctx context.Context, email string) (models.User, error)
	findRolesByUserIDFn func(ctx context.Context, userID string) ([]models.Role, error)
	updatePasswordFn    func(ctx context.Context, userID string, req models.UpdatePasswordRequest) error
	issueUserTokenFn    func(ctx context.Context, userID string, tokenType models.UserTokenType) (models.UserToken, error)
	consumeUserTokenFn  func(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error)
}

func (m *mockUserService) Create(ctx context.Context, req models.CreateUserRequest, image *models.BlobUploadResult) (models.User, error) {
	return m.createFn(ctx, req, image)
}

func (m *mockUserService) FindByID(ctx context.Context, userID string) (models.User, error) {
	return m.findByIDFn(ctx, userID)
}

func (m *mockUserService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserService) FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error) {
	return m.findRolesByUserIDFn(ctx, userID)
}

func (m *mockUserService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) error {
	return m.updatePasswordFn(ctx, userID, req)
}

func (m *mockUserService) IssueUserToken(ctx context.Context, userID string, tokenType models.UserTokenType) (models.UserToken, error) {
	return m.issueUserTokenFn(ctx, userID, tokenType)
}

func (m *mockUserService) ConsumeUserToken(ctx context.Context, userID, token string, tokenType models.UserTokenType) (models.UserToken, error) {
	return m.consumeUserTokenFn(ctx, userID, token, tokenType)
}

type mockCountryService struct {
	listFn           func(ctx context.Context) ([]models.Country, error)
	findByCodeFn     func(ctx context.Context, code string) (models.Country, error)
	findByCodeISO3Fn func(ctx context.Context, codeISO3 string) (models.Country, error)
}

func (m *mockCountryService) List(ctx context.Context) ([]models.Country, error) {
	return m.listFn(ctx)
}

func (m *mockCountryService) FindByCode(ctx context.Context, code string) (models.Country, error) {
	return m.findByCodeFn(ctx, code)
}

func (m *mockCountryService) FindByCodeISO3(ctx context.Context, codeISO3 string) (models.Country, error) {
	return m.findByCodeISO3Fn(ctx, codeISO3)
}

type mockUploadService struct {
	uploadProfileImageFn func(ctx context.Context, file io.Reader, fileName, contentType string, size int64) models.BlobUploadResult
}

func (m *mockUploadService) UploadProfileImage(ctx context.Context, file io.Reader, fileName, contentType string, size int64) models.BlobUploadResult {
	return m.uploadProfileImageFn(ctx, file, fileName, contentType, size)
}

// newTestHandler builds a Handler over the given service mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, config.App{
		Name:     "identity-api",
		Version:  "test",
		Mode:     "test",
		ClientID: testClientID,
	}, logger.Nop())
}

// authedIdentity returns a mockAuthService whose Identity always resolves to
// the given user, for exercising protected routes.
func authedIdentity(user models.User) *mockAuthService {
	return &mockAuthService{
		identityFn: func(ctx context.Context, rawToken string) (models.User, models.Session, error) {
			return user, models.Session{ID: "session-1", UserID: user.ID, Token: rawToken, IsActive: true}, nil
		},
	}
}

// authorize adds the headers every protected route requires.
func authorize(r *http.Request) {
	r.Header.Set(clientIDHeader, testClientID)
	r.Header.Set("Authorization", "Bearer signed-token")
}

// decodeResponse parses the uniform response envelope.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var body models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// dataMap re-decodes the envelope's data field as a JSON object.
func dataMap(t *testing.T, body models.Response) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}
