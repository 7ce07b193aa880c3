package service

import (
	"context"
	"errors"
	"time"

	"github.com/asifrahman/go-identity-api/internal/config"
	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/password"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/internal/token"
	"github.com/asifrahman/go-identity-api/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials with bcrypt, issues signed bearer tokens, and keeps
// a server-side session row per issued token so that logout and deactivation
// revoke access before token expiry.
type authService struct {
	// userRepository looks up accounts by email or username for login and by
	// id for the access guard.
	userRepository store.UserRepository

	// sessionRepository persists one session row per issued token.
	sessionRepository store.SessionRepository

	// userService handles account creation on behalf of Register.
	userService UserService

	// tokens signs and verifies bearer tokens.
	tokens *token.Issuer

	// sessionDuration controls how long a newly created session remains valid.
	sessionDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, userService UserService, tokens *token.Issuer, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		userService:       userService,
		tokens:            tokens,
		sessionDuration:   cfg.SessionDuration,
		logger:            logger,
	}
}

// Authenticate verifies credentials and opens a session.
//
// The username field accepts either the username or the email address. A
// missing account and a wrong password are indistinguishable to the caller:
// both return the INVALID_USERNAME_OR_PASSWORD error.
func (a *authService) Authenticate(ctx context.Context, req models.LoginRequest, ipAddress string, userAgent string) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		return models.LoginResponse{}, unauthorized(CodeInvalidUsernameOrPassword, "invalid username or password")
	}

	user, err := a.userRepository.FindByEmailOrUsername(ctx, req.Username, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.LoginResponse{}, unauthorized(CodeInvalidUsernameOrPassword, "invalid username or password")
		}
		log.Err(err).Str("func", "Authenticate").Msg("user lookup failed")
		return models.LoginResponse{}, internal(CodeInternalServerError, "authentication failed")
	}

	if user.PasswordHash == "" || !password.Compare(req.Password, user.PasswordHash) {
		return models.LoginResponse{}, unauthorized(CodeInvalidUsernameOrPassword, "invalid username or password")
	}

	if !user.IsActive {
		return models.LoginResponse{}, unauthorized(CodeUserIsNotActive, "user is not active")
	}

	accessToken, err := a.tokens.Issue(user)
	if err != nil {
		log.Err(err).Str("func", "Authenticate").Str("userID", user.ID).Msg("token signing failed")
		return models.LoginResponse{}, internal(CodeTokenCreationFailed, "token creation failed")
	}

	_, err = a.sessionRepository.Create(ctx, user.ID, accessToken, ipAddress, userAgent, time.Now().Add(a.sessionDuration))
	if err != nil {
		log.Err(err).Str("func", "Authenticate").Str("userID", user.ID).Msg("session creation failed")
		return models.LoginResponse{}, internal(CodeInternalServerError, "authentication failed")
	}

	return models.LoginResponse{
		User:        user.Public(),
		AccessToken: accessToken,
	}, nil
}

// Register creates a credentials account. Account assembly (username
// generation, role mapping, password policy) lives in the user service;
// registration only refuses the Administrator role. Self-service signups are
// Students unless a role was requested.
func (a *authService) Register(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	switch req.Role {
	case "":
		req.Role = models.RoleStudent
	case models.RoleAdministrator:
		return models.User{}, badRequest(CodeInvalidRole, "invalid role")
	}
	return a.userService.Create(ctx, req, nil)
}

// Logout revokes the session backing the given token. Logging out an already
// revoked session is not an error.
func (a *authService) Logout(ctx context.Context, userID string, sessionToken string) error {
	log := logger.FromContext(ctx)

	err := a.sessionRepository.Delete(ctx, userID, sessionToken)
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		log.Err(err).Str("func", "Logout").Str("userID", userID).Msg("session deletion failed")
		return internal(CodeInternalServerError, "logout failed")
	}

	return nil
}

// Identity resolves a raw bearer token into its user and live session. It is
// the access guard behind every protected route: signature and claims first,
// then the server-side session, then the account itself.
func (a *authService) Identity(ctx context.Context, rawToken string) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Verify(rawToken)
	if err != nil {
		return models.User{}, models.Session{}, unauthorized(CodeInvalidOrExpiredToken, "invalid or expired token")
	}

	session, err := a.sessionRepository.GetLiveSession(ctx, claims.UserID, rawToken)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.User{}, models.Session{}, unauthorized(CodeInvalidOrExpiredToken, "invalid or expired token")
		}
		log.Err(err).Str("func", "Identity").Str("userID", claims.UserID).Msg("session lookup failed")
		return models.User{}, models.Session{}, internal(CodeInternalServerError, "authentication failed")
	}

	user, err := a.userRepository.FindByID(ctx, claims.UserID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Session{}, unauthorized(CodeInvalidUser, "invalid user")
		}
		log.Err(err).Str("func", "Identity").Str("userID", claims.UserID).Msg("user lookup failed")
		return models.User{}, models.Session{}, internal(CodeInternalServerError, "authentication failed")
	}

	// a deactivated account is rejected exactly like a missing one
	if !user.IsActive {
		return models.User{}, models.Session{}, unauthorized(CodeInvalidUser, "invalid user")
	}

	return user, session, nil
}
