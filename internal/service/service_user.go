package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asifrahman/go-identity-api/internal/logger"
	"github.com/asifrahman/go-identity-api/internal/password"
	"github.com/asifrahman/go-identity-api/internal/store"
	"github.com/asifrahman/go-identity-api/models"
)

// passwordHistoryLimit is how many past hashes a new password is checked
// against.
const passwordHistoryLimit = 5

// Lifetimes for single-use user tokens.
const (
	emailVerificationTokenTTL = 24 * time.Hour
	passwordResetTokenTTL     = time.Hour
)

// userService is the concrete implementation of UserService. Account creation
// and password changes each perform two writes, so both run inside a single
// transaction scoped through the shared DB handle.
type userService struct {
	db *store.DB

	userRepository            store.UserRepository
	roleRepository            store.RoleRepository
	passwordHistoryRepository store.PasswordHistoryRepository
	userTokenRepository       store.UserTokenRepository

	logger *logger.Logger
}

func NewUserService(db *store.DB, userRepository store.UserRepository, roleRepository store.RoleRepository, passwordHistoryRepository store.PasswordHistoryRepository, userTokenRepository store.UserTokenRepository, logger *logger.Logger) UserService {
	return &userService{
		db:                        db,
		userRepository:            userRepository,
		roleRepository:            roleRepository,
		passwordHistoryRepository: passwordHistoryRepository,
		userTokenRepository:       userTokenRepository,
		logger:                    logger,
	}
}

// Create registers a credentials account: password policy, role resolution,
// username generation, then a single transaction inserting the user, the role
// mapping, and the initial password-history row.
func (u *userService) Create(ctx context.Context, req models.CreateUserRequest, image *models.BlobUploadResult) (models.User, error) {
	log := logger.FromContext(ctx)

	if fields := validateCreateUserRequest(req); len(fields) > 0 {
		return models.User{}, badRequest(CodeValidationError, "invalid user data").WithFields(fields)
	}

	if !password.IsStrong(req.Password) {
		return models.User{}, badRequest(CodeWeakPassword, "password does not meet strength requirements")
	}

	roleName := req.Role
	if roleName == "" {
		roleName = models.RoleStudent
	}
	role, err := u.roleRepository.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrRoleNotFound) {
			return models.User{}, badRequest(CodeInvalidRole, "invalid role")
		}
		log.Err(err).Str("func", "Create").Str("role", roleName).Msg("role lookup failed")
		return models.User{}, internal(CodeUserCreationFailed, "user creation failed")
	}

	username := generateUsername(ctx, u.userRepository, req.FirstName, req.LastName, req.Email)

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "Create").Msg("password hashing failed")
		return models.User{}, internal(CodeUserCreationFailed, "user creation failed")
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}

	user := models.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Username:        username,
		PasswordHash:    hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DisplayName:     displayName,
		PhoneNumber:     req.PhoneNumber,
		Provider:        models.ProviderCredentials,
		IsActive:        true,
		Timezone:        req.Timezone,
		Locale:          req.Locale,
		Bio:             req.Bio,
		Gender:          req.Gender,
		Tagline:         req.Tagline,
		Website:         req.Website,
		CountryCodeISO3: req.CountryCodeISO3,
	}
	if image != nil && !image.HasError {
		user.ProfileImageURL = image.URL
	}

	var created models.User
	err = u.db.WithinTransaction(ctx, func(tx *sql.Tx) error {
		created, err = u.userRepository.CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		if err = u.roleRepository.MapRoleToUserTx(ctx, tx, role.ID, created.ID); err != nil {
			return err
		}
		return u.passwordHistoryRepository.AppendTx(ctx, tx, created.ID, hash)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.User{}, conflict(CodeEmailAlreadyExists, "email already exists")
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.User{}, conflict(CodeUsernameAlreadyExists, "username already exists")
		}
		log.Err(err).Str("func", "Create").Str("email", user.Email).Msg("user creation failed")
		return models.User{}, internal(CodeUserCreationFailed, "user creation failed")
	}

	created.Roles = []models.Role{role}
	return created.Public(), nil
}

func (u *userService) FindByID(ctx context.Context, userID string) (models.User, error) {
	user, err := u.userRepository.FindByID(ctx, userID, false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, notFound(CodeUserNotFound, "user not found")
		}
		logger.FromContext(ctx).Err(err).Str("func", "FindByID").Str("userID", userID).Msg("user lookup failed")
		return models.User{}, internal(CodeInternalServerError, "user lookup failed")
	}
	return user.Public(), nil
}

func (u *userService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := u.userRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)), false)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, notFound(CodeUserNotFound, "user not found")
		}
		logger.FromContext(ctx).Err(err).Str("func", "FindByEmail").Msg("user lookup failed")
		return models.User{}, internal(CodeInternalServerError, "user lookup failed")
	}
	return user.Public(), nil
}

// FindRolesByUserID returns the user's current role grants straight from the
// store. The role guard reads through here so a revoked role takes effect
// before the session expires.
func (u *userService) FindRolesByUserID(ctx context.Context, userID string) ([]models.Role, error) {
	roles, err := u.roleRepository.FindRolesByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "FindRolesByUserID").Str("userID", userID).Msg("role lookup failed")
		return nil, internal(CodeInternalServerError, "role lookup failed")
	}
	return roles, nil
}

// UpdatePassword changes the caller's password. The checks run in a fixed
// order and the first failure wins: current password correct, new password
// different from current, strength, then reuse against the last
// passwordHistoryLimit hashes. The hash update and the history append share
// one transaction.
func (u *userService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindByID(ctx, userID, true)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound(CodeUserNotFound, "user not found")
		}
		log.Err(err).Str("func", "UpdatePassword").Str("userID", userID).Msg("user lookup failed")
		return internal(CodeInternalServerError, "password update failed")
	}

	if !password.Compare(req.CurrentPassword, user.PasswordHash) {
		return badRequest(CodeIncorrectCurrentPassword, "incorrect current password")
	}

	if password.Compare(req.NewPassword, user.PasswordHash) {
		return badRequest(CodePasswordSameAsOld, "new password must differ from the current password")
	}

	if !password.IsStrong(req.NewPassword) {
		return badRequest(CodeWeakPassword, "password does not meet strength requirements")
	}

	recent, err := u.passwordHistoryRepository.RecentHashes(ctx, userID, passwordHistoryLimit)
	if err != nil {
		log.Err(err).Str("func", "UpdatePassword").Str("userID", userID).Msg("password history lookup failed")
		return internal(CodeInternalServerError, "password update failed")
	}
	for _, hash := range recent {
		if password.Compare(req.NewPassword, hash) {
			return badRequest(CodePasswordUsedInLast5, "password was used in the last 5 passwords")
		}
	}

	newHash, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "UpdatePassword").Str("userID", userID).Msg("password hashing failed")
		return internal(CodeInternalServerError, "password update failed")
	}

	err = u.db.WithinTransaction(ctx, func(tx *sql.Tx) error {
		if err := u.userRepository.UpdatePasswordTx(ctx, tx, userID, newHash); err != nil {
			return err
		}
		return u.passwordHistoryRepository.AppendTx(ctx, tx, userID, newHash)
	})
	if err != nil {
		log.Err(err).Str("func", "UpdatePassword").Str("userID", userID).Msg("password update failed")
		return internal(CodeInternalServerError, "password update failed")
	}

	return nil
}

// IssueUserToken creates a single-use token for out-of-band flows such as
// email verification. The token value is an opaque UUID, not a JWT.
func (u *userService) IssueUserToken(ctx context.Context, userID string, tokenType models.UserTokenType) (models.UserToken, error) {
	log := logger.FromContext(ctx)

	ttl := emailVerificationTokenTTL
	if tokenType == models.UserTokenPasswordReset {
		ttl = passwordResetTokenTTL
	}

	created, err := u.userTokenRepository.Create(ctx, models.UserToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		Type:      tokenType,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		log.Err(err).Str("func", "IssueUserToken").Str("userID", userID).Str("type", string(tokenType)).Msg("user token creation failed")
		return models.UserToken{}, internal(CodeTokenCreationFailed, "token creation failed")
	}

	return created, nil
}

// ConsumeUserToken validates a single-use token and burns it. A token that is
// missing, expired, or already used is rejected with TOKEN_INVALID_OR_EXPIRED;
// the caller cannot tell which.
func (u *userService) ConsumeUserToken(ctx context.Context, userID string, tokenValue string, tokenType models.UserTokenType) (models.UserToken, error) {
	log := logger.FromContext(ctx)

	valid, err := u.userTokenRepository.GetValid(ctx, userID, tokenValue, tokenType)
	if err != nil {
		if errors.Is(err, store.ErrUserTokenNotFound) {
			return models.UserToken{}, badRequest(CodeTokenInvalidOrExpired, "token is invalid or expired")
		}
		log.Err(err).Str("func", "ConsumeUserToken").Str("userID", userID).Msg("user token lookup failed")
		return models.UserToken{}, internal(CodeInternalServerError, "token lookup failed")
	}

	used, err := u.userTokenRepository.MarkUsed(ctx, userID, valid.Token, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrUserTokenNotFound) {
			return models.UserToken{}, badRequest(CodeTokenInvalidOrExpired, "token is invalid or expired")
		}
		log.Err(err).Str("func", "ConsumeUserToken").Str("userID", userID).Msg("user token update failed")
		return models.UserToken{}, internal(CodeTokenUpdateFailed, "token update failed")
	}

	return used, nil
}

func validateCreateUserRequest(req models.CreateUserRequest) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		fields["email"] = "email is invalid"
	}
	if req.Password == "" {
		fields["password"] = "password is required"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "firstName is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
