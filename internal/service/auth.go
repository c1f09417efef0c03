package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"time"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/password"
)

// Auth owns the account state machine: unregistered, pending verification,
// verified.
type Auth struct {
	users       model.UserStore
	tokens      model.TokenManager
	hasher      *password.Hasher
	mailer      model.Mailer
	logger      *logger.Logger
	dummyDigest string
}

// NewAuth creates the auth service. A digest of a throwaway password is
// precomputed so that login against an unknown email still performs one
// bcrypt comparison and keeps the same latency shape as a mismatch.
func NewAuth(
	users model.UserStore,
	tokens model.TokenManager,
	hasher *password.Hasher,
	mailer model.Mailer,
	logger *logger.Logger,
) *Auth {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		dummy = ""
	}
	return &Auth{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		mailer:      mailer,
		logger:      logger,
		dummyDigest: dummy,
	}
}

// RegisterParams contains parameters to register an account.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates an unverified account and emits a verification mail.
// Mail delivery is best effort: its failure is logged and never fails the
// registration itself.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	a.logger.Debug("Auth service: starting user registration", "email", email)

	if email == "" || params.Password == "" || params.Username == "" {
		return model.User{}, fmt.Errorf("%w: username, email and password are required", model.ErrValidation)
	}

	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists", "email", email)
		return model.User{}, model.ErrEmailTaken
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		// Two requests can pass the duplicate check above; the unique
		// index on the store resolves the race.
		if errors.Is(err, model.ErrEmailTaken) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.sendVerificationMail(ctx, created)

	a.logger.Info("Auth service: user registration completed", "email", email, "user_id", created.ID)

	return created, nil
}

// VerifyEmail redeems a verification token. Expired, tampered or already
// consumed tokens all fail the same way without mutating state.
func (a *Auth) VerifyEmail(ctx context.Context, tokenString string) error {
	userID, err := a.tokens.Parse(tokenString, model.TokenKindVerification)
	if err != nil {
		a.logger.Info("Auth service: verification token rejected", "error", err.Error())
		return model.ErrVerificationFailed
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrVerificationFailed
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if user.Verified {
		// First redemption flipped the flag; a replayed token fails
		// without touching the account again.
		return model.ErrVerificationFailed
	}

	if err := a.users.SetVerified(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrVerificationFailed
		}
		return fmt.Errorf("failed to set user verified: %w", err)
	}

	a.logger.Info("Auth service: email verified", "user_id", userID)

	return nil
}

// Login checks credentials and issues an access/refresh token pair. Unknown
// email and wrong password return the identical error.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (model.TokenPair, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Burn a comparison so the unknown-email path costs the
			// same as a mismatch.
			_, _ = a.hasher.Verify(plaintext, a.dummyDigest)
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := a.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if !user.Verified {
		return model.TokenPair{}, model.ErrNotVerified
	}

	access, err := a.tokens.Generate(user.ID, model.TokenKindAccess)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := a.tokens.Generate(user.ID, model.TokenKindRefresh)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated and there is no revocation store;
// validity is signature plus expiry.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := a.tokens.Parse(refreshToken, model.TokenKindRefresh)
	if err != nil {
		return "", err
	}

	// A still-valid token may outlive its account.
	if _, err := a.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	access, err := a.tokens.Generate(userID, model.TokenKindAccess)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return access, nil
}

// RequestVerification re-sends the verification mail for a known unverified
// account.
func (a *Auth) RequestVerification(ctx context.Context, email string) error {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.Verified {
		return model.ErrAlreadyVerified
	}

	verification, err := a.tokens.Generate(user.ID, model.TokenKindVerification)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := a.mailer.SendVerification(ctx, user.Email, user.Username, verification); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}

	return nil
}

func (a *Auth) sendVerificationMail(ctx context.Context, user model.User) {
	verification, err := a.tokens.Generate(user.ID, model.TokenKindVerification)
	if err != nil {
		a.logger.Warn("Auth service: failed to issue verification token",
			"user_id", user.ID,
			"error", err.Error())
		return
	}

	if err := a.mailer.SendVerification(ctx, user.Email, user.Username, verification); err != nil {
		a.logger.Warn("Auth service: failed to send verification mail",
			"user_id", user.ID,
			"error", err.Error())
	}
}
