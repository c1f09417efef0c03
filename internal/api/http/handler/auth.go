package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/service"
)

// AuthService defines registration, login and verification operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestVerification(ctx context.Context, email string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Verified  bool   `json:"verified"`
}

func newUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Verified:  user.Verified,
	}
}

// Register creates a new user account and schedules a verification email.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing register request", "email", req.Email)

	user, err := h.service.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: register failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: register completed",
		"email", user.Email,
		"user_id", user.ID)

	response.JSON(w, http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login verifies credentials and returns an access and refresh token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed", "email", req.Email)

	response.JSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Refresh exchanges a refresh token for a new access token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RefreshToken == "" {
		response.Error(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	h.logger.Debug("Auth handler: processing token refresh request")

	accessToken, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: token refresh successful")

	response.JSON(w, http.StatusOK, refreshResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

type messageResponse struct {
	Message string `json:"message"`
}

// VerifyEmail redeems a verification token and marks the account verified.
func (h *Auth) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	h.logger.Debug("Auth handler: processing email verification request")

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		h.logger.Error("Auth handler: email verification failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: email verification completed")

	response.JSON(w, http.StatusOK, messageResponse{Message: "email verified"})
}

type requestVerificationRequest struct {
	Email string `json:"email"`
}

// RequestVerification re-sends the verification email for an
// unverified account.
func (h *Auth) RequestVerification(w http.ResponseWriter, r *http.Request) {
	var req requestVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing verification request", "email", req.Email)

	if err := h.service.RequestVerification(r.Context(), req.Email); err != nil {
		h.logger.Error("Auth handler: verification request failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: verification email sent", "email", req.Email)

	response.JSON(w, http.StatusOK, messageResponse{Message: "verification email sent"})
}
