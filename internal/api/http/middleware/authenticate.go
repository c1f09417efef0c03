package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// TokenParser resolves a bearer token string to a user ID.
type TokenParser interface {
	Parse(token string, kind model.TokenKind) (uuid.UUID, error)
}

// UserStore confirms that a token subject still exists.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request context. It fails closed: no token, an invalid token, and a
// valid token whose subject no longer exists are all rejected.
type Authenticate struct {
	tokens         TokenParser
	users          UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, users UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokens:         tokens,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps next with bearer-token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticateUser(r)
		if err != nil {
			if errors.Is(err, errInternal) {
				response.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}
			response.Error(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(r *http.Request) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return uuid.Nil, model.ErrTokenMissing
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return uuid.Nil, model.ErrTokenMissing
	}

	userID, err := m.tokens.Parse(tokenString, model.TokenKindAccess)
	if err != nil {
		return uuid.Nil, err
	}

	// A signed token can outlive its account; the store is the
	// authority on current existence.
	if _, err := m.users.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			m.logger.Info("Authenticate middleware: token subject no longer exists", "user_id", userID)
			return uuid.Nil, errUserGone
		}
		m.logger.Error("Authenticate middleware: failed to load token subject",
			"user_id", userID,
			"error", err.Error())
		return uuid.Nil, errInternal
	}

	return userID, nil
}

var (
	errUserGone = errors.New("user not found")
	errInternal = errors.New("internal")
)
