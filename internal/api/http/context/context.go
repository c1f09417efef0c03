// Package context carries the authenticated user identity through request
// contexts.
package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/model"
)

type ctxKey int

const userIDKey ctxKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the authenticated user ID on a request
// context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying the user ID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the user ID set by the authentication
// middleware. The boolean reports whether an identity was present.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
