package mocks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/contacts-server/internal/model"
)

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

// NewTokenManager creates a TokenManager mock with expectations asserted
// on test cleanup.
func NewTokenManager(t *testing.T) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenManager) Generate(userID uuid.UUID, kind model.TokenKind) (string, error) {
	args := m.Called(userID, kind)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string, kind model.TokenKind) (uuid.UUID, error) {
	args := m.Called(token, kind)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
