package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// Mailer is a mock implementation of model.Mailer.
type Mailer struct {
	mock.Mock
}

// NewMailer creates a Mailer mock with expectations asserted on test
// cleanup.
func NewMailer(t *testing.T) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Mailer) SendVerification(ctx context.Context, to, username, token string) error {
	args := m.Called(ctx, to, username, token)
	return args.Error(0)
}
