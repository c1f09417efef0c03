package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/contacts-server/internal/model"
)

// ContactStore is a mock implementation of model.ContactStore.
type ContactStore struct {
	mock.Mock
}

// NewContactStore creates a ContactStore mock with expectations asserted
// on test cleanup.
func NewContactStore(t *testing.T) *ContactStore {
	m := &ContactStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContactStore) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (model.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) List(ctx context.Context, ownerID uuid.UUID, filter model.ContactFilter) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *ContactStore) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	args := m.Called(ctx, contact)
	return args.Get(0).(model.Contact), args.Error(1)
}

func (m *ContactStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *ContactStore) ListWithBirthdays(ctx context.Context, ownerID uuid.UUID) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}
