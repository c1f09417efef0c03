package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/mocks"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/testutil"
)

func TestUser_Me(t *testing.T) {
	userID := uuid.New()
	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Email: "a@b.c"}, nil)

	svc := NewUser(users, &mocks.Storage{}, testutil.MakeNoopLogger())

	user, err := svc.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", user.Email)
}

func TestUser_Me_NotFound(t *testing.T) {
	userID := uuid.New()
	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	svc := NewUser(users, &mocks.Storage{}, testutil.MakeNoopLogger())

	_, err := svc.Me(context.Background(), userID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUser_UpdateAvatar(t *testing.T) {
	userID := uuid.New()
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}

	wantKey := "avatars/" + userID.String() + ".png"
	wantURL := "http://storage.local/avatars/" + userID.String() + ".png"

	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)
	storage.On("Upload", mock.Anything, wantKey, mock.Anything, int64(4), "image/png").Return(wantURL, nil)
	users.On("UpdateAvatar", mock.Anything, userID, wantURL).Return(model.User{ID: userID, AvatarURL: wantURL}, nil)

	svc := NewUser(users, storage, testutil.MakeNoopLogger())

	user, err := svc.UpdateAvatar(context.Background(), userID, "me.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, wantURL, user.AvatarURL)
	storage.AssertExpectations(t)
}

func TestUser_UpdateAvatar_UnknownUser(t *testing.T) {
	userID := uuid.New()
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}

	users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	svc := NewUser(users, storage, testutil.MakeNoopLogger())

	_, err := svc.UpdateAvatar(context.Background(), userID, "me.png", strings.NewReader("data"), 4, "image/png")
	assert.ErrorIs(t, err, model.ErrNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
