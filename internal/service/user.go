package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// User provides profile operations for the authenticated account.
type User struct {
	users   model.UserStore
	storage model.Storage
	logger  *logger.Logger
}

func NewUser(users model.UserStore, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		users:   users,
		storage: storage,
		logger:  logger,
	}
}

// Me returns the account behind the resolved identity.
func (u *User) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UpdateAvatar stores the image in object storage and persists the returned
// reference. The object key is derived from the user ID, so a new upload
// replaces the previous avatar.
func (u *User) UpdateAvatar(ctx context.Context, userID uuid.UUID, filename string, data io.Reader, size int64, contentType string) (model.User, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	key := fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))
	url, err := u.storage.Upload(ctx, key, data, size, contentType)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := u.users.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update avatar reference: %w", err)
	}

	u.logger.Info("User service: avatar updated", "user_id", userID)

	return user, nil
}
