package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// maxAvatarSize bounds avatar uploads to 5 MiB.
const maxAvatarSize = 5 << 20

// UserService defines profile operations.
type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, filename string, data io.Reader, size int64, contentType string) (model.User, error)
}

// User handles HTTP endpoints for the current user's profile.
type User struct {
	service        UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Me returns the authenticated user's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.logger.Error("User handler: failed to load profile",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponse(user))
}

// UpdateAvatar accepts a multipart upload under the "file" field and
// replaces the user's avatar.
func (h *User) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, model.ErrTokenMissing.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	h.logger.Debug("User handler: processing avatar upload",
		"user_id", userID,
		"filename", header.Filename,
		"size", header.Size)

	user, err := h.service.UpdateAvatar(r.Context(), userID, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("User handler: avatar upload failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: avatar updated", "user_id", userID)

	response.JSON(w, http.StatusOK, newUserResponse(user))
}
