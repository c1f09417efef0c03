package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/contacts-server/internal/api/http/response"
	"github.com/dtroode/contacts-server/internal/model"
)

// handleError maps service errors onto HTTP statuses. Unknown errors
// become an opaque 500; nothing internal leaks to the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrVerificationFailed):
		response.Error(w, http.StatusBadRequest, model.ErrVerificationFailed.Error())
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrNotVerified),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalidSignature),
		errors.Is(err, model.ErrTokenKindMismatch),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenMissing):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrAlreadyVerified):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
