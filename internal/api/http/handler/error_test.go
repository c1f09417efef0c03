package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/contacts-server/internal/model"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: model.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("%w: first name is required", model.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "verification failed", err: model.ErrVerificationFailed, wantStatus: http.StatusBadRequest},
		{name: "invalid credentials", err: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "not verified", err: model.ErrNotVerified, wantStatus: http.StatusUnauthorized},
		{name: "expired token", err: model.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
		{name: "token kind mismatch", err: model.ErrTokenKindMismatch, wantStatus: http.StatusUnauthorized},
		{name: "not found", err: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "email taken", err: model.ErrEmailTaken, wantStatus: http.StatusConflict},
		{name: "already verified", err: model.ErrAlreadyVerified, wantStatus: http.StatusConflict},
		{name: "unknown error is opaque", err: errors.New("pgx: connection refused"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "pgx")
			}
		})
	}
}
