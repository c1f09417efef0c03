package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/contacts-server/internal/testutil"
)

func TestLogging_Handle_PassesThrough(t *testing.T) {
	l := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	rec := httptest.NewRecorder()

	l.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "body", rec.Body.String())
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	l := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	rec := httptest.NewRecorder()
	l.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
