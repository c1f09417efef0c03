package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/service"
	"github.com/dtroode/contacts-server/internal/testutil"
)

type fakeAuthService struct {
	registerFn            func(ctx context.Context, params service.RegisterParams) (model.User, error)
	loginFn               func(ctx context.Context, email, password string) (model.TokenPair, error)
	refreshFn             func(ctx context.Context, refreshToken string) (string, error)
	verifyEmailFn         func(ctx context.Context, token string) error
	requestVerificationFn func(ctx context.Context, email string) error
}

func (f *fakeAuthService) Register(ctx context.Context, params service.RegisterParams) (model.User, error) {
	return f.registerFn(ctx, params)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, token string) error {
	return f.verifyEmailFn(ctx, token)
}

func (f *fakeAuthService) RequestVerification(ctx context.Context, email string) error {
	return f.requestVerificationFn(ctx, email)
}

func TestAuth_Register(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAuthService{
		registerFn: func(ctx context.Context, params service.RegisterParams) (model.User, error) {
			assert.Equal(t, "ada", params.Username)
			return model.User{ID: userID, Username: params.Username, Email: "ada@example.com"}, nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	body := `{"username":"ada","email":"ada@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp["id"])
	assert.Equal(t, "ada@example.com", resp["email"])
	assert.Equal(t, false, resp["verified"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	svc := &fakeAuthService{
		registerFn: func(ctx context.Context, params service.RegisterParams) (model.User, error) {
			return model.User{}, model.ErrEmailTaken
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"u","email":"a@b.c","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuth_Register_BadBody(t *testing.T) {
	h := NewAuth(&fakeAuthService{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Login(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (model.TokenPair, error) {
			return model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (model.TokenPair, error) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Login_Unverified(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (model.TokenPair, error) {
			return model.TokenPair{}, model.ErrNotVerified
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"p"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_Refresh_RequiresToken(t *testing.T) {
	h := NewAuth(&fakeAuthService{}, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Refresh(t *testing.T) {
	svc := &fakeAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			assert.Equal(t, "refresh-token", refreshToken)
			return "new-access", nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"refresh_token":"refresh-token"}`))
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp.AccessToken)
}

func verifyRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify/"+token, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("token", token)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAuth_VerifyEmail(t *testing.T) {
	svc := &fakeAuthService{
		verifyEmailFn: func(ctx context.Context, token string) error {
			assert.Equal(t, "tok", token)
			return nil
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("tok"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_VerifyEmail_BadToken(t *testing.T) {
	svc := &fakeAuthService{
		verifyEmailFn: func(ctx context.Context, token string) error {
			return model.ErrVerificationFailed
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, verifyRequest("bad"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_RequestVerification_AlreadyVerified(t *testing.T) {
	svc := &fakeAuthService{
		requestVerificationFn: func(ctx context.Context, email string) error {
			return model.ErrAlreadyVerified
		},
	}
	h := NewAuth(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/request-verification", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()

	h.RequestVerification(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
