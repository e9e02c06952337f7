package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/delivery/http/validator"
	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountUC implements usecase.AccountUsecase through optional function
// fields so each test only wires what it exercises.
type fakeAccountUC struct {
	registerFn  func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AccountView, error)
	authFn      func(ctx context.Context, input *usecase.LoginInput) (*entity.User, error)
	issueFn     func(ctx context.Context, user *entity.User) (string, error)
	resolveFn   func(ctx context.Context, token string) (*entity.User, error)
	revokeFn    func(ctx context.Context, user *entity.User, token string) error
	revokeAllFn func(ctx context.Context, user *entity.User) error
}

func (f *fakeAccountUC) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AccountView, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeAccountUC) Authenticate(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	return f.authFn(ctx, input)
}

func (f *fakeAccountUC) IssueToken(ctx context.Context, user *entity.User) (string, error) {
	return f.issueFn(ctx, user)
}

func (f *fakeAccountUC) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	return f.resolveFn(ctx, token)
}

func (f *fakeAccountUC) RevokeToken(ctx context.Context, user *entity.User, token string) error {
	return f.revokeFn(ctx, user, token)
}

func (f *fakeAccountUC) RevokeAllTokens(ctx context.Context, user *entity.User) error {
	return f.revokeAllFn(ctx, user)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAccountHandler_Register(t *testing.T) {
	view := &usecase.AccountView{ID: uuid.New(), Email: "alice@example.com"}
	uc := &fakeAccountUC{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.AccountView, error) {
			assert.Equal(t, "alice@example.com", input.Email)

			return view, nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/users", `{"email":"alice@example.com","password":"s3cret-pass"}`)
	require.NoError(t, NewAccountHandler(uc, testLogger()).Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	// The digest never leaves the service layer.
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
}

func TestAccountHandler_RegisterInvalidEmail(t *testing.T) {
	uc := &fakeAccountUC{
		registerFn: func(context.Context, *usecase.RegisterInput) (*usecase.AccountView, error) {
			t.Fatal("Register must not be reached with an invalid payload")

			return nil, nil
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/users", `{"email":"not-an-email","password":"s3cret-pass"}`)
	err := NewAccountHandler(uc, testLogger()).Register(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAccountHandler_Login(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	uc := &fakeAccountUC{
		authFn: func(_ context.Context, input *usecase.LoginInput) (*entity.User, error) {
			assert.Equal(t, "s3cret-pass", input.Password)

			return user, nil
		},
		issueFn: func(_ context.Context, got *entity.User) (string, error) {
			assert.Equal(t, user, got)

			return "fresh-token", nil
		},
	}

	c, rec := newJSONContext(http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"s3cret-pass"}`)
	require.NoError(t, NewAccountHandler(uc, testLogger()).Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh-token", rec.Header().Get(HeaderXAuthToken))

	var envelope struct {
		Data usecase.AccountView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, user.Email, envelope.Data.Email)
}

func TestAccountHandler_LoginBadCredentials(t *testing.T) {
	uc := &fakeAccountUC{
		authFn: func(context.Context, *usecase.LoginInput) (*entity.User, error) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authentication failed")
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/users/login", `{"email":"alice@example.com","password":"wrong"}`)
	err := NewAccountHandler(uc, testLogger()).Login(c)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountHandler_Logout(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	revoked := ""
	uc := &fakeAccountUC{
		revokeFn: func(_ context.Context, got *entity.User, token string) error {
			assert.Equal(t, user, got)
			revoked = token

			return nil
		},
	}

	c, rec := newJSONContext(http.MethodDelete, "/users/me/token", "")
	deliverycontext.SetAuthUser(c, user)
	deliverycontext.SetAuthToken(c, "current-token")

	require.NoError(t, NewAccountHandler(uc, testLogger()).Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	// Exactly the session that authenticated this request is revoked.
	assert.Equal(t, "current-token", revoked)
}

func TestAccountHandler_LogoutAll(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	called := false
	uc := &fakeAccountUC{
		revokeAllFn: func(_ context.Context, got *entity.User) error {
			assert.Equal(t, user, got)
			called = true

			return nil
		},
	}

	c, rec := newJSONContext(http.MethodDelete, "/users/me/tokens", "")
	deliverycontext.SetAuthUser(c, user)

	require.NoError(t, NewAccountHandler(uc, testLogger()).LogoutAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAccountHandler_Me(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com", PasswordDigest: "$2a$10$abcdef"}

	c, rec := newJSONContext(http.MethodGet, "/users/me", "")
	deliverycontext.SetAuthUser(c, user)

	require.NoError(t, NewAccountHandler(&fakeAccountUC{}, testLogger()).Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Email)
	assert.NotContains(t, rec.Body.String(), user.PasswordDigest)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
