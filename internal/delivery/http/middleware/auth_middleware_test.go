package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccountUsecase only implements what the middleware touches; the
// embedded interface covers the rest.
type stubAccountUsecase struct {
	usecase.AccountUsecase

	resolveFn func(ctx context.Context, token string) (*entity.User, error)
}

func (s *stubAccountUsecase) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	return s.resolveFn(ctx, token)
}

func runAuthenticate(t *testing.T, uc usecase.AccountUsecase, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := NewAuthMiddleware(uc).Authenticate(next)(c)

	return rec, err
}

func TestAuthMiddleware_AdmitsLiveToken(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "alice@example.com"}
	uc := &stubAccountUsecase{
		resolveFn: func(_ context.Context, token string) (*entity.User, error) {
			assert.Equal(t, "live-token", token)

			return user, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer live-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser *entity.User
	var gotToken string
	next := func(c echo.Context) error {
		gotUser = deliverycontext.GetAuthUser(c)
		gotToken = deliverycontext.GetAuthToken(c)

		return c.NoContent(http.StatusOK)
	}
	err := NewAuthMiddleware(uc).Authenticate(next)(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, gotUser)
	assert.Equal(t, "live-token", gotToken)
}

func TestAuthMiddleware_RejectsWithoutHeader(t *testing.T) {
	uc := &stubAccountUsecase{
		resolveFn: func(context.Context, string) (*entity.User, error) {
			t.Fatal("ResolveToken must not be called without a bearer token")

			return nil, nil
		},
	}

	for name, header := range map[string]string{
		"missing header": "",
		"not a bearer":   "Token abcdef",
	} {
		t.Run(name, func(t *testing.T) {
			rec, err := runAuthenticate(t, uc, header)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Authentication required")
		})
	}
}

func TestAuthMiddleware_InvalidAndRevokedLookAlike(t *testing.T) {
	invalid := &stubAccountUsecase{
		resolveFn: func(context.Context, string) (*entity.User, error) {
			return nil, domainerrors.ErrTokenInvalid.WrapMessage("signature verification failed")
		},
	}
	revoked := &stubAccountUsecase{
		resolveFn: func(context.Context, string) (*entity.User, error) {
			return nil, domainerrors.ErrTokenRevoked.WrapMessage("session token is not in the ledger")
		},
	}

	invalidRec, err := runAuthenticate(t, invalid, "Bearer some-token")
	require.NoError(t, err)
	revokedRec, err := runAuthenticate(t, revoked, "Bearer some-token")
	require.NoError(t, err)

	// A forged token and a logged-out one must be indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, invalidRec.Code)
	assert.Equal(t, invalidRec.Code, revokedRec.Code)
	assert.Equal(t, invalidRec.Body.String(), revokedRec.Body.String())
}
