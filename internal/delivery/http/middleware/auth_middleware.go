package middleware

import (
	"strings"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/delivery/http/response"
	"taskpad/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind a live session token.
type AuthMiddleware struct {
	accountUC usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accountUC usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accountUC: accountUC}
}

// Authenticate resolves the bearer token to its user and attaches both the
// user and the literal token to the request. Every failure, whether the
// header is missing, the token is forged, or the session was revoked,
// produces the same 401 body so callers cannot tell the cases apart.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			return m.reject(c)
		}

		user, err := m.accountUC.ResolveToken(c.Request().Context(), tokenString)
		if err != nil {
			return m.reject(c)
		}

		deliverycontext.SetAuthUser(c, user)
		deliverycontext.SetAuthToken(c, tokenString)

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context) error {
	return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
}
