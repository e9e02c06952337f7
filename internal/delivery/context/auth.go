package context

import (
	"taskpad/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

const (
	// KeyAuthUser is the key for the authenticated user attached by the auth middleware.
	KeyAuthUser ContextKey = "auth_user"

	// KeyAuthToken is the key for the literal session token the request
	// authenticated with. Logout needs it to revoke exactly this session.
	KeyAuthToken ContextKey = "auth_token"
)

// SetAuthUser attaches the authenticated user to the request.
func SetAuthUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyAuthUser), user)
}

// GetAuthUser returns the authenticated user attached by the auth middleware,
// or nil when the request did not pass through it.
func GetAuthUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyAuthUser)).(*entity.User); ok {
		return user
	}

	return nil
}

// SetAuthToken attaches the literal session token to the request.
func SetAuthToken(c echo.Context, token string) {
	c.Set(string(KeyAuthToken), token)
}

// GetAuthToken returns the literal session token the request authenticated
// with, or the empty string.
func GetAuthToken(c echo.Context) string {
	if token, ok := c.Get(string(KeyAuthToken)).(string); ok {
		return token
	}

	return ""
}
