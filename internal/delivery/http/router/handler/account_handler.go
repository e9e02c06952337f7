// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/delivery/http/response"
	"taskpad/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderXAuthToken carries the freshly issued session token on login.
const HeaderXAuthToken = "X-Auth-Token"

// AccountHandler holds dependencies for account and session handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "Account registered successfully")
}

// Login authenticates credentials and opens a new session. The token travels
// in the X-Auth-Token response header; the body only carries the account view.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Authenticate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	token, err := h.uc.IssueToken(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(HeaderXAuthToken, token)

	return response.Success(c, http.StatusOK, usecase.NewAccountView(user), "Login successful")
}

// Logout revokes exactly the session the request authenticated with.
func (h *AccountHandler) Logout(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)
	token := deliverycontext.GetAuthToken(c)

	if err := h.uc.RevokeToken(c.Request().Context(), user, token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// LogoutAll revokes every session the user holds, this one included.
func (h *AccountHandler) LogoutAll(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	if err := h.uc.RevokeAllTokens(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "All sessions ended")
}

// Me returns the authenticated account's public view.
func (h *AccountHandler) Me(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	return response.Success(c, http.StatusOK, usecase.NewAccountView(user), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// Root greets unauthenticated visitors.
func Root(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"service": "taskpad"}, "Welcome")
}
