// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskpad/internal/delivery/http/middleware"
	"taskpad/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TodoHandler    *handler.TodoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	todoHandler    *handler.TodoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		todoHandler:    params.TodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	// Public account routes
	userGroup := e.Group("/users")
	{
		userGroup.POST("", r.accountHandler.Register)
		userGroup.POST("/login", r.accountHandler.Login)
	}

	// Session-scoped account routes
	meGroup := userGroup.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.accountHandler.Me)
		meGroup.DELETE("/token", r.accountHandler.Logout)
		meGroup.DELETE("/tokens", r.accountHandler.LogoutAll)
	}

	// Todo routes, all owned by the authenticated user
	todoGroup := e.Group("/todos")
	todoGroup.Use(r.authMiddleware.Authenticate)
	{
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.GET("/:id", r.todoHandler.Get)
		todoGroup.PUT("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
	}
}
