package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/delivery/http/response"
	"taskpad/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoHandler holds dependencies for todo handlers. All routes sit behind the
// auth middleware, so the user is always present on the context.
type TodoHandler struct {
	uc     usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the user's todos, optionally narrowed by
// ?completed=true|false and ?q=<substring>.
func (h *TodoHandler) List(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	input := &usecase.ListTodosInput{
		Search: c.QueryParam("q"),
	}
	switch c.QueryParam("completed") {
	case "":
	case "true":
		completed := true
		input.Completed = &completed
	case "false":
		completed := false
		input.Completed = &completed
	default:
		return response.BadRequest(c, "INVALID_INPUT", "completed must be true or false")
	}

	todos, err := h.uc.List(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.NewTodoViews(todos), "Todos retrieved successfully")
}

// Get returns a single todo by ID.
func (h *TodoHandler) Get(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	todo, err := h.uc.Get(c.Request().Context(), user.ID, todoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.NewTodoView(todo), "Todo retrieved successfully")
}

// Create adds a new todo for the user.
func (h *TodoHandler) Create(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	var input *usecase.CreateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.uc.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, usecase.NewTodoView(todo), "Todo created successfully")
}

// Update applies a partial update to one of the user's todos.
func (h *TodoHandler) Update(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	var input *usecase.UpdateTodoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}

	todo, err := h.uc.Update(c.Request().Context(), user.ID, todoID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.NewTodoView(todo), "Todo updated successfully")
}

// Delete removes one of the user's todos.
func (h *TodoHandler) Delete(c echo.Context) error {
	user := deliverycontext.GetAuthUser(c)

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.NotFound(c, "TODO_NOT_FOUND", "Todo not found")
	}

	if err := h.uc.Delete(c.Request().Context(), user.ID, todoID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
