package repository

import (
	"context"
	"errors"

	"taskpad/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTodoNotFound is a domain-specific error returned when a todo is not found.
var ErrTodoNotFound = errors.New("todo not found")

// TodoFilter narrows a todo listing. Nil fields mean "no filter".
type TodoFilter struct {
	Completed *bool  // Only items with this completion state.
	Search    string // Case-insensitive substring match on the description.
}

// TodoRepository defines the standard operations for todo persistence.
// Every operation is scoped by the owning user; a todo belonging to another
// user is indistinguishable from one that does not exist.
type TodoRepository interface {
	// FindByID retrieves a single todo owned by the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Todo, error)

	// FindByUser retrieves all todos owned by the user, newest first,
	// narrowed by the filter.
	FindByUser(ctx context.Context, userID uuid.UUID, filter TodoFilter) ([]*entity.Todo, error)

	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// Update modifies an existing todo entity in the storage.
	Update(ctx context.Context, todo *entity.Todo) error

	// Delete removes a todo owned by the given user; ErrTodoNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
