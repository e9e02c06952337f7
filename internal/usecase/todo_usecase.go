// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"taskpad/internal/domain/entity"

	"github.com/google/uuid"
)

// ListTodosInput narrows a todo listing; zero values list everything.
type ListTodosInput struct {
	Completed *bool  // Filter on completion state when set.
	Search    string // Case-insensitive substring match on the description.
}

// CreateTodoInput defines the data required to create a todo.
type CreateTodoInput struct {
	Description string `json:"description" validate:"required"`
	Completed   bool   `json:"completed"`
}

// UpdateTodoInput carries a partial update. Nil fields are left untouched;
// present fields must be valid or the whole update is rejected.
type UpdateTodoInput struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoView is the public projection of a todo item.
type TodoView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTodoView builds the public projection for a todo entity.
func NewTodoView(todo *entity.Todo) *TodoView {
	return &TodoView{
		ID:          todo.ID,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// NewTodoViews builds projections for a todo listing. The result is never
// nil, so an empty listing serializes as [] instead of null.
func NewTodoViews(todos []*entity.Todo) []*TodoView {
	views := make([]*TodoView, 0, len(todos))
	for _, todo := range todos {
		views = append(views, NewTodoView(todo))
	}

	return views
}

// TodoUsecase defines the interface for todo operations. Every operation is
// scoped to the authenticated user.
type TodoUsecase interface {
	List(ctx context.Context, userID uuid.UUID, input *ListTodosInput) ([]*entity.Todo, error)
	Get(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateTodoInput) (*entity.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, input *UpdateTodoInput) (*entity.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}
