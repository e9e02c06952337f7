package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/repository"
	"taskpad/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxDescriptionLength caps a todo description after trimming.
const maxDescriptionLength = 250

// todoService implements the TodoUsecase interface.
type todoService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// TodoServiceParams holds dependencies for todoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's todos, newest first, narrowed by the filter.
func (srv *todoService) List(ctx context.Context, userID uuid.UUID, input *usecase.ListTodosInput) ([]*entity.Todo, error) {
	filter := repository.TodoFilter{}
	if input != nil {
		filter.Completed = input.Completed
		filter.Search = strings.TrimSpace(input.Search)
	}

	var todos []*entity.Todo
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.TodoRepo().FindByUser(ctx, userID, filter)
		if findErr != nil {
			return findErr
		}
		todos = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	return todos, nil
}

// Get returns one of the user's todos by ID.
func (srv *todoService) Get(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	var todo *entity.Todo
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.TodoRepo().FindByID(ctx, userID, todoID)
		if findErr != nil {
			return findErr
		}
		todo = found

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, domainerrors.ErrTodoNotFound.WrapMessage("todo does not exist")
		}

		return nil, errors.Wrap(err, "failed to load todo")
	}

	return todo, nil
}

// Create validates and persists a new todo owned by the user.
func (srv *todoService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	todo := &entity.Todo{
		UserID:      userID,
		Description: description,
		Completed:   input.Completed,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TodoRepo().Create(ctx, todo)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create todo", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Todo created", slog.Any("todoID", todo.ID))

	return todo, nil
}

// Update applies a partial update. Nil fields keep their stored value, and a
// present description is validated like a new one before anything is written.
func (srv *todoService) Update(ctx context.Context, userID, todoID uuid.UUID, input *usecase.UpdateTodoInput) (*entity.Todo, error) {
	var description *string
	if input.Description != nil {
		normalized, err := normalizeDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		description = &normalized
	}

	var updated *entity.Todo
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		todoRepo := repoFactory.TodoRepo()

		todo, findErr := todoRepo.FindByID(ctx, userID, todoID)
		if findErr != nil {
			return findErr
		}

		if description != nil {
			todo.Description = *description
		}
		if input.Completed != nil {
			todo.Completed = *input.Completed
		}

		if updateErr := todoRepo.Update(ctx, todo); updateErr != nil {
			return updateErr
		}

		updated = todo

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, domainerrors.ErrTodoNotFound.WrapMessage("todo does not exist")
		}
		srv.log(ctx).Error("Failed to update todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return nil, err
	}

	return updated, nil
}

// Delete removes one of the user's todos.
func (srv *todoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TodoRepo().Delete(ctx, userID, todoID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound.WrapMessage("todo does not exist")
		}
		srv.log(ctx).Error("Failed to delete todo", slog.Any("todoID", todoID), slog.Any("error", err))

		return err
	}

	return nil
}

// normalizeDescription trims surrounding whitespace and enforces the length bounds.
func normalizeDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("description must not be blank")
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return "", domainerrors.ErrValidationFailed.WrapMessage("description is too long")
	}

	return trimmed, nil
}
