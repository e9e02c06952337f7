package impl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/repository"

	"github.com/google/uuid"
)

// memoryStore backs the fake repositories. The transaction manager holds the
// mutex for the whole callback, so each Execute sees and mutates a consistent
// snapshot, the same isolation a real transaction would give the services.
type memoryStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	emails map[string]uuid.UUID
	tokens map[uuid.UUID][]*entity.SessionToken
	todos  map[uuid.UUID]*entity.Todo
	seq    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[uuid.UUID]*entity.User),
		emails: make(map[string]uuid.UUID),
		tokens: make(map[uuid.UUID][]*entity.SessionToken),
		todos:  make(map[uuid.UUID]*entity.Todo),
	}
}

// nextTime hands out strictly increasing timestamps so newest-first ordering
// is deterministic even when the clock does not advance between calls.
func (s *memoryStore) nextTime() time.Time {
	s.seq++

	return time.Unix(0, int64(s.seq))
}

func (s *memoryStore) userSnapshot(id uuid.UUID) *entity.User {
	stored, ok := s.users[id]
	if !ok {
		return nil
	}

	snapshot := *stored
	snapshot.Tokens = make([]*entity.SessionToken, len(s.tokens[id]))
	for i, token := range s.tokens[id] {
		copied := *token
		snapshot.Tokens[i] = &copied
	}

	return &snapshot
}

// fakeTransactionManager serializes callbacks over the shared store.
type fakeTransactionManager struct {
	store *memoryStore
}

func newFakeTransactionManager(store *memoryStore) repository.TransactionManager {
	return &fakeTransactionManager{store: store}
}

func (m *fakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	return fn(&fakeRepositoryFactory{store: m.store})
}

type fakeRepositoryFactory struct {
	store *memoryStore
}

func (f *fakeRepositoryFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepository{store: f.store}
}

func (f *fakeRepositoryFactory) SessionTokenRepo() repository.SessionTokenRepository {
	return &fakeSessionTokenRepository{store: f.store}
}

func (f *fakeRepositoryFactory) TodoRepo() repository.TodoRepository {
	return &fakeTodoRepository{store: f.store}
}

type fakeUserRepository struct {
	store *memoryStore
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user := r.store.userSnapshot(id)
	if user == nil {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	id, ok := r.store.emails[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.store.userSnapshot(id), nil
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	if _, exists := r.store.emails[user.Email]; exists {
		return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.store.nextTime()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.store.users[user.ID] = &stored
	r.store.emails[user.Email] = user.ID

	return nil
}

type fakeSessionTokenRepository struct {
	store *memoryStore
}

func (r *fakeSessionTokenRepository) Append(_ context.Context, token *entity.SessionToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = r.store.nextTime()

	stored := *token
	r.store.tokens[token.UserID] = append(r.store.tokens[token.UserID], &stored)

	return nil
}

func (r *fakeSessionTokenRepository) Remove(_ context.Context, userID uuid.UUID, token string) error {
	kept := r.store.tokens[userID][:0]
	for _, entry := range r.store.tokens[userID] {
		if entry.Token != token {
			kept = append(kept, entry)
		}
	}
	r.store.tokens[userID] = kept

	return nil
}

func (r *fakeSessionTokenRepository) RemoveAllForUser(_ context.Context, userID uuid.UUID) error {
	delete(r.store.tokens, userID)

	return nil
}

type fakeTodoRepository struct {
	store *memoryStore
}

func (r *fakeTodoRepository) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Todo, error) {
	todo, ok := r.store.todos[id]
	if !ok || todo.UserID != userID {
		return nil, repository.ErrTodoNotFound
	}

	snapshot := *todo

	return &snapshot, nil
}

func (r *fakeTodoRepository) FindByUser(_ context.Context, userID uuid.UUID, filter repository.TodoFilter) ([]*entity.Todo, error) {
	var todos []*entity.Todo
	for _, todo := range r.store.todos {
		if todo.UserID != userID {
			continue
		}
		if filter.Completed != nil && todo.Completed != *filter.Completed {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(todo.Description), strings.ToLower(filter.Search)) {
			continue
		}

		snapshot := *todo
		todos = append(todos, &snapshot)
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})

	return todos, nil
}

func (r *fakeTodoRepository) Create(_ context.Context, todo *entity.Todo) error {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	todo.CreatedAt = r.store.nextTime()
	todo.UpdatedAt = todo.CreatedAt

	stored := *todo
	r.store.todos[todo.ID] = &stored

	return nil
}

func (r *fakeTodoRepository) Update(_ context.Context, todo *entity.Todo) error {
	existing, ok := r.store.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return repository.ErrTodoNotFound
	}

	todo.CreatedAt = existing.CreatedAt
	todo.UpdatedAt = r.store.nextTime()

	stored := *todo
	r.store.todos[todo.ID] = &stored

	return nil
}

func (r *fakeTodoRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	existing, ok := r.store.todos[id]
	if !ok || existing.UserID != userID {
		return repository.ErrTodoNotFound
	}

	delete(r.store.todos, id)

	return nil
}
