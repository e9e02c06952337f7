package postgres

import (
	"context"

	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/repository"
	"taskpad/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionTokenRepository implements the domain.SessionTokenRepository interface.
type sessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository is the constructor for sessionTokenRepository.
func NewSessionTokenRepository(db *gorm.DB) repository.SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

// Append adds a new ledger entry. Each entry is its own row, so concurrent
// logins for the same user both insert and neither is lost.
func (repo *sessionTokenRepository) Append(ctx context.Context, token *entity.SessionToken) error {
	tokenM := &model.SessionTokenModel{
		UserID:  token.UserID,
		Purpose: token.Purpose,
		Token:   token.Token,
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required token information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append session token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// Remove deletes the exact ledger entry for the user. Deleting an entry that
// is already gone is a no-op: logout is idempotent.
func (repo *sessionTokenRepository) Remove(ctx context.Context, userID uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.SessionTokenModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove session token")
	}

	return nil
}

// RemoveAllForUser clears the user's entire ledger.
func (repo *sessionTokenRepository) RemoveAllForUser(ctx context.Context, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionTokenModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove session tokens")
	}

	return nil
}
