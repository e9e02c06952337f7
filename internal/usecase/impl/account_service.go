// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"taskpad/config"
	deliverycontext "taskpad/internal/delivery/context"
	"taskpad/internal/domain/entity"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/repository"
	"taskpad/internal/domain/service"
	"taskpad/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword feeds the digest that Authenticate burns a comparison
// against when the email is unknown, so both failure paths cost the same.
const dummyPassword = "taskpad-credential-padding"

// maxPasswordLength is bcrypt's input limit; longer plaintexts make
// GenerateFromPassword fail outright.
const maxPasswordLength = 72

// accountService implements the AccountUsecase interface. It owns the user
// record and its token ledger; all ledger mutations run inside transactions.
type accountService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	codec             service.TokenCodec
	minPasswordLength int
	dummyDigest       string
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Codec     service.TokenCodec
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) (usecase.AccountUsecase, error) {
	minPasswordLength := 0
	if params.Config != nil && params.Config.Auth != nil {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	dummyDigest, err := params.Hasher.Hash(dummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy digest")
	}

	return &accountService{
		txManager:         params.TxManager,
		hasher:            params.Hasher,
		codec:             params.Codec,
		minPasswordLength: minPasswordLength,
		dummyDigest:       dummyDigest,
		logger:            params.Logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The password is only hashed after the
// length check and the duplicate probe both pass, so a rejected registration
// never computes a digest or persists a row. The database unique constraint
// remains authoritative if a concurrent registration slips past the probe.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AccountView, error) {
	email := normalizeEmail(input.Email)

	srv.log(ctx).Debug("Starting registration", slog.String("email", email))

	if len(input.Password) < srv.minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password is below the minimum length")
	}
	if len(input.Password) > maxPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password exceeds the maximum length")
	}

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check for existing email")
		}

		digest, hashErr := srv.hasher.Hash(input.Password)
		if hashErr != nil {
			return errors.Wrap(hashErr, "failed to hash password during registration")
		}

		newUser := &entity.User{
			Email:          email,
			PasswordDigest: digest,
		}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return createErr
		}

		registered = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return usecase.NewAccountView(registered), nil
}

// Authenticate verifies credentials. Unknown email and wrong password take
// comparable code paths (a bcrypt comparison happens either way) and return
// the identical error, so callers cannot probe which emails exist.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.loadUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.dummyDigest)
			srv.log(ctx).Warn("Authentication failed", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authentication failed")
		}

		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	// bcrypt is CPU-bound, so the comparison runs outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordDigest) {
		srv.log(ctx).Warn("Authentication failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authentication failed")
	}

	return user, nil
}

// IssueToken mints a session token and appends it to the user's ledger.
// The entry is its own row inserted transactionally, so two concurrent
// logins for the same user both survive.
func (srv *accountService) IssueToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := srv.codec.Encode(user.ID, entity.TokenPurposeAuth)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode session token")
	}

	entry := &entity.SessionToken{
		UserID:  user.ID,
		Purpose: entity.TokenPurposeAuth,
		Token:   token,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionTokenRepo().Append(ctx, entry)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return "", err
	}

	user.Tokens = append(user.Tokens, entry)

	srv.log(ctx).Debug("Session token issued", slog.Any("userID", user.ID))

	return token, nil
}

// ResolveToken maps a presented token to its live user. The codec failing,
// or the subject no longer existing, means the token is invalid; the user
// existing without the exact token in their ledger means it was revoked.
// A valid signature alone is not a session; only the exact stored string counts.
func (srv *accountService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	subjectID, err := srv.codec.Decode(token, entity.TokenPurposeAuth)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.UserRepo().FindByID(ctx, subjectID)
		if findErr != nil {
			return findErr
		}
		user = found

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrTokenInvalid.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	if !user.HasToken(token) {
		return nil, domainerrors.ErrTokenRevoked.WrapMessage("session token is not in the ledger")
	}

	return user, nil
}

// RevokeToken removes exactly the given session from the user's ledger.
// Revoking a token that is already gone succeeds silently: logout is idempotent.
func (srv *accountService) RevokeToken(ctx context.Context, user *entity.User, token string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionTokenRepo().Remove(ctx, user.ID, token)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Session token revoked", slog.Any("userID", user.ID))

	return nil
}

// RevokeAllTokens ends every session the user holds.
func (srv *accountService) RevokeAllTokens(ctx context.Context, user *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionTokenRepo().RemoveAllForUser(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all session tokens", slog.Any("userID", user.ID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("All session tokens revoked", slog.Any("userID", user.ID))

	return nil
}

func (srv *accountService) loadUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user *entity.User

	// Load from primary in a short transaction to avoid stale reads.
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.UserRepo().FindByEmail(ctx, email)
		if findErr != nil {
			return findErr
		}
		user = found

		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// normalizeEmail lowercases and trims so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
