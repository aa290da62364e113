package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/service/auth"
	"github.com/fennwick/libris-api/internal/store"
)

// AccountService provides account registration and authentication.
type AccountService interface {
	// Register creates a new account with the given email and password.
	// The password is stored only as a salted one-way hash and the role
	// defaults to domain.DefaultRole.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies the given credentials against the stored hash.
	// A missing account and a wrong password both return
	// ErrInvalidCredentials; successful authentication establishes no
	// session or token.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	db               *sql.DB
	logger           *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	return &AccountServiceImpl{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		db:               db,
		logger:           logger.With("component", "account_service"),
	}
}

// Register creates a new account.
// The duplicate pre-check and the insert run in one transaction so the
// registration commits atomically.
func (s *AccountServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("rejected invalid registration input",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("account registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email",
				"email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("account authenticated",
		"user_id", user.ID)

	return user, nil
}
