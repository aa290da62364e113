package store

import (
	"context"
	"database/sql"

	"github.com/fennwick/libris-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Users are created at registration and read at login; update and delete
// are deliberately absent from the interface because no operation in the
// account lifecycle requires them.
type UserStore interface {
	// Create saves a new user to the store and fills in the store-assigned
	// ID. It handles domain validation and password hashing internally.
	// Email uniqueness is enforced by a pre-check against the existing
	// rows, not by a database constraint, so callers should run Create
	// inside a transaction.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address (exact match).
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
