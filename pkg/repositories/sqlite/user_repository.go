package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	srvErrors "sqlrunner/pkg/errors"
	"sqlrunner/pkg/models"
	"sqlrunner/pkg/repositories"
)

// userRepository implements repositories.UserRepository on the users table.
type userRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB, logger zerolog.Logger) repositories.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new account record. A unique-constraint violation on the
// username column surfaces as the already-registered error so that races
// between concurrent signups do not leak as internal errors.
func (r *userRepository) Create(ctx context.Context, record *models.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (user_id, username, email, full_name, hashed_password, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.UserID, record.Username, record.Email, record.FullName,
		record.HashedPassword, record.IsActive, record.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return srvErrors.ErrUserExists
		}
		return srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to create user")
	}
	return nil
}

// GetByUsername looks up an account by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.UserRecord, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail looks up an account by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*models.UserRecord, error) {
	query := `SELECT user_id, username, email, full_name, hashed_password, is_active, created_at
	          FROM users WHERE ` + column + ` = ?`

	var record models.UserRecord
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&record.UserID, &record.Username, &record.Email, &record.FullName,
		&record.HashedPassword, &record.IsActive, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, srvErrors.ErrUserNotFound
	}
	if err != nil {
		return nil, srvErrors.Wrap(err, srvErrors.CodeInternal, "failed to look up user")
	}

	return &record, nil
}
