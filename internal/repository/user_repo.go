package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"happy_thoughts/internal/models"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, access_token) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, access_token FROM users WHERE username = ?`
	selectUserByTokenSQL    = `SELECT id, username, password_hash, access_token FROM users WHERE access_token = ?`
)

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. Checks the driver error code first, with a message fallback
// for wrapped or driver-agnostic errors.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user. A username collision surfaces as
// ErrDuplicate so callers can distinguish it from generic failures.
func (r *UserRepository) Create(username, passwordHash, accessToken string) (*models.User, error) {
	res, err := r.db.Exec(insertUserSQL, username, passwordHash, accessToken)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return &models.User{
		ID:           int(lastID),
		Username:     username,
		PasswordHash: passwordHash,
		AccessToken:  accessToken,
	}, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRow(selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByToken fetches a user by access token. Returns (nil, nil) if not found.
func (r *UserRepository) GetByToken(token string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRow(selectUserByTokenSQL, token))
	if err != nil {
		return nil, fmt.Errorf("select user by token: %w", err)
	}
	return u, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.AccessToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
