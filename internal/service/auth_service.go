package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"happy_thoughts/internal/models"
	"happy_thoughts/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 5
)

// AuthService handles registration, login and token resolution.
type AuthService struct {
	users repository.Users
}

func NewAuthService(repo repository.Users) *AuthService {
	return &AuthService{users: repo}
}

var _ Authorization = (*AuthService)(nil)

// Register validates the credentials, hashes the password and persists
// the user with a freshly issued access token. A username collision is
// reported as ErrDuplicateUsername.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, validationErr("username", fmt.Sprintf("must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, validationErr("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(username, hash, newAccessToken())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns the stored user. A missing
// user and a failed hash comparison produce the same error, so the
// response never reveals which usernames exist.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResolveToken looks up the user owning an access token. Pure lookup,
// no side effects.
func (s *AuthService) ResolveToken(token string) (*models.User, error) {
	u, err := s.users.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownToken
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: newAccessToken issues a fresh opaque bearer credential.
func newAccessToken() string {
	return uuid.NewString()
}
