package repository

import (
	"context"
	"database/sql"
	"errors"

	"happy_thoughts/internal/models"
)

// Store-level sentinel errors. The service layer maps these onto the
// API error taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique constraint violated")
)

// SortOrder selects how a thought listing is ordered.
type SortOrder string

const (
	SortNone   SortOrder = ""       // insertion order
	SortHearts SortOrder = "hearts" // most hearts first
	SortDate   SortOrder = "date"   // newest first
)

// ThoughtFilter is a conjunction of optional predicates plus paging.
// MinHearts <= 0 and empty Category mean "no predicate". Limit <= 0
// means "no paging".
type ThoughtFilter struct {
	MinHearts int
	Category  string // matched case-insensitively
	Sort      SortOrder
	Offset    int
	Limit     int
}

// ThoughtPatch holds the mutable fields of an update. Nil pointers are
// left unchanged.
type ThoughtPatch struct {
	Message  *string
	Category *string
}

type Thoughts interface {
	List(ctx context.Context, f ThoughtFilter) ([]models.Thought, int, error)
	GetByID(ctx context.Context, id string) (models.Thought, error)
	Create(ctx context.Context, t models.Thought) (models.Thought, error)
	Update(ctx context.Context, id string, patch ThoughtPatch) (models.Thought, error)
	Delete(ctx context.Context, id string) error
	IncrementHearts(ctx context.Context, id string) (models.Thought, error)
}

type Users interface {
	Create(username, passwordHash, accessToken string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByToken(token string) (*models.User, error)
}

type Repository struct {
	Thoughts Thoughts
	Users    Users
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Thoughts: NewThoughtSQLite(db),
		Users:    NewUserRepository(db),
	}
}
