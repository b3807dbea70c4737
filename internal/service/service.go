package service

import (
	"context"

	"happy_thoughts/internal/models"
	"happy_thoughts/internal/repository"
)

type Authorization interface {
	Register(username, password string) (*models.User, error)
	Login(username, password string) (*models.User, error)
	ResolveToken(token string) (*models.User, error)
}

// Thoughts exposes the query and mutation operations on posts. The
// requester argument carries the authenticated identity where ownership
// applies; Like deliberately takes none.
type Thoughts interface {
	List(ctx context.Context, q ListQuery) (ThoughtPage, error)
	Get(ctx context.Context, id string) (models.Thought, error)
	Create(ctx context.Context, in NewThought, author *models.User) (models.Thought, error)
	Update(ctx context.Context, id string, edit ThoughtEdit, requester *models.User) (models.Thought, error)
	Delete(ctx context.Context, id string, requester *models.User) error
	Like(ctx context.Context, id string) (models.Thought, error)
}

type Service struct {
	Thoughts
	Authorization
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Thoughts:      NewThoughtService(repos.Thoughts),
		Authorization: NewAuthService(repos.Users),
	}
}
