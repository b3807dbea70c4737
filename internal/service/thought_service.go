package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"happy_thoughts/internal/models"
	"happy_thoughts/internal/repository"

	"github.com/google/uuid"
)

const (
	minMessageLen   = 5
	maxMessageLen   = 140
	defaultCategory = "General"
)

// ThoughtService implements the query and mutation rules on posts on
// top of the persisted store.
type ThoughtService struct {
	thoughts repository.Thoughts
}

func NewThoughtService(repo repository.Thoughts) *ThoughtService {
	return &ThoughtService{thoughts: repo}
}

var _ Thoughts = (*ThoughtService)(nil)

// validateMessage enforces the 5–140 character invariant.
func validateMessage(msg string) *ValidationError {
	if msg == "" {
		return validationErr("message", "is required")
	}
	if n := utf8.RuneCountInString(msg); n < minMessageLen || n > maxMessageLen {
		return validationErr("message", fmt.Sprintf("must be between %d and %d characters", minMessageLen, maxMessageLen))
	}
	return nil
}

// parseID rejects identifiers that cannot possibly resolve.
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return u.String(), nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// List runs the filtered, sorted, paginated query and reports the
// filtered set's total alongside the page.
func (s *ThoughtService) List(ctx context.Context, q ListQuery) (ThoughtPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	items, total, err := s.thoughts.List(ctx, repository.ThoughtFilter{
		MinHearts: q.MinHearts,
		Category:  q.Category,
		Sort:      q.Sort,
		Offset:    (page - 1) * size,
		Limit:     size,
	})
	if err != nil {
		return ThoughtPage{}, err
	}
	return ThoughtPage{Page: page, Total: total, Results: items}, nil
}

func (s *ThoughtService) Get(ctx context.Context, id string) (models.Thought, error) {
	id, err := parseID(id)
	if err != nil {
		return models.Thought{}, err
	}
	t, err := s.thoughts.GetByID(ctx, id)
	if err != nil {
		return models.Thought{}, mapStoreErr(err)
	}
	return t, nil
}

// Create validates the payload and persists a new thought attributed to
// the author, or anonymous when author is nil. Hearts always start at 0.
func (s *ThoughtService) Create(ctx context.Context, in NewThought, author *models.User) (models.Thought, error) {
	msg := strings.TrimSpace(in.Message)
	if verr := validateMessage(msg); verr != nil {
		return models.Thought{}, verr
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}

	t := models.Thought{
		Message:  msg,
		Category: category,
	}
	if author != nil {
		t.CreatedBy = author.Username
	}

	created, err := s.thoughts.Create(ctx, t)
	if err != nil {
		return models.Thought{}, err
	}
	return created, nil
}

// Update applies a non-empty patch to an owned thought. The ownership
// check runs before any field is touched.
func (s *ThoughtService) Update(ctx context.Context, id string, edit ThoughtEdit, requester *models.User) (models.Thought, error) {
	id, err := parseID(id)
	if err != nil {
		return models.Thought{}, err
	}
	if edit.Message == nil && edit.Category == nil {
		return models.Thought{}, validationErr("body", "at least one of message, category is required")
	}

	patch := repository.ThoughtPatch{Category: edit.Category}
	if edit.Message != nil {
		msg := strings.TrimSpace(*edit.Message)
		if verr := validateMessage(msg); verr != nil {
			return models.Thought{}, verr
		}
		patch.Message = &msg
	}

	current, err := s.thoughts.GetByID(ctx, id)
	if err != nil {
		return models.Thought{}, mapStoreErr(err)
	}
	if !canMutate(current, requester) {
		return models.Thought{}, ErrForbidden
	}

	updated, err := s.thoughts.Update(ctx, id, patch)
	if err != nil {
		return models.Thought{}, mapStoreErr(err)
	}
	return updated, nil
}

// Delete removes an owned thought.
func (s *ThoughtService) Delete(ctx context.Context, id string, requester *models.User) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	current, err := s.thoughts.GetByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if !canMutate(current, requester) {
		return ErrForbidden
	}

	return mapStoreErr(s.thoughts.Delete(ctx, id))
}

// Like increments the hearts counter by exactly 1. No ownership check;
// any caller may like any thought.
func (s *ThoughtService) Like(ctx context.Context, id string) (models.Thought, error) {
	id, err := parseID(id)
	if err != nil {
		return models.Thought{}, err
	}
	t, err := s.thoughts.IncrementHearts(ctx, id)
	if err != nil {
		return models.Thought{}, mapStoreErr(err)
	}
	return t, nil
}
