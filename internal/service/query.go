package service

import (
	"happy_thoughts/internal/models"
	"happy_thoughts/internal/repository"
)

// DefaultPageSize bounds unpaginated listings; the query translator
// falls back to it when the limit parameter is absent or malformed.
const DefaultPageSize = 20

// ListQuery describes one thoughts listing: optional filters, a sort
// order and 1-indexed pagination.
type ListQuery struct {
	MinHearts int    // <= 0 means no threshold
	Category  string // empty means no category filter
	Sort      repository.SortOrder
	Page      int
	PageSize  int
}

// ThoughtPage is one page of a filtered, sorted listing. Total is the
// size of the filtered set before pagination.
type ThoughtPage struct {
	Page    int              `json:"page"`
	Total   int              `json:"total"`
	Results []models.Thought `json:"results"`
}

// NewThought is the payload for creating a post.
type NewThought struct {
	Message  string
	Category string
}

// ThoughtEdit holds the mutable fields of an update; nil means "leave
// unchanged". At least one field must be set.
type ThoughtEdit struct {
	Message  *string
	Category *string
}
