package models

import "time"

// Thought is a short user-authored post with a like counter.
type Thought struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`             // 5–140 characters
	Hearts    int       `json:"hearts"`              // never negative
	Category  string    `json:"category"`            // defaults to "General"
	CreatedBy string    `json:"createdBy,omitempty"` // username; empty for anonymous posts
	CreatedAt time.Time `json:"createdAt"`
}
