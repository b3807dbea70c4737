package service

import "happy_thoughts/internal/models"

// canMutate is the single ownership predicate for update and delete.
// Likes and reads never go through it. Anonymous thoughts carry an
// empty CreatedBy and therefore match no requester.
func canMutate(t models.Thought, requester *models.User) bool {
	return requester != nil && requester.Username != "" && t.CreatedBy == requester.Username
}
