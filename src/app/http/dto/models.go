// Package dto holds the response shapes the API renders from domain entities.
// Form inputs are urlencoded and parsed field-by-field at the handler, so
// there are no bound request structs here.
package dto

import (
	"time"

	"jokesapp/src/core/domain"
)

// JokeResponse is a full joke payload.
type JokeResponse struct {
	ID         string    `json:"joke_id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	JokesterID string    `json:"jokester_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// JokeFromDomain maps a domain joke onto the response shape.
func JokeFromDomain(j *domain.Joke) JokeResponse {
	return JokeResponse{
		ID:         j.ID,
		Name:       j.Name,
		Content:    j.Content,
		JokesterID: j.JokesterID,
		CreatedAt:  j.CreatedAt,
	}
}

// JokeListItem is the listing form of a joke (sidebar links).
type JokeListItem struct {
	ID   string `json:"joke_id"`
	Name string `json:"name"`
}

// UserResponse is the current-user payload. It never carries the password hash.
type UserResponse struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
}
