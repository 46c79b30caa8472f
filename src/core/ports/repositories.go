// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"jokesapp/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// JokeRepository covers joke persistence. Jokes are insert-only.
type JokeRepository interface {
	Repository

	// CountJokes returns the total number of jokes.
	CountJokes(ctx context.Context) (int64, error)

	// JokeAtOffset fetches exactly one joke at the given row offset in
	// creation order. Returns a not-found error when the offset is past the
	// end of the table.
	JokeAtOffset(ctx context.Context, offset int64) (*domain.Joke, error)

	GetJokeByID(ctx context.Context, jokeID string) (*domain.Joke, error)
	ListJokes(ctx context.Context) ([]domain.JokeRef, error)
	CreateJoke(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error)
}

// UserRepository covers account persistence.
type UserRepository interface {
	Repository

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateUser inserts a new account. Returns a conflict error when the
	// username is already taken (unique index).
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

// AppRepository is the composite surface the server wires against a single
// backing store.
type AppRepository interface {
	JokeRepository
	UserRepository
}
