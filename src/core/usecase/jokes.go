package usecase

import (
	"context"
	"log/slog"
	"math/rand"

	"jokesapp/src/core/domain"
	"jokesapp/src/core/ports"
)

// JokeService handles reading and submitting jokes.
type JokeService struct {
	repo ports.JokeRepository
	log  *slog.Logger
}

func NewJokeService(repo ports.JokeRepository, log *slog.Logger) *JokeService {
	return &JokeService{repo: repo, log: log}
}

// Random returns one joke drawn uniformly over the current row count.
// The count and the windowed fetch are two independent queries; a row
// inserted or removed in between can shift the window by one. Accepted.
func (s *JokeService) Random(ctx context.Context) (*domain.Joke, error) {
	count, err := s.repo.CountJokes(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.NewNotFoundError("joke")
	}

	offset := rand.Int63n(count)
	joke, err := s.repo.JokeAtOffset(ctx, offset)
	if err != nil {
		return nil, err
	}
	return joke, nil
}

// Get returns a single joke by ID.
func (s *JokeService) Get(ctx context.Context, jokeID string) (*domain.Joke, error) {
	return s.repo.GetJokeByID(ctx, jokeID)
}

// List returns all jokes in listing form, newest first.
func (s *JokeService) List(ctx context.Context) ([]domain.JokeRef, error) {
	return s.repo.ListJokes(ctx)
}

// Submit creates a joke attributed to the given user. Field validation has
// already happened at the handler boundary by the time this runs.
func (s *JokeService) Submit(ctx context.Context, jokesterID, name, content string) (*domain.Joke, error) {
	joke, err := s.repo.CreateJoke(ctx, name, content, jokesterID)
	if err != nil {
		return nil, err
	}
	s.log.Info("joke created", "joke_id", joke.ID, "jokester_id", jokesterID)
	return joke, nil
}
