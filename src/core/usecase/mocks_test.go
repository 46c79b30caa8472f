package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"jokesapp/src/core/domain"
)

// Mock repositories using the function-fields pattern: each method delegates
// to an optional hook and otherwise returns a benign default.

type mockJokeRepo struct {
	countFn    func(ctx context.Context) (int64, error)
	atOffsetFn func(ctx context.Context, offset int64) (*domain.Joke, error)
	getFn      func(ctx context.Context, jokeID string) (*domain.Joke, error)
	listFn     func(ctx context.Context) ([]domain.JokeRef, error)
	createFn   func(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error)
}

func (m *mockJokeRepo) Health(ctx context.Context) error { return nil }

func (m *mockJokeRepo) CountJokes(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockJokeRepo) JokeAtOffset(ctx context.Context, offset int64) (*domain.Joke, error) {
	if m.atOffsetFn != nil {
		return m.atOffsetFn(ctx, offset)
	}
	return nil, domain.NewNotFoundError("joke")
}

func (m *mockJokeRepo) GetJokeByID(ctx context.Context, jokeID string) (*domain.Joke, error) {
	if m.getFn != nil {
		return m.getFn(ctx, jokeID)
	}
	return nil, domain.NewNotFoundError("joke")
}

func (m *mockJokeRepo) ListJokes(ctx context.Context) ([]domain.JokeRef, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockJokeRepo) CreateJoke(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, content, jokesterID)
	}
	return &domain.Joke{
		ID:         "joke-1",
		Name:       name,
		Content:    content,
		JokesterID: jokesterID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

type mockUserRepo struct {
	getByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

func (m *mockUserRepo) Health(ctx context.Context) error { return nil }

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *mockUserRepo) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{
		ID:           "user-1",
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
