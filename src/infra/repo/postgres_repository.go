// Package repo contains the PostgreSQL adapters for the core repository ports.
package repo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jokesapp/src/core/domain"
	"jokesapp/src/core/ports"
	"jokesapp/src/infra/db"
)

// PostgresRepository implements ports.AppRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ ports.AppRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Jokes

func (r *PostgresRepository) CountJokes(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM jokes`
	var count int64
	if err := r.pool.QueryRow(ctx, q).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) JokeAtOffset(ctx context.Context, offset int64) (*domain.Joke, error) {
	// Creation order with joke_id as tiebreaker keeps offsets stable for
	// rows sharing a timestamp.
	const q = `
		SELECT joke_id, name, content, jokester_id, created_at, updated_at
		FROM jokes
		ORDER BY created_at, joke_id
		LIMIT 1 OFFSET $1
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, offset).Scan(
		&j.ID, &j.Name, &j.Content, &j.JokesterID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) GetJokeByID(ctx context.Context, jokeID string) (*domain.Joke, error) {
	const q = `
		SELECT joke_id, name, content, jokester_id, created_at, updated_at
		FROM jokes
		WHERE joke_id = $1
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, jokeID).Scan(
		&j.ID, &j.Name, &j.Content, &j.JokesterID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("joke")
		}
		return nil, err
	}
	return &j, nil
}

func (r *PostgresRepository) ListJokes(ctx context.Context) ([]domain.JokeRef, error) {
	const q = `
		SELECT joke_id, name
		FROM jokes
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.JokeRef
	for rows.Next() {
		var ref domain.JokeRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *PostgresRepository) CreateJoke(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error) {
	const q = `
		INSERT INTO jokes (joke_id, name, content, jokester_id)
		VALUES ($1, $2, $3, $4)
		RETURNING joke_id, name, content, jokester_id, created_at, updated_at
	`
	var j domain.Joke
	err := r.pool.QueryRow(ctx, q, uuid.New().String(), name, content, jokesterID).Scan(
		&j.ID, &j.Name, &j.Content, &j.JokesterID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Users

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, userID).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
		SELECT user_id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (user_id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, username, password_hash, created_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, uuid.New().String(), username, passwordHash).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("username already taken")
		}
		return nil, err
	}
	return &u, nil
}
