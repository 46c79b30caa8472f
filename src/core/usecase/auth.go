package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"jokesapp/src/core/domain"
	"jokesapp/src/core/ports"
)

// AuthService handles login and registration.
type AuthService struct {
	users ports.UserRepository
	log   *slog.Logger
}

func NewAuthService(users ports.UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Login verifies a username/password pair. Unknown usernames and wrong
// passwords fail with the same credentials error so the response cannot leak
// which of the two was at fault.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewCredentialsError()
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// Register creates a new account. The exists-check and the insert are two
// independent store calls; the unique index on username backstops the race,
// surfacing as the same conflict error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, domain.NewConflictError("username already taken")
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// UserByID returns the account for a session's user ID.
func (s *AuthService) UserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
