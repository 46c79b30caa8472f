package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jokesapp/src/app/server"
	"jokesapp/src/core/domain"
	"jokesapp/src/infra/config"
	"jokesapp/src/infra/logger"
	"jokesapp/src/infra/session"
)

// mockRepo implements ports.AppRepository with the function-fields pattern.
type mockRepo struct {
	countFn         func(ctx context.Context) (int64, error)
	atOffsetFn      func(ctx context.Context, offset int64) (*domain.Joke, error)
	getJokeFn       func(ctx context.Context, jokeID string) (*domain.Joke, error)
	listFn          func(ctx context.Context) ([]domain.JokeRef, error)
	createJokeFn    func(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error)
	getByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	createUserFn    func(ctx context.Context, username, passwordHash string) (*domain.User, error)
}

func (m *mockRepo) Health(ctx context.Context) error { return nil }

func (m *mockRepo) CountJokes(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockRepo) JokeAtOffset(ctx context.Context, offset int64) (*domain.Joke, error) {
	if m.atOffsetFn != nil {
		return m.atOffsetFn(ctx, offset)
	}
	return nil, domain.NewNotFoundError("joke")
}

func (m *mockRepo) GetJokeByID(ctx context.Context, jokeID string) (*domain.Joke, error) {
	if m.getJokeFn != nil {
		return m.getJokeFn(ctx, jokeID)
	}
	return nil, domain.NewNotFoundError("joke")
}

func (m *mockRepo) ListJokes(ctx context.Context) ([]domain.JokeRef, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRepo) CreateJoke(ctx context.Context, name, content, jokesterID string) (*domain.Joke, error) {
	if m.createJokeFn != nil {
		return m.createJokeFn(ctx, name, content, jokesterID)
	}
	return &domain.Joke{ID: "joke-1", Name: name, Content: content, JokesterID: jokesterID}, nil
}

func (m *mockRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID)
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.NewNotFoundError("user")
}

func (m *mockRepo) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: "user-1", Username: username, PasswordHash: passwordHash}, nil
}

const testCookieName = "RJ_session"

// newTestRouter wires the full router against a mock repository.
func newTestRouter(t *testing.T, repo *mockRepo) (*gin.Engine, *session.Manager) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			CookieName: testCookieName,
			TTL:        time.Hour,
		},
	}

	log := logger.NewWithWriter(cfg.Log, io.Discard)
	sessions, err := session.NewManager(cfg.Session, log)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	srv := server.New(cfg, log, repo, sessions)
	return srv.Router(), sessions
}

// sessionCookie mints a valid session cookie for the given user.
func sessionCookie(t *testing.T, sessions *session.Manager, userID string) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue session token: %v", err)
	}
	return &http.Cookie{Name: testCookieName, Value: token}
}

// postForm sends an urlencoded POST through the router.
func postForm(router *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// get sends a GET through the router.
func get(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// formState mirrors the re-render payload failed submissions return.
type formState struct {
	FieldErrors map[string]string `json:"field_errors"`
	Fields      map[string]string `json:"fields"`
	FormError   string            `json:"form_error"`
}
