package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"jokesapp/src/core/domain"
)

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func loginForm(loginType, username, password string) url.Values {
	return url.Values{
		"loginType": {loginType},
		"username":  {username},
		"password":  {password},
	}
}

func TestLoginMalformedForm(t *testing.T) {
	router, _ := newTestRouter(t, &mockRepo{})

	rec := postForm(router, "/login", url.Values{"username": {"kody"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var state formState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if state.FormError != "Form not submitted correctly" {
		t.Errorf("expected malformed-form error, got %q", state.FormError)
	}
}

func TestLoginFieldValidationRunsBeforeLookup(t *testing.T) {
	repo := &mockRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			t.Fatal("GetUserByUsername must not be called before validation passes")
			return nil, nil
		},
	}
	router, _ := newTestRouter(t, repo)

	rec := postForm(router, "/login", loginForm("register", "ab", "secret"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var state formState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if state.FieldErrors["username"] != "Username must be at least 3 characters" {
		t.Errorf("username error = %q", state.FieldErrors["username"])
	}
	if state.FieldErrors["password"] != "Password must be at least 6 characters" {
		t.Errorf("password error = %q", state.FieldErrors["password"])
	}
	if state.Fields["username"] != "ab" {
		t.Errorf("username not echoed: %+v", state.Fields)
	}
	if _, echoed := state.Fields["password"]; echoed {
		t.Error("password must never be echoed back")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	repo := &mockRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "kody" {
				return &domain.User{ID: "user-1", Username: username, PasswordHash: bcryptHash(t, "rightpassword")}, nil
			}
			return nil, domain.NewNotFoundError("user")
		},
	}
	router, _ := newTestRouter(t, repo)

	decode := func(body []byte) string {
		var state formState
		if err := json.Unmarshal(body, &state); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		return state.FormError
	}

	unknownRec := postForm(router, "/login", loginForm("login", "ghost", "whatever1"))
	wrongPwRec := postForm(router, "/login", loginForm("login", "kody", "wrongpassword"))

	if unknownRec.Code != http.StatusBadRequest || wrongPwRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400s, got %d and %d", unknownRec.Code, wrongPwRec.Code)
	}
	unknownMsg := decode(unknownRec.Body.Bytes())
	wrongPwMsg := decode(wrongPwRec.Body.Bytes())
	if unknownMsg != "Username or password incorrect" {
		t.Errorf("unknown-user message = %q", unknownMsg)
	}
	if unknownMsg != wrongPwMsg {
		t.Errorf("messages must not distinguish the failure: %q vs %q", unknownMsg, wrongPwMsg)
	}
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	repo := &mockRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Username: username, PasswordHash: bcryptHash(t, "secret123")}, nil
		},
	}
	router, _ := newTestRouter(t, repo)

	rec := postForm(router, "/login", loginForm("login", "kody", "secret123"))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/jokes" {
		t.Errorf("expected redirect to /jokes, got %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName && cookie.Value != "" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected a session cookie to be set")
	}

	// The minted cookie must open the session-gated submission form.
	authed := get(router, "/jokes/new", sessionCookie)
	if authed.Code != http.StatusOK {
		t.Errorf("session cookie rejected on /jokes/new: %d", authed.Code)
	}
}

func TestLoginRedirectToGuard(t *testing.T) {
	repo := &mockRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Username: username, PasswordHash: bcryptHash(t, "secret123")}, nil
		},
	}
	router, _ := newTestRouter(t, repo)

	tests := []struct {
		name       string
		redirectTo string
		want       string
	}{
		{"allow-listed root", "/", "/"},
		{"allow-listed remix", "https://remix.run", "https://remix.run"},
		{"external silently replaced", "https://evil.example.com", "/jokes"},
		{"unknown path replaced", "/admin", "/jokes"},
		{"absent defaults", "", "/jokes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := loginForm("login", "kody", "secret123")
			if tt.redirectTo != "" {
				form.Set("redirectTo", tt.redirectTo)
			}
			rec := postForm(router, "/login", form)
			if rec.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("redirect = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &mockRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Username: username}, nil
		},
		createUserFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			t.Fatal("CreateUser must not be called when the username is taken")
			return nil, nil
		},
	}
	router, _ := newTestRouter(t, repo)

	rec := postForm(router, "/login", loginForm("register", "kody", "secret123"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var state formState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if state.FormError != "User with username kody already exists" {
		t.Errorf("form error = %q", state.FormError)
	}
}

func TestRegisterSuccessSetsSessionAndRedirects(t *testing.T) {
	repo := &mockRepo{
		createUserFn: func(ctx context.Context, username, passwordHash string) (*domain.User, error) {
			return &domain.User{ID: "user-9", Username: username, PasswordHash: passwordHash}, nil
		},
	}
	router, _ := newTestRouter(t, repo)

	rec := postForm(router, "/login", loginForm("register", "kody", "secret123"))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/jokes" {
		t.Errorf("expected redirect to /jokes, got %q", loc)
	}

	var hasCookie bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName && cookie.Value != "" {
			hasCookie = true
		}
	}
	if !hasCookie {
		t.Error("expected a session cookie to be set")
	}
}

func TestLoginUnknownLoginType(t *testing.T) {
	router, _ := newTestRouter(t, &mockRepo{})

	rec := postForm(router, "/login", loginForm("frobnicate", "kody", "secret123"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Form not submitted correctly") {
		t.Errorf("expected malformed-form error, got %s", rec.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	router, sessions := newTestRouter(t, &mockRepo{})

	rec := postForm(router, "/logout", url.Values{}, sessionCookie(t, sessions, "user-1"))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be expired")
	}
}

func TestMe(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "kody", PasswordHash: "hash"}, nil
		},
	}
	router, sessions := newTestRouter(t, repo)

	rec := get(router, "/me")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}

	rec = get(router, "/me", sessionCookie(t, sessions, "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a session, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "kody") {
		t.Errorf("expected username in body, got %s", body)
	}
	if strings.Contains(body, "hash") {
		t.Error("password hash leaked into the response")
	}
}
