// Package session manages the signed session cookie that carries the current
// user's identity between requests. Tokens are JWTs (HS256); the cookie is
// HTTP-only so session state never touches client-side script.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jokesapp/src/core/domain"
	"jokesapp/src/infra/config"
)

// Claims is the JWT payload stored in the session cookie.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session cookies.
type Manager struct {
	cfg config.SessionConfig
	log *slog.Logger
}

// NewManager creates a session manager. It refuses to start without a signing
// secret so a misconfigured deployment fails at boot, not at first login.
func NewManager(cfg config.SessionConfig, log *slog.Logger) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is not configured (APP_SESSION_SECRET)")
	}
	return &Manager{cfg: cfg, log: log}, nil
}

// Issue signs a session token for the given user.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Establish sets the session cookie for the user and redirects to the given
// target. The target must already be allow-listed by the caller.
func (m *Manager) Establish(c *gin.Context, userID, redirectTo string) error {
	token, err := m.Issue(userID)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	c.SetCookie(m.cfg.CookieName, token, int(m.cfg.TTL.Seconds()), "/", "", m.cfg.Secure, true)
	c.Redirect(http.StatusFound, redirectTo)
	m.log.Debug("session established", "user_id", userID, "redirect_to", redirectTo)
	return nil
}

// UserID reports the user bound to the request's session cookie, if any.
// It never fails the request; absent, expired, or tampered cookies all read
// as "no user".
func (m *Manager) UserID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err != nil || raw == "" {
		return "", false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// RequireUserID is the failing variant of UserID for handlers that cannot
// proceed without an identity.
func (m *Manager) RequireUserID(c *gin.Context) (string, error) {
	userID, ok := m.UserID(c)
	if !ok {
		return "", domain.NewUnauthorizedError("login required")
	}
	return userID, nil
}

// Clear expires the session cookie and redirects, ending the session.
func (m *Manager) Clear(c *gin.Context, redirectTo string) {
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)
	c.Redirect(http.StatusFound, redirectTo)
}
