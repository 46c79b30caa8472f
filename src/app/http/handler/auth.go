package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"jokesapp/src/app/http/dto"
	"jokesapp/src/app/http/response"
	"jokesapp/src/app/middleware"
	"jokesapp/src/core/domain"
	"jokesapp/src/core/usecase"
	"jokesapp/src/infra/session"
)

// AuthHandler handles the login/register form, logout, and the current-user
// endpoint.
type AuthHandler struct {
	authService *usecase.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService *usecase.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Login processes the combined login/register form. The loginType field
// selects the branch; anything else is a malformed submission.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	loginType, typeOK := postField(c, "loginType")
	username, userOK := postField(c, "username")
	password, passOK := postField(c, "password")
	if !typeOK || !userOK || !passOK {
		response.FormInvalid(c, nil, nil, "Form not submitted correctly")
		return
	}

	// redirectTo is optional; anything off the allow-list silently falls
	// back to the default instead of failing the request.
	redirectTo := domain.SafeRedirect(c.Request.PostFormValue("redirectTo"))

	fieldErrors := make(map[string]string)
	if msg := domain.ValidateUsername(username); msg != "" {
		fieldErrors["username"] = msg
	}
	if msg := domain.ValidatePassword(password); msg != "" {
		fieldErrors["password"] = msg
	}
	if len(fieldErrors) > 0 {
		// Echo the username only; the password never comes back.
		response.FormInvalid(c, fieldErrors, map[string]string{"username": username}, "")
		return
	}

	var user *domain.User
	var err error
	switch loginType {
	case "login":
		user, err = h.authService.Login(c.Request.Context(), username, password)
		if err != nil {
			if domain.IsCredentialMismatch(err) {
				response.FormInvalid(c, nil, nil, "Username or password incorrect")
				return
			}
			c.Error(err)
			response.FromDomainError(c, err, middleware.GetRequestID(c))
			return
		}
	case "register":
		user, err = h.authService.Register(c.Request.Context(), username, password)
		if err != nil {
			if domain.IsConflict(err) {
				response.FormInvalid(c, nil, nil,
					fmt.Sprintf("User with username %s already exists", username))
				return
			}
			c.Error(err)
			response.FromDomainError(c, err, middleware.GetRequestID(c))
			return
		}
	default:
		response.FormInvalid(c, nil, nil, "Form not submitted correctly")
		return
	}

	if err := h.sessions.Establish(c, user.ID, redirectTo); err != nil {
		c.Error(err)
		response.InternalError(c, middleware.GetRequestID(c))
	}
}

// Logout clears the session cookie and sends the user back to the login page.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c, "/login")
}

// Me returns the account behind the current session.
// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := h.sessions.RequireUserID(c)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	user, err := h.authService.UserByID(c.Request.Context(), userID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	response.OK(c, gin.H{"user": dto.UserResponse{ID: user.ID, Username: user.Username}})
}
