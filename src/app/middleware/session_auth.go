package middleware

import (
	"github.com/gin-gonic/gin"

	"jokesapp/src/app/http/response"
	"jokesapp/src/infra/session"
)

const userIDKey = "user_id"

// RequireUser enforces that the incoming request carries a valid session
// cookie. On success it stores the user ID in the context under "user_id".
// Without a session the request fails with 401 and the login prompt message.
func RequireUser(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.UserID(c)
		if !ok {
			response.Unauthorized(c, "You must be logged in to create a joke.", GetRequestID(c))
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID retrieves the session user ID stored by RequireUser.
func CurrentUserID(c *gin.Context) (string, bool) {
	if v, exists := c.Get(userIDKey); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}
