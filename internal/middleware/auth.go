package middleware

import (
	"net/http"
	"strings"

	"github.com/dev-singh-05/gymers/internal/auth"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// TokenFromRequest pulls the session token from the Authorization
// header, the ?token= query parameter (websocket clients cannot set
// headers) or the gym_token cookie, in that order.
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	if cookie, err := c.Cookie("gym_token"); err == nil {
		return cookie
	}
	return ""
}

// Auth validates the session token and puts the current user into the
// gin context. Requests without a live session are rejected.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not signed in")
			c.Abort()
			return
		}

		user, err := svc.CurrentUser(token)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to resolve session")
			c.Abort()
			return
		}
		if user == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, sign in again")
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
