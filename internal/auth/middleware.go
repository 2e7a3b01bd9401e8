package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lomoval/menu-events/internal/storage"
	log "github.com/sirupsen/logrus"
)

const userKey = "user"

// RequireUser aborts requests without a valid token and keeps the resolved
// user in the gin context.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		switch {
		case errors.Is(err, ErrUnauthorized):
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		case errors.Is(err, ErrInvalidToken):
			log.Debugf("rejected token: %v", err)
			c.AbortWithStatus(http.StatusForbidden)
			return
		case err != nil:
			log.Errorf("failed to authenticate: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireStaff must run after RequireUser.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsStaff {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) storage.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(storage.User); ok {
			return user
		}
	}
	return storage.User{}
}
