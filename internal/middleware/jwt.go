package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/notetoc/internal/pkg/errcode"
	"github.com/xxxsen/notetoc/internal/pkg/jwt"
	"github.com/xxxsen/notetoc/internal/pkg/response"
)

const (
	ContextUserIDKey  = "user_id"
	SessionCookieName = "notetoc_session"
)

// SessionAuth accepts the session token from the cookie set after OAuth or
// from a bearer Authorization header.
func SessionAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookieName)
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Error(c, errcode.ErrUnauthorized, "invalid authorization")
				c.Abort()
				return
			}
			token = parts[1]
		}
		if token == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing session")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
