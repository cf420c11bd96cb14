package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/gate"
	"bersekolah/gateway/internal/models"
)

// RequireRoles applies the access gate to the request. The gate evaluates
// before any page bytes are produced, so a protected page never flashes for
// an unauthorized visitor. Allow falls through, RedirectTo becomes a 302,
// Deny a 403 naming the visitor's actual role.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := CurrentSession(c)

		decision := gate.Evaluate(sess, roles, c.Request.URL.Path)
		switch decision.Kind {
		case gate.Allow:
			c.Next()
		case gate.Redirect:
			c.Redirect(http.StatusFound, decision.Target)
			c.Abort()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "forbidden",
				"reason": decision.Reason,
			})
		}
	}
}
