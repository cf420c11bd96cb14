package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/config"
	"bersekolah/gateway/internal/models"
	"bersekolah/gateway/internal/security"
	"bersekolah/gateway/internal/session"
)

const (
	ctxSession   = "current_session"
	ctxSessionID = "session_id"
)

// Session resolves the signed session cookie into the stored session triple
// and stashes both on the request context. It never rejects by itself; the
// gate middleware decides what a missing or expired session means for the
// page. The store's lazy 24h expiry runs inside Read, so an expired session
// is cleared right here on first touch.
func Session(store *session.Store, cfg *config.AppConfig, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.Security.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		claims, err := security.ParseSessionToken(cookie, cfg.Security.CookieSecret)
		if err != nil {
			// Unreadable cookie: drop it so the browser stops sending it.
			c.SetCookie(cfg.Security.CookieName, "", -1, "/", "", cfg.Security.CookieSecure, true)
			c.Next()
			return
		}

		sess, err := store.Read(c.Request.Context(), claims.SessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", claims.SessionID).Msg("session read failed")
			c.Next()
			return
		}
		if sess == nil {
			c.SetCookie(cfg.Security.CookieName, "", -1, "/", "", cfg.Security.CookieSecure, true)
			c.Next()
			return
		}

		c.Set(ctxSession, sess)
		c.Set(ctxSessionID, claims.SessionID)
		c.Next()
	}
}

// CurrentSession returns the session attached by the Session middleware.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ctxSession)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*models.Session)
	return sess, ok && sess != nil
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
