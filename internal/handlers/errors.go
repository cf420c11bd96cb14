package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/gate"
	"bersekolah/gateway/internal/middleware"
	"bersekolah/gateway/internal/upstream"
)

// writeUpstreamError translates the upstream error taxonomy into responses.
// Unauthenticated failures are resolved locally: the stored session is
// cleared and the client is pointed back at login, never shown a generic
// banner. Validation failures carry the per-field map for inline rendering;
// transport and server failures become banner-grade messages. Handlers call
// this after a failed action only, so previously rendered state stays put.
func (h HandlerSet) writeUpstreamError(c *gin.Context, err error) {
	ue, ok := upstream.AsError(err)
	if !ok {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected handler error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	switch ue.Kind {
	case upstream.KindUnauthenticated:
		if sid := middleware.CurrentSessionID(c); sid != "" {
			if clearErr := h.sessions.Clear(c.Request.Context(), sid); clearErr != nil {
				h.log.Warn().Err(clearErr).Msg("session clear after auth failure failed")
			}
		}
		c.SetCookie(h.cfg.Security.CookieName, "", -1, "/", "", h.cfg.Security.CookieSecure, true)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "unauthenticated",
			"redirect": gate.LoginPath,
		})

	case upstream.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"message": ue.Message,
			"fields":  ue.Fields,
		})

	case upstream.KindServer:
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "upstream_unavailable",
			"message": ue.Message,
		})

	case upstream.KindTransport:
		h.log.Error().Err(ue).Str("path", c.Request.URL.Path).Msg("upstream transport failure")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "network_error",
			"message": ue.Message,
		})

	default:
		statusCode := ue.StatusCode
		if statusCode < 400 || statusCode > 499 {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{
			"error":   "request_rejected",
			"message": ue.Message,
		})
	}
}
