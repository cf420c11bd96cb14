package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/export"
	"bersekolah/gateway/internal/middleware"
)

// Export fetches the requested tables from the core API as JSON and converts
// gateway-side into whatever the Accept header (or explicit format param)
// asks for: JSON passthrough, CSV, or a spreadsheet.
func (h HandlerSet) Export(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	params := url.Values{}
	for _, key := range []string{"tables", "dateRange"} {
		if value := c.Query(key); value != "" {
			params.Set(key, value)
		}
	}

	rows, err := h.api.ExportRows(c.Request.Context(), sess.Token, params)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	format := export.Negotiate(c.GetHeader("Accept"), c.Query("format"))
	body, err := export.Render(rows, format)
	if err != nil {
		h.log.Error().Err(err).Msg("export render failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "export_render_failed"})
		return
	}

	filename := fmt.Sprintf("bersekolah-export-%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType(format), body)
}
