package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/middleware"
)

func (h HandlerSet) SidebarState(c *gin.Context) {
	sid := middleware.CurrentSessionID(c)
	c.JSON(http.StatusOK, gin.H{"is_open": h.sidebar.Read(c.Request.Context(), sid)})
}

func (h HandlerSet) SidebarToggle(c *gin.Context) {
	sid := middleware.CurrentSessionID(c)
	isOpen, err := h.sidebar.Toggle(c.Request.Context(), sid)
	if err != nil {
		h.log.Error().Err(err).Msg("sidebar toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sidebar_persist_failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_open": isOpen})
}

func (h HandlerSet) SidebarOpen(c *gin.Context) {
	sid := middleware.CurrentSessionID(c)
	if err := h.sidebar.Open(c.Request.Context(), sid); err != nil {
		h.log.Error().Err(err).Msg("sidebar open failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sidebar_persist_failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) SidebarClose(c *gin.Context) {
	sid := middleware.CurrentSessionID(c)
	if err := h.sidebar.Close(c.Request.Context(), sid); err != nil {
		h.log.Error().Err(err).Msg("sidebar close failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sidebar_persist_failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
