package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SocialLinks serves the public campaign links for marketing pages, from
// the warm cache when available.
func (h HandlerSet) SocialLinks(c *gin.Context) {
	links, err := h.social.Links(c.Request.Context())
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h HandlerSet) LatestSocialLink(c *gin.Context) {
	link, err := h.api.LatestSocialLink(c.Request.Context())
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}
