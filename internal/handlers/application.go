package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/middleware"
	"bersekolah/gateway/internal/status"
)

// ApplicationStatus returns the applicant's resolved workflow phase. Refresh
// is manual: the page calls this again when the user asks, never on a timer.
func (h HandlerSet) ApplicationStatus(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	record, err := h.api.ApplicationStatus(c.Request.Context(), sess.Token)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": status.Resolve(record)})
}

type interviewLockedResponse struct {
	Locked bool              `json:"locked"`
	Reason status.LockReason `json:"reason"`
}

// InterviewSchedule serves the interview page: the composed Jakarta-time
// slot when the applicant is through berkas review, otherwise the lock
// reason telling which precondition failed.
func (h HandlerSet) InterviewSchedule(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	record, err := h.api.ApplicationStatus(c.Request.Context(), sess.Token)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	if reason := status.InterviewAccess(record); reason != status.LockNone {
		c.JSON(http.StatusOK, interviewLockedResponse{Locked: true, Reason: reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"locked":      false,
		"application": status.Resolve(record),
	})
}
