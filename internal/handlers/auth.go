package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/gate"
	"bersekolah/gateway/internal/ids"
	"bersekolah/gateway/internal/middleware"
	"bersekolah/gateway/internal/models"
	"bersekolah/gateway/internal/security"
	"bersekolah/gateway/internal/upstream"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Phone                string `json:"phone"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

type authResponse struct {
	User     models.User `json:"user"`
	Redirect string      `json:"redirect"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := h.api.Login(c.Request.Context(), upstream.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	h.establishSession(c, payload)
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := h.api.Register(c.Request.Context(), upstream.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	h.establishSession(c, payload)
}

// establishSession writes the session triple, hands the browser a signed
// session cookie and tells it where to land: applicants go to the
// registration form, administrative roles go straight to the dashboard.
func (h HandlerSet) establishSession(c *gin.Context, payload upstream.AuthPayload) {
	sid := ids.New()
	sess := models.Session{
		Token:          payload.Token,
		User:           payload.User,
		LoginTimestamp: time.Now(),
	}

	if err := h.sessions.Write(c.Request.Context(), sid, sess); err != nil {
		h.log.Error().Err(err).Msg("session write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_store_failed"})
		return
	}

	cookie, err := security.GenerateSessionToken(h.cfg.Security.CookieSecret, sid)
	if err != nil {
		h.log.Error().Err(err).Msg("session cookie sign failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_cookie_failed"})
		return
	}

	c.SetCookie(
		h.cfg.Security.CookieName,
		cookie,
		int(models.SessionTTL.Seconds()),
		"/", "",
		h.cfg.Security.CookieSecure,
		true,
	)

	c.JSON(http.StatusOK, authResponse{
		User:     payload.User,
		Redirect: gate.LandingPath(payload.User.Role),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	if sid := middleware.CurrentSessionID(c); sid != "" {
		if err := h.sessions.Clear(c.Request.Context(), sid); err != nil {
			h.log.Warn().Err(err).Str("session_id", sid).Msg("session clear failed")
		}
	}

	c.SetCookie(h.cfg.Security.CookieName, "", -1, "/", "", h.cfg.Security.CookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "redirect": gate.LoginPath})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": sess.User})
}
