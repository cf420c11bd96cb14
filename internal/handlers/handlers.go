package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/cache"
	"bersekolah/gateway/internal/config"
	"bersekolah/gateway/internal/documents"
	"bersekolah/gateway/internal/middleware"
	"bersekolah/gateway/internal/models"
	"bersekolah/gateway/internal/prefs"
	"bersekolah/gateway/internal/session"
	"bersekolah/gateway/internal/social"
	"bersekolah/gateway/internal/upstream"
)

type HandlerSet struct {
	log       zerolog.Logger
	cfg       *config.AppConfig
	cache     *redis.Client
	sessions  *session.Store
	api       *upstream.Client
	documents *documents.Coordinator
	sidebar   *prefs.Sidebar
	social    *social.Cache
}

func NewHandlerSet(log zerolog.Logger, redisClient *redis.Client, cfg *config.AppConfig) HandlerSet {
	kv := cache.NewKV(redisClient)
	sessions := session.NewStore(kv, log)
	api := upstream.NewClient(cfg.Upstream, log)

	return HandlerSet{
		log:       log,
		cfg:       cfg,
		cache:     redisClient,
		sessions:  sessions,
		api:       api,
		documents: documents.NewCoordinator(api, kv, log),
		sidebar:   prefs.NewSidebar(kv, log),
		social:    social.NewCache(api, kv, cfg.Social.CacheTTL, log),
	}
}

// Sessions exposes the store for wiring (scheduler sweep, observers).
func (h HandlerSet) Sessions() *session.Store { return h.sessions }

// Social exposes the link cache for the scheduled refresh.
func (h HandlerSet) Social() *social.Cache { return h.social }

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.Session(h.sessions, h.cfg, h.log))
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)

		v1.GET("/social-links", h.SocialLinks)
		v1.GET("/social-links/latest", h.LatestSocialLink)

		applicant := v1.Group("")
		applicant.Use(middleware.RequireRoles(models.UserRoleUser, models.UserRoleBeswan))
		applicant.GET("/application/status", h.ApplicationStatus)
		applicant.GET("/application/interview", h.InterviewSchedule)
		applicant.GET("/documents/types", h.DocumentTypes)
		applicant.GET("/documents", h.ListDocuments)
		applicant.POST("/documents/:type", h.UploadDocument)

		authed := v1.Group("/prefs")
		authed.Use(middleware.RequireRoles(
			models.UserRoleUser, models.UserRoleBeswan,
			models.UserRoleAdmin, models.UserRoleSuperAdmin,
		))
		authed.GET("/sidebar", h.SidebarState)
		authed.POST("/sidebar/toggle", h.SidebarToggle)
		authed.POST("/sidebar/open", h.SidebarOpen)
		authed.POST("/sidebar/close", h.SidebarClose)

		admin := v1.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSuperAdmin))
		admin.GET("/export", h.Export)
	}
}
