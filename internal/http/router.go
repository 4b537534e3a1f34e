package http

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/portfolio-backend/internal/http/handlers"
	httpMW "github.com/yungbote/portfolio-backend/internal/http/middleware"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware
	ContactLimiter *httpMW.RateLimiter

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	PageHandler        *httpH.PageHandler
	SectionHandler     *httpH.SectionHandler
	BlogHandler        *httpH.BlogHandler
	ProjectHandler     *httpH.ProjectHandler
	CertificateHandler *httpH.CertificateHandler
	ExperimentHandler  *httpH.ExperimentHandler
	MessageHandler     *httpH.MessageHandler
	SkillHandler       *httpH.SkillHandler
	SettingsHandler    *httpH.SettingsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.TraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")

	// Public reads
	public := api.Group("/")
	public.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		if cfg.PageHandler != nil {
			public.GET("/page", cfg.PageHandler.Get)
		}
		if cfg.BlogHandler != nil {
			public.GET("/blogs", cfg.BlogHandler.ListPublished)
			public.GET("/blogs/:slug", cfg.BlogHandler.GetBySlug)
			public.GET("/feed.xml", cfg.BlogHandler.Feed)
		}
	}

	if cfg.MessageHandler != nil {
		if cfg.ContactLimiter != nil {
			api.POST("/contact", cfg.ContactLimiter.Handler(), cfg.MessageHandler.Submit)
		} else {
			api.POST("/contact", cfg.MessageHandler.Submit)
		}
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	if cfg.AuthHandler != nil {
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/me", cfg.AuthHandler.Me)
	}

	admin := protected.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	{
		if h := cfg.SectionHandler; h != nil {
			admin.GET("/sections", h.List)
			admin.GET("/sections/integrity", h.Integrity)
			admin.PATCH("/sections/:id/visibility", h.ToggleVisibility)
			admin.POST("/sections/move", h.Move)
		}
		if h := cfg.BlogHandler; h != nil {
			admin.GET("/blogs", h.List)
			admin.GET("/blogs/:id", h.Get)
			admin.POST("/blogs", h.Create)
			admin.PUT("/blogs/:id", h.Update)
			admin.DELETE("/blogs/:id", h.Delete)
		}
		if h := cfg.ProjectHandler; h != nil {
			admin.GET("/projects", h.List)
			admin.GET("/projects/:id", h.Get)
			admin.POST("/projects", h.Create)
			admin.PUT("/projects/:id", h.Update)
			admin.PATCH("/projects/:id/status", h.ToggleStatus)
			admin.DELETE("/projects/:id", h.Delete)
		}
		if h := cfg.CertificateHandler; h != nil {
			admin.GET("/certificates", h.List)
			admin.GET("/certificates/:id", h.Get)
			admin.POST("/certificates", h.Create)
			admin.PUT("/certificates/:id", h.Update)
			admin.DELETE("/certificates/:id", h.Delete)
		}
		if h := cfg.ExperimentHandler; h != nil {
			admin.GET("/experiments", h.List)
			admin.GET("/experiments/:id", h.Get)
			admin.POST("/experiments", h.Create)
			admin.PUT("/experiments/:id", h.Update)
			admin.DELETE("/experiments/:id", h.Delete)
		}
		if h := cfg.MessageHandler; h != nil {
			admin.GET("/messages", h.List)
			admin.GET("/messages/unread-count", h.UnreadCount)
			admin.GET("/messages/:id", h.Get)
			admin.PATCH("/messages/:id/read", h.MarkAsRead)
			admin.DELETE("/messages/:id", h.Delete)
		}
		if h := cfg.SkillHandler; h != nil {
			admin.GET("/skill-categories", h.ListCategories)
			admin.POST("/skill-categories", h.CreateCategory)
			admin.PUT("/skill-categories/:id", h.RenameCategory)
			admin.DELETE("/skill-categories/:id", h.DeleteCategory)
			admin.POST("/skills", h.CreateSkill)
			admin.PUT("/skills/:id", h.RenameSkill)
			admin.DELETE("/skills/:id", h.DeleteSkill)
		}
		if h := cfg.SettingsHandler; h != nil {
			admin.GET("/settings", h.Get)
			admin.POST("/uploads", h.Upload)
			admin.DELETE("/settings/:slot", h.Remove)
		}
	}

	return r
}
