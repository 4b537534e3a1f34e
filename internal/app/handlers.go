package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apphttp "github.com/yungbote/portfolio-backend/internal/http"
	httpH "github.com/yungbote/portfolio-backend/internal/http/handlers"
	httpMW "github.com/yungbote/portfolio-backend/internal/http/middleware"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

func dbPinger(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func wireRouter(log *logger.Logger, cfg Config, db *gorm.DB, svc Services) *gin.Engine {
	log.Info("Wiring handlers...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:         log,
		ServiceName: serviceName,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,

		AuthMiddleware: httpMW.NewAuthMiddleware(log, svc.Auth),
		ContactLimiter: httpMW.NewRateLimiter(log, cfg.Contact.RatePerMinute, cfg.Contact.Burst),

		HealthHandler:      httpH.NewHealthHandler(dbPinger(db)),
		AuthHandler:        httpH.NewAuthHandler(svc.Auth),
		PageHandler:        httpH.NewPageHandler(svc.Composer),
		SectionHandler:     httpH.NewSectionHandler(svc.Manager),
		BlogHandler:        httpH.NewBlogHandler(svc.Blogs, svc.Feed),
		ProjectHandler:     httpH.NewProjectHandler(svc.Projects),
		CertificateHandler: httpH.NewCertificateHandler(svc.Certificates),
		ExperimentHandler:  httpH.NewExperimentHandler(svc.Experiments),
		MessageHandler:     httpH.NewMessageHandler(svc.Messages),
		SkillHandler:       httpH.NewSkillHandler(svc.Skills),
		SettingsHandler:    httpH.NewSettingsHandler(svc.Settings, svc.Uploads),
	})
}
