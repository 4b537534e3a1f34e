package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/sendgrid"
	"github.com/yungbote/portfolio-backend/internal/services"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

type Services struct {
	Store       *sections.Store
	Manager     *sections.Manager
	Composer    *sections.Composer
	Invalidator *services.SiteInvalidator

	Auth         services.AuthService
	Settings     services.SettingsService
	Uploads      services.UploadService
	Skills       services.SkillService
	Blogs        services.BlogService
	Feed         services.FeedService
	Projects     services.ProjectService
	Certificates services.CertificateService
	Experiments  services.ExperimentService
	Messages     services.MessageService
}

// lateNotifier forwards to the invalidator once the composer it depends on
// has been built from the content services.
type lateNotifier struct {
	target *services.SiteInvalidator
}

func (n *lateNotifier) SiteChanged(ctx context.Context, reason string) {
	if n.target != nil {
		n.target.SiteChanged(ctx, reason)
	}
}

func instanceID() string {
	host, _ := os.Hostname()
	if host == "" {
		host = "portfolio"
	}
	return host + "-" + uuid.NewString()[:8]
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, r Repos) (Services, error) {
	log.Info("Wiring services...")

	mode, err := sections.ParseReorderMode(cfg.Sections.ReorderMode)
	if err != nil {
		return Services{}, err
	}

	notifier := &lateNotifier{}
	out := Services{
		Auth:         services.NewAuthService(db, log, r.User, r.UserToken, cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL),
		Settings:     services.NewSettingsService(log, r.Settings, notifier),
		Uploads:      services.NewUploadService(log, clients.Bucket, r.Settings, notifier),
		Skills:       services.NewSkillService(log, r.Skill, notifier),
		Blogs:        services.NewBlogService(log, r.Blog, notifier),
		Projects:     services.NewProjectService(log, r.Project, notifier),
		Certificates: services.NewCertificateService(log, r.Certificate, notifier),
		Experiments:  services.NewExperimentService(log, r.Experiment, notifier),
	}
	out.Feed = services.NewFeedService(log, out.Blogs, services.FeedConfig{
		SiteURL:     cfg.Site.URL,
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
	})

	var contact services.ContactNotifier
	if to := strings.TrimSpace(cfg.Contact.NotifyEmail); to != "" && clients.SendGrid != nil {
		from := sendgrid.EmailAddress{Email: cfg.Contact.FromEmail, Name: cfg.Contact.FromName}
		contact = services.NewEmailContactNotifier(log, clients.SendGrid, to, from, cfg.Site.Title)
	}
	out.Messages = services.NewMessageService(log, r.Message, contact)

	out.Store = sections.NewStore(log, r.Section)
	out.Manager = sections.NewManager(log, r.Section, out.Store, mode)

	composerCfg := sections.ComposerConfig{
		Loaders: services.BlockLoaders(services.BlockSources{
			Settings:     out.Settings,
			Skills:       out.Skills,
			Projects:     out.Projects,
			Experiments:  out.Experiments,
			Blogs:        out.Blogs,
			Certificates: out.Certificates,
		}),
		Logo:     services.LogoLoader(out.Settings),
		CacheTTL: cfg.Sections.PageCacheTTL,
	}
	if clients.Cache != nil {
		composerCfg.Cache = clients.Cache
	}
	out.Composer = sections.NewComposer(log, out.Store, composerCfg)

	out.Invalidator = services.NewSiteInvalidator(log, out.Composer, out.Store, clients.Bus, instanceID())
	notifier.target = out.Invalidator
	out.Manager.WithNotifier(out.Invalidator)

	return out, nil
}

// checkOrderIntegrity loads the section list and reports duplicate order
// indexes. Duplicates are logged, not repaired.
func checkOrderIntegrity(ctx context.Context, log *logger.Logger, svc Services) error {
	if _, err := svc.Store.Refresh(ctx); err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	dups, err := svc.Manager.CheckOrderIntegrity(ctx)
	if err != nil {
		return fmt.Errorf("check section order: %w", err)
	}
	for _, d := range dups {
		log.Warn("Duplicate section order_index", "order_index", d.OrderIndex, "names", d.Names)
	}
	return nil
}
