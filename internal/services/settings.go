package services

import (
	"context"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type SettingsService interface {
	Get(ctx context.Context) (*types.SiteSettings, error)
	// Remove clears the URL stored for a settings slot.
	Remove(ctx context.Context, slot UploadSlot) (*types.SiteSettings, error)
}

type settingsService struct {
	log      *logger.Logger
	repo     repos.SettingsRepo
	notifier SiteNotifier
}

func NewSettingsService(log *logger.Logger, repo repos.SettingsRepo, notifier SiteNotifier) SettingsService {
	return &settingsService{
		log:      log.With("service", "SettingsService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
	}
}

func (s *settingsService) Get(ctx context.Context) (*types.SiteSettings, error) {
	return s.repo.Get(dbc(ctx))
}

func (s *settingsService) Remove(ctx context.Context, slot UploadSlot) (*types.SiteSettings, error) {
	spec, ok := slotSpecs[slot]
	if !ok || spec.field == "" {
		return nil, errs.OneOf("slot", string(slot), string(SlotLogo), string(SlotHeroImage), string(SlotResume))
	}
	row, err := s.repo.SetField(dbc(ctx), spec.field, nil)
	if err != nil {
		return nil, err
	}
	s.log.Info("Settings asset removed", "slot", string(slot))
	s.notifier.SiteChanged(ctx, "settings_"+string(spec.field))
	return row, nil
}
