package services

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/platform/redis"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

const remoteRefreshTimeout = 5 * time.Second

// SiteInvalidator drops the cached public page when anything on it changes
// and tells other instances through the site bus. Section events received
// from other instances also refresh the local section store.
type SiteInvalidator struct {
	log      *logger.Logger
	composer *sections.Composer
	store    *sections.Store
	bus      redis.Bus
	origin   string
}

// NewSiteInvalidator builds an invalidator. bus may be nil for a single instance.
func NewSiteInvalidator(log *logger.Logger, composer *sections.Composer, store *sections.Store, bus redis.Bus, origin string) *SiteInvalidator {
	return &SiteInvalidator{
		log:      log.With("service", "SiteInvalidator", "origin", origin),
		composer: composer,
		store:    store,
		bus:      bus,
		origin:   origin,
	}
}

func (s *SiteInvalidator) SiteChanged(ctx context.Context, reason string) {
	s.composer.Invalidate(ctx)
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, redis.SiteEvent{Reason: reason, Origin: s.origin}); err != nil {
		s.log.Warn("Site event publish failed", "reason", reason, "error", err)
	}
}

func (s *SiteInvalidator) SectionsChanged(ctx context.Context, reason string) {
	s.SiteChanged(ctx, reason)
}

// Start subscribes to events from other instances until ctx is done.
func (s *SiteInvalidator) Start(ctx context.Context) error {
	if s.bus == nil {
		return nil
	}
	return s.bus.StartForwarder(ctx, s.onEvent)
}

func (s *SiteInvalidator) onEvent(ev redis.SiteEvent) {
	if ev.Origin == s.origin {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteRefreshTimeout)
	defer cancel()

	s.composer.Invalidate(ctx)
	if strings.HasPrefix(ev.Reason, "section") && s.store != nil {
		if _, err := s.store.Refresh(ctx); err != nil {
			s.log.Warn("Section store refresh after remote event failed", "reason", ev.Reason, "error", err)
		}
	}
	s.log.Debug("Applied remote site event", "reason", ev.Reason, "from", ev.Origin)
}
