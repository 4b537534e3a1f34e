package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

const feedItemLimit = 20

type FeedConfig struct {
	SiteURL     string
	Title       string
	Description string
	Author      string
}

// FeedService renders published blog posts as RSS 2.0.
type FeedService interface {
	RSS(ctx context.Context) (string, error)
}

type feedService struct {
	log   *logger.Logger
	blogs BlogService
	cfg   FeedConfig
}

func NewFeedService(log *logger.Logger, blogs BlogService, cfg FeedConfig) FeedService {
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if cfg.Title == "" {
		cfg.Title = "Portfolio"
	}
	return &feedService{log: log.With("service", "FeedService"), blogs: blogs, cfg: cfg}
}

func (s *feedService) RSS(ctx context.Context) (string, error) {
	posts, err := s.blogs.ListPublished(ctx, feedItemLimit)
	if err != nil {
		return "", err
	}
	feed := &feeds.Feed{
		Title:       s.cfg.Title,
		Link:        &feeds.Link{Href: s.cfg.SiteURL + "/blog"},
		Description: s.cfg.Description,
		Created:     time.Now().UTC(),
	}
	if s.cfg.Author != "" {
		feed.Author = &feeds.Author{Name: s.cfg.Author}
	}
	for _, p := range posts {
		link := fmt.Sprintf("%s/blog/%s", s.cfg.SiteURL, p.Slug)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Excerpt,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}
	if len(posts) > 0 {
		feed.Created = posts[0].CreatedAt
	}
	out, err := feed.ToRss()
	if err != nil {
		s.log.Warn("RSS render failed", "error", err)
		return "", fmt.Errorf("render rss: %w", err)
	}
	return out, nil
}
