package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

// BlogPost is a published post with its markdown rendered.
type BlogPost struct {
	types.Blog
	HTML string `json:"html"`
}

type BlogService interface {
	List(ctx context.Context) ([]types.Blog, error)
	ListPublished(ctx context.Context, limit int) ([]types.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Blog, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error)
	Create(ctx context.Context, in *types.Blog) (*types.Blog, error)
	Update(ctx context.Context, id uuid.UUID, in *types.Blog) (*types.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var blogColumns = []string{"title", "slug", "category", "excerpt", "content", "read_time", "status", "updated_at"}

type blogService struct {
	log      *logger.Logger
	repo     repos.BlogRepo
	notifier SiteNotifier
}

func NewBlogService(log *logger.Logger, repo repos.BlogRepo, notifier SiteNotifier) BlogService {
	return &blogService{
		log:      log.With("service", "BlogService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
	}
}

func (s *blogService) List(ctx context.Context) ([]types.Blog, error) {
	return s.repo.Select(dbc(ctx), collection.Query{OrderBy: []collection.Order{collection.Desc("created_at")}})
}

func (s *blogService) ListPublished(ctx context.Context, limit int) ([]types.Blog, error) {
	return s.repo.Select(dbc(ctx), collection.Query{
		Filters: []collection.Filter{collection.Eq("status", types.BlogStatusPublished)},
		OrderBy: []collection.Order{collection.Desc("created_at")},
		Limit:   limit,
	})
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*types.Blog, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(dbc(ctx), id)
}

func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errs.Invalid("slug", "is required")
	}
	b, err := s.repo.First(dbc(ctx), collection.Query{Filters: []collection.Filter{
		collection.Eq("slug", slug),
		collection.Eq("status", types.BlogStatusPublished),
	}})
	if err != nil {
		return nil, err
	}
	html, err := RenderMarkdown(b.Content)
	if err != nil {
		s.log.Warn("Blog markdown render failed", "slug", slug, "error", err)
		return nil, err
	}
	return &BlogPost{Blog: *b, HTML: html}, nil
}

func (s *blogService) Create(ctx context.Context, in *types.Blog) (*types.Blog, error) {
	if in == nil {
		return nil, errs.Invalid("blog", "is required")
	}
	rec := *in
	rec.ID = uuid.Nil
	if err := s.validate(ctx, &rec, uuid.Nil); err != nil {
		return nil, err
	}
	out, err := s.repo.Insert(dbc(ctx), &rec)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "blog_created")
	return out, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, in *types.Blog) (*types.Blog, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errs.Invalid("blog", "is required")
	}
	rec := *in
	rec.ID = id
	if err := s.validate(ctx, &rec, id); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(dbc(ctx), id, &rec, blogColumns...)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "blog_updated")
	return out, nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(dbc(ctx), id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "blog_deleted")
	return nil
}

// validate normalizes b in place. A blank slug is derived from the title and
// must not be taken by another post.
func (s *blogService) validate(ctx context.Context, b *types.Blog, self uuid.UUID) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Slug = Slugify(strings.TrimSpace(b.Slug))
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	b.Category = strings.TrimSpace(b.Category)
	b.Excerpt = strings.TrimSpace(b.Excerpt)
	if err := errs.Required("title", b.Title, "slug", b.Slug); err != nil {
		return err
	}
	status, err := normalizeChoice("status", strings.ToLower(b.Status), types.BlogStatusPublished,
		types.BlogStatusPublished, types.BlogStatusDraft)
	if err != nil {
		return err
	}
	b.Status = status
	if strings.TrimSpace(b.ReadTime) == "" {
		b.ReadTime = EstimateReadTime(b.Content)
	}

	filters := []collection.Filter{collection.Eq("slug", b.Slug)}
	if self != uuid.Nil {
		filters = append(filters, notID(self))
	}
	n, err := s.repo.Count(dbc(ctx), filters...)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.Invalid("slug", "%q is already in use", b.Slug)
	}
	return nil
}
