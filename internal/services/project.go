package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/domain/content"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type ProjectService interface {
	List(ctx context.Context) ([]types.Project, error)
	ListActive(ctx context.Context) ([]types.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Project, error)
	Create(ctx context.Context, in *types.Project) (*types.Project, error)
	Update(ctx context.Context, id uuid.UUID, in *types.Project) (*types.Project, error)
	// ToggleStatus flips a project between active and hidden.
	ToggleStatus(ctx context.Context, id uuid.UUID) (*types.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var projectColumns = []string{
	"title", "description", "category", "tech_stack",
	"github_url", "live_url", "image_url", "status", "updated_at",
}

type projectService struct {
	log      *logger.Logger
	repo     repos.ProjectRepo
	notifier SiteNotifier
}

func NewProjectService(log *logger.Logger, repo repos.ProjectRepo, notifier SiteNotifier) ProjectService {
	return &projectService{
		log:      log.With("service", "ProjectService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
	}
}

func (s *projectService) List(ctx context.Context) ([]types.Project, error) {
	return s.repo.Select(dbc(ctx), collection.Query{OrderBy: []collection.Order{collection.Desc("created_at")}})
}

func (s *projectService) ListActive(ctx context.Context) ([]types.Project, error) {
	return s.repo.Select(dbc(ctx), collection.Query{
		Filters: []collection.Filter{collection.Eq("status", types.ProjectStatusActive)},
		OrderBy: []collection.Order{collection.Desc("created_at")},
	})
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(dbc(ctx), id)
}

func (s *projectService) Create(ctx context.Context, in *types.Project) (*types.Project, error) {
	if in == nil {
		return nil, errs.Invalid("project", "is required")
	}
	rec := *in
	rec.ID = uuid.Nil
	if err := validateProject(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Insert(dbc(ctx), &rec)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "project_created")
	return out, nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, in *types.Project) (*types.Project, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errs.Invalid("project", "is required")
	}
	rec := *in
	rec.ID = id
	if err := validateProject(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(dbc(ctx), id, &rec, projectColumns...)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "project_updated")
	return out, nil
}

func (s *projectService) ToggleStatus(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := types.ProjectStatusHidden
	if current.Status != types.ProjectStatusActive {
		next = types.ProjectStatusActive
	}
	out, err := s.repo.Update(dbc(ctx), id, map[string]any{"status": next})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Project status toggled", "project_id", id.String(), "status", next)
	s.notifier.SiteChanged(ctx, "project_status")
	return out, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(dbc(ctx), id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "project_deleted")
	return nil
}

func validateProject(p *types.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if err := errs.Required("title", p.Title); err != nil {
		return err
	}
	category, err := normalizeChoice("category", p.Category, content.ProjectCategories[0], content.ProjectCategories...)
	if err != nil {
		return err
	}
	p.Category = category
	status, err := normalizeChoice("status", strings.ToLower(p.Status), types.ProjectStatusActive,
		types.ProjectStatusActive, types.ProjectStatusHidden)
	if err != nil {
		return err
	}
	p.Status = status
	p.TechStack = trimAll(p.TechStack)
	p.GithubURL = content.NullIfBlank(p.GithubURL)
	p.LiveURL = content.NullIfBlank(p.LiveURL)
	p.ImageURL = content.NullIfBlank(p.ImageURL)
	return nil
}
