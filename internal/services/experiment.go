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

// ExperimentService manages Data Science Lab entries.
type ExperimentService interface {
	List(ctx context.Context) ([]types.Experiment, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Experiment, error)
	Create(ctx context.Context, in *types.Experiment) (*types.Experiment, error)
	Update(ctx context.Context, id uuid.UUID, in *types.Experiment) (*types.Experiment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var experimentColumns = []string{"title", "description", "tech_stack", "notebook_url", "dataset_url", "status", "updated_at"}

type experimentService struct {
	log      *logger.Logger
	repo     repos.ExperimentRepo
	notifier SiteNotifier
}

func NewExperimentService(log *logger.Logger, repo repos.ExperimentRepo, notifier SiteNotifier) ExperimentService {
	return &experimentService{
		log:      log.With("service", "ExperimentService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
	}
}

func (s *experimentService) List(ctx context.Context) ([]types.Experiment, error) {
	return s.repo.Select(dbc(ctx), collection.Query{OrderBy: []collection.Order{collection.Desc("created_at")}})
}

func (s *experimentService) Get(ctx context.Context, id uuid.UUID) (*types.Experiment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(dbc(ctx), id)
}

func (s *experimentService) Create(ctx context.Context, in *types.Experiment) (*types.Experiment, error) {
	if in == nil {
		return nil, errs.Invalid("experiment", "is required")
	}
	rec := *in
	rec.ID = uuid.Nil
	if err := validateExperiment(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Insert(dbc(ctx), &rec)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "experiment_created")
	return out, nil
}

func (s *experimentService) Update(ctx context.Context, id uuid.UUID, in *types.Experiment) (*types.Experiment, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errs.Invalid("experiment", "is required")
	}
	rec := *in
	rec.ID = id
	if err := validateExperiment(&rec); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(dbc(ctx), id, &rec, experimentColumns...)
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "experiment_updated")
	return out, nil
}

func (s *experimentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(dbc(ctx), id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "experiment_deleted")
	return nil
}

func validateExperiment(e *types.Experiment) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	if err := errs.Required("title", e.Title); err != nil {
		return err
	}
	status, err := normalizeChoice("status", e.Status, content.ExperimentStatusInProgress, content.ExperimentStatuses...)
	if err != nil {
		return err
	}
	e.Status = status
	e.TechStack = trimAll(e.TechStack)
	e.NotebookURL = content.NullIfBlank(e.NotebookURL)
	e.DatasetURL = content.NullIfBlank(e.DatasetURL)
	return nil
}
