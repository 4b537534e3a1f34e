package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type SkillService interface {
	ListCategories(ctx context.Context) ([]types.SkillCategory, error)
	// CreateCategory appends a category after the current last one.
	CreateCategory(ctx context.Context, name string) (*types.SkillCategory, error)
	RenameCategory(ctx context.Context, id uuid.UUID, name string) (*types.SkillCategory, error)
	// DeleteCategory removes the category together with its skills.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	// CreateSkill appends a skill at the end of its category.
	CreateSkill(ctx context.Context, categoryID uuid.UUID, name string) (*types.Skill, error)
	RenameSkill(ctx context.Context, id uuid.UUID, name string) (*types.Skill, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type skillService struct {
	log      *logger.Logger
	repo     repos.SkillRepo
	notifier SiteNotifier
}

func NewSkillService(log *logger.Logger, repo repos.SkillRepo, notifier SiteNotifier) SkillService {
	return &skillService{
		log:      log.With("service", "SkillService"),
		repo:     repo,
		notifier: siteNotifierOrNop(notifier),
	}
}

func (s *skillService) ListCategories(ctx context.Context) ([]types.SkillCategory, error) {
	return s.repo.ListCategories(dbc(ctx))
}

func (s *skillService) CreateCategory(ctx context.Context, name string) (*types.SkillCategory, error) {
	name = strings.TrimSpace(name)
	if err := errs.Required("name", name); err != nil {
		return nil, err
	}
	next, err := s.repo.NextCategoryOrder(dbc(ctx))
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Categories().Insert(dbc(ctx), &types.SkillCategory{Name: name, OrderIndex: next})
	if err != nil {
		return nil, err
	}
	out.Skills = []types.Skill{}
	s.notifier.SiteChanged(ctx, "skill_category_created")
	return out, nil
}

func (s *skillService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*types.SkillCategory, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := errs.Required("name", name); err != nil {
		return nil, err
	}
	if _, err := s.repo.Categories().Update(dbc(ctx), id, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	out, err := s.repo.Categories().Get(dbc(ctx), id, "Skills")
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "skill_category_updated")
	return out, nil
}

func (s *skillService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "skill_category_deleted")
	return nil
}

func (s *skillService) CreateSkill(ctx context.Context, categoryID uuid.UUID, name string) (*types.Skill, error) {
	if categoryID == uuid.Nil {
		return nil, errs.Invalid("category_id", "is required")
	}
	name = strings.TrimSpace(name)
	if err := errs.Required("name", name); err != nil {
		return nil, err
	}
	if _, err := s.repo.Categories().Get(dbc(ctx), categoryID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Invalid("category_id", "category %s does not exist", categoryID)
		}
		return nil, err
	}
	next, err := s.repo.NextSkillOrder(dbc(ctx), categoryID)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Skills().Insert(dbc(ctx), &types.Skill{Name: name, CategoryID: categoryID, OrderIndex: next})
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "skill_created")
	return out, nil
}

func (s *skillService) RenameSkill(ctx context.Context, id uuid.UUID, name string) (*types.Skill, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := errs.Required("name", name); err != nil {
		return nil, err
	}
	out, err := s.repo.Skills().Update(dbc(ctx), id, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	s.notifier.SiteChanged(ctx, "skill_updated")
	return out, nil
}

func (s *skillService) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.repo.Skills().Delete(dbc(ctx), id); err != nil {
		return err
	}
	s.notifier.SiteChanged(ctx, "skill_deleted")
	return nil
}

