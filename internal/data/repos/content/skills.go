package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type SkillRepo interface {
	Categories() *collection.Collection[types.SkillCategory]
	Skills() *collection.Collection[types.Skill]
	// ListCategories returns categories by order_index, each with its skills by order_index.
	ListCategories(dbc dbctx.Context) ([]types.SkillCategory, error)
	NextCategoryOrder(dbc dbctx.Context) (int, error)
	NextSkillOrder(dbc dbctx.Context, categoryID uuid.UUID) (int, error)
	// DeleteCategory removes the category and its skills in one transaction.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type skillRepo struct {
	db         *gorm.DB
	log        *logger.Logger
	categories *collection.Collection[types.SkillCategory]
	skills     *collection.Collection[types.Skill]
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	return &skillRepo{
		db:         db,
		log:        baseLog.With("repo", "SkillRepo"),
		categories: collection.New[types.SkillCategory](db, baseLog, types.SkillCategory{}.TableName()),
		skills:     collection.New[types.Skill](db, baseLog, types.Skill{}.TableName()),
	}
}

func (r *skillRepo) Categories() *collection.Collection[types.SkillCategory] { return r.categories }

func (r *skillRepo) Skills() *collection.Collection[types.Skill] { return r.skills }

func (r *skillRepo) ListCategories(dbc dbctx.Context) ([]types.SkillCategory, error) {
	return r.categories.Select(dbc, collection.Query{
		OrderBy: []collection.Order{collection.Asc("order_index"), collection.Asc("name")},
		Preload: []string{"Skills"},
	})
}

func (r *skillRepo) NextCategoryOrder(dbc dbctx.Context) (int, error) {
	max, err := r.categories.MaxInt(dbc, "order_index")
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *skillRepo) NextSkillOrder(dbc dbctx.Context, categoryID uuid.UUID) (int, error) {
	max, err := r.skills.MaxInt(dbc, "order_index", collection.Eq("category_id", categoryID))
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *skillRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := r.skills.DeleteWhere(dbc, collection.Eq("category_id", id))
		if err != nil {
			return err
		}
		if err := r.categories.Delete(dbc, id); err != nil {
			return err
		}
		r.log.Debug("Skill category deleted", "category_id", id.String(), "skills_deleted", n)
		return nil
	})
	return errs.DataAccess("delete", types.SkillCategory{}.TableName(), err)
}
