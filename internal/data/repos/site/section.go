package site

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type SectionRepo interface {
	// List returns every section by ascending order_index.
	List(dbc dbctx.Context) ([]types.Section, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Section, error)
	SetVisibility(dbc dbctx.Context, id uuid.UUID, visible bool) (*types.Section, error)
	SetOrderIndex(dbc dbctx.Context, id uuid.UUID, orderIndex int) (*types.Section, error)
	// Transaction runs fn with dbc.Tx bound to one database transaction.
	Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type sectionRepo struct {
	db   *gorm.DB
	log  *logger.Logger
	rows *collection.Collection[types.Section]
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	repoLog := baseLog.With("repo", "SectionRepo")
	return &sectionRepo{
		db:   db,
		log:  repoLog,
		rows: collection.New[types.Section](db, baseLog, types.Section{}.TableName()),
	}
}

func (r *sectionRepo) List(dbc dbctx.Context) ([]types.Section, error) {
	return r.rows.Select(dbc, collection.Query{
		OrderBy: []collection.Order{collection.Asc("order_index"), collection.Asc("name")},
	})
}

func (r *sectionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Section, error) {
	return r.rows.Get(dbc, id)
}

func (r *sectionRepo) SetVisibility(dbc dbctx.Context, id uuid.UUID, visible bool) (*types.Section, error) {
	return r.rows.Update(dbc, id, map[string]any{"is_visible": visible})
}

func (r *sectionRepo) SetOrderIndex(dbc dbctx.Context, id uuid.UUID, orderIndex int) (*types.Section, error) {
	return r.rows.Update(dbc, id, map[string]any{"order_index": orderIndex})
}

func (r *sectionRepo) Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
