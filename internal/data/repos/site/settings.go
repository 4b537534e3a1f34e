package site

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type SettingsRepo interface {
	// Get returns the settings row, or an empty row with id 1 when none exists yet.
	Get(dbc dbctx.Context) (*types.SiteSettings, error)
	// SetField finds the settings row and updates field, inserting row 1 when absent.
	SetField(dbc dbctx.Context, field types.SettingsField, value *string) (*types.SiteSettings, error)
}

type settingsRepo struct {
	db   *gorm.DB
	log  *logger.Logger
	rows *collection.Collection[types.SiteSettings]
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	repoLog := baseLog.With("repo", "SettingsRepo")
	return &settingsRepo{
		db:   db,
		log:  repoLog,
		rows: collection.New[types.SiteSettings](db, baseLog, types.SiteSettings{}.TableName()),
	}
}

func (r *settingsRepo) Get(dbc dbctx.Context) (*types.SiteSettings, error) {
	row, err := r.rows.First(dbc, collection.Query{OrderBy: []collection.Order{collection.Asc("id")}})
	if errors.Is(err, errs.ErrNotFound) {
		return &types.SiteSettings{ID: types.SettingsID}, nil
	}
	return row, err
}

func (r *settingsRepo) SetField(dbc dbctx.Context, field types.SettingsField, value *string) (*types.SiteSettings, error) {
	if !field.Valid() {
		return nil, errs.Invalid("field", "unknown settings field %q", field)
	}
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var out *types.SiteSettings
	err := transaction.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		existing, err := r.rows.First(inner, collection.Query{OrderBy: []collection.Order{collection.Asc("id")}})
		switch {
		case errors.Is(err, errs.ErrNotFound):
			row := &types.SiteSettings{ID: types.SettingsID}
			applyField(row, field, value)
			out, err = r.rows.Insert(inner, row)
			return err
		case err != nil:
			return err
		}
		out, err = r.rows.Update(inner, existing.ID, map[string]any{string(field): value})
		return err
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug("Settings field updated", "field", string(field), "cleared", value == nil)
	return out, nil
}

func applyField(row *types.SiteSettings, field types.SettingsField, value *string) {
	switch field {
	case types.SettingsFieldLogo:
		row.LogoURL = value
	case types.SettingsFieldHeroImage:
		row.HeroImageURL = value
	case types.SettingsFieldResume:
		row.ResumeURL = value
	}
}
