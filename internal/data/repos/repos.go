package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos/auth"
	"github.com/yungbote/portfolio-backend/internal/data/repos/collection"
	"github.com/yungbote/portfolio-backend/internal/data/repos/content"
	"github.com/yungbote/portfolio-backend/internal/data/repos/site"
	"github.com/yungbote/portfolio-backend/internal/data/repos/user"
	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type SectionRepo = site.SectionRepo
type SettingsRepo = site.SettingsRepo

type SkillRepo = content.SkillRepo

type BlogRepo = *collection.Collection[types.Blog]
type ProjectRepo = *collection.Collection[types.Project]
type CertificateRepo = *collection.Collection[types.Certificate]
type ExperimentRepo = *collection.Collection[types.Experiment]
type MessageRepo = *collection.Collection[types.Message]

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	return site.NewSectionRepo(db, baseLog)
}
func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	return site.NewSettingsRepo(db, baseLog)
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	return content.NewSkillRepo(db, baseLog)
}

func NewBlogRepo(db *gorm.DB, baseLog *logger.Logger) BlogRepo {
	return collection.New[types.Blog](db, baseLog, types.Blog{}.TableName())
}
func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return collection.New[types.Project](db, baseLog, types.Project{}.TableName())
}
func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return collection.New[types.Certificate](db, baseLog, types.Certificate{}.TableName())
}
func NewExperimentRepo(db *gorm.DB, baseLog *logger.Logger) ExperimentRepo {
	return collection.New[types.Experiment](db, baseLog, types.Experiment{}.TableName())
}
func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return collection.New[types.Message](db, baseLog, types.Message{}.TableName())
}
