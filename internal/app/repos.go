package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	UserToken   repos.UserTokenRepo
	Section     repos.SectionRepo
	Settings    repos.SettingsRepo
	Skill       repos.SkillRepo
	Blog        repos.BlogRepo
	Project     repos.ProjectRepo
	Certificate repos.CertificateRepo
	Experiment  repos.ExperimentRepo
	Message     repos.MessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserToken:   repos.NewUserTokenRepo(db, log),
		Section:     repos.NewSectionRepo(db, log),
		Settings:    repos.NewSettingsRepo(db, log),
		Skill:       repos.NewSkillRepo(db, log),
		Blog:        repos.NewBlogRepo(db, log),
		Project:     repos.NewProjectRepo(db, log),
		Certificate: repos.NewCertificateRepo(db, log),
		Experiment:  repos.NewExperimentRepo(db, log),
		Message:     repos.NewMessageRepo(db, log),
	}
}
