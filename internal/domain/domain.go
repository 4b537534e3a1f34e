package domain

import (
	"github.com/yungbote/portfolio-backend/internal/domain/auth"
	"github.com/yungbote/portfolio-backend/internal/domain/content"
	"github.com/yungbote/portfolio-backend/internal/domain/site"
	"github.com/yungbote/portfolio-backend/internal/domain/user"
)

const (
	RoleAdmin  = user.RoleAdmin
	RoleViewer = user.RoleViewer

	BlogStatusPublished = content.BlogStatusPublished
	BlogStatusDraft     = content.BlogStatusDraft

	ProjectStatusActive = content.ProjectStatusActive
	ProjectStatusHidden = content.ProjectStatusHidden

	MessageStatusUnread = content.MessageStatusUnread
	MessageStatusRead   = content.MessageStatusRead

	SettingsID = site.SettingsID

	SettingsFieldLogo      = site.SettingsFieldLogo
	SettingsFieldHeroImage = site.SettingsFieldHeroImage
	SettingsFieldResume    = site.SettingsFieldResume
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Section       = site.Section
	SiteSettings  = site.SiteSettings
	SettingsField = site.SettingsField

	Blog          = content.Blog
	Project       = content.Project
	Certificate   = content.Certificate
	Experiment    = content.Experiment
	SkillCategory = content.SkillCategory
	Skill         = content.Skill
	Message       = content.Message
	Date          = content.Date
)

var CloneSections = site.CloneSections

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&UserToken{},
		&Section{},
		&SiteSettings{},
		&Blog{},
		&Project{},
		&Certificate{},
		&Experiment{},
		&SkillCategory{},
		&Skill{},
		&Message{},
	}
}
