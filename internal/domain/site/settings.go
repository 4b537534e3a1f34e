package site

import "time"

// SettingsID is the primary key of the single site_settings row.
const SettingsID uint = 1

type SiteSettings struct {
	ID           uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LogoURL      *string   `gorm:"column:logo_url" json:"logo_url"`
	HeroImageURL *string   `gorm:"column:hero_image_url" json:"hero_image_url"`
	ResumeURL    *string   `gorm:"column:resume_url" json:"resume_url"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (SiteSettings) TableName() string { return "site_settings" }

// SettingsField names a nullable URL column of site_settings.
type SettingsField string

const (
	SettingsFieldLogo      SettingsField = "logo_url"
	SettingsFieldHeroImage SettingsField = "hero_image_url"
	SettingsFieldResume    SettingsField = "resume_url"
)

func (f SettingsField) Valid() bool {
	switch f {
	case SettingsFieldLogo, SettingsFieldHeroImage, SettingsFieldResume:
		return true
	default:
		return false
	}
}
