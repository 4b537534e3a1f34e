package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProjectStatusActive = "active"
	ProjectStatusHidden = "hidden"
)

var ProjectCategories = []string{"Full Stack", "Data Science", "Machine Learning", "Frontend"}

type Project struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"not null;column:title" json:"title"`
	Description string                      `gorm:"type:text;column:description" json:"description"`
	Category    string                      `gorm:"not null;column:category" json:"category"`
	TechStack   datatypes.JSONSlice[string] `gorm:"column:tech_stack" json:"tech_stack"`
	GithubURL   *string                     `gorm:"column:github_url" json:"github_url"`
	LiveURL     *string                     `gorm:"column:live_url" json:"live_url"`
	ImageURL    *string                     `gorm:"column:image_url" json:"image_url"`
	Status      string                      `gorm:"not null;index;column:status" json:"status"`
	CreatedAt   time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
