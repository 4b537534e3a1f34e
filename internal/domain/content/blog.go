package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BlogStatusPublished = "published"
	BlogStatusDraft     = "draft"
)

type Blog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Slug      string    `gorm:"not null;uniqueIndex;column:slug" json:"slug"`
	Category  string    `gorm:"column:category" json:"category"`
	Excerpt   string    `gorm:"column:excerpt" json:"excerpt"`
	Content   string    `gorm:"type:text;column:content" json:"content"`
	ReadTime  string    `gorm:"column:read_time" json:"read_time"`
	Status    string    `gorm:"not null;index;column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

func (b Blog) Published() bool { return b.Status == BlogStatusPublished }
