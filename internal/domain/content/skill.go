package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	OrderIndex int       `gorm:"not null;index;column:order_index" json:"order_index"`
	Skills     []Skill   `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"skills"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (SkillCategory) TableName() string { return "skill_categories" }

func (c *SkillCategory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type Skill struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index;column:category_id" json:"category_id"`
	OrderIndex int       `gorm:"not null;column:order_index" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Skill) TableName() string { return "skills" }

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
