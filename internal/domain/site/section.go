package site

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is one block of the public page. Only IsVisible and OrderIndex
// change after seeding.
type Section struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex;column:name" json:"name"`
	IsVisible  bool      `gorm:"not null;column:is_visible" json:"is_visible"`
	OrderIndex int       `gorm:"not null;index;column:order_index" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Section) TableName() string { return "sections" }

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CloneSections copies a slice of sections so callers never share backing arrays.
func CloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	copy(out, in)
	return out
}
