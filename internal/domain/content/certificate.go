package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certificate struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"not null;column:title" json:"title"`
	Issuer        string    `gorm:"not null;column:issuer" json:"issuer"`
	IssueDate     Date      `gorm:"index;column:issue_date" json:"issue_date"`
	CredentialURL *string   `gorm:"column:credential_url" json:"credential_url"`
	ImageURL      *string   `gorm:"column:image_url" json:"image_url"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Certificate) TableName() string { return "certificates" }

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
