package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

// Message is a contact form submission.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Subject   string    `gorm:"column:subject" json:"subject"`
	Message   string    `gorm:"type:text;not null;column:message" json:"message"`
	Status    string    `gorm:"not null;index;column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
