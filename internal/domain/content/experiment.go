package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExperimentStatusInProgress = "In Progress"
	ExperimentStatusCompleted  = "Completed"
	ExperimentStatusPlanned    = "Planned"
)

var ExperimentStatuses = []string{ExperimentStatusInProgress, ExperimentStatusCompleted, ExperimentStatusPlanned}

// Experiment is a Data Science Lab entry.
type Experiment struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"not null;column:title" json:"title"`
	Description string                      `gorm:"type:text;column:description" json:"description"`
	TechStack   datatypes.JSONSlice[string] `gorm:"column:tech_stack" json:"tech_stack"`
	NotebookURL *string                     `gorm:"column:notebook_url" json:"notebook_url"`
	DatasetURL  *string                     `gorm:"column:dataset_url" json:"dataset_url"`
	Status      string                      `gorm:"not null;column:status" json:"status"`
	CreatedAt   time.Time                   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Experiment) TableName() string { return "experiments" }

func (e *Experiment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
