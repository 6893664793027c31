package model

import (
	"time"

	"docflow/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationInstance is one entry of a document's append-only ledger.
type ValidationInstance struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_validation_instances_document_step" json:"document_id"`
	ActorID    string          `gorm:"type:varchar(64);not null;index" json:"actor_id"`
	StepOrder  int             `gorm:"not null;uniqueIndex:idx_validation_instances_document_step" json:"step_order"`
	Action     workflow.Action `gorm:"type:varchar(10);not null" json:"action"`
	Reason     *string         `gorm:"type:varchar(200)" json:"reason"`
	RecordedAt time.Time       `gorm:"not null" json:"recorded_at"`
}

func (ValidationInstance) TableName() string { return "validation_instances" }

func (v *ValidationInstance) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
