package model

import (
	"time"

	"docflow/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecord captures one realized state transition of a document.
type AuditRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_records_document_changed" json:"document_id"`
	ActorID    *string        `gorm:"type:varchar(64);index" json:"actor_id"` // nil for system-initiated transitions
	PriorState workflow.State `gorm:"type:varchar(1);not null" json:"prior_state"`
	NewState   workflow.State `gorm:"type:varchar(1);not null" json:"new_state"`
	ChangedAt  time.Time      `gorm:"not null;index:idx_audit_records_document_changed" json:"changed_at"`
}

func (AuditRecord) TableName() string { return "audit_records" }

func (a *AuditRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
