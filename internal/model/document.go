package model

import (
	"time"

	"docflow/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a company file moving through the approval workflow.
// CompanyID is the only link to its owner; ledger and audit rows point back by DocumentID.
type Document struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	FileURL        string         `gorm:"type:varchar(500);not null" json:"file_url"`
	ValidationFlow string         `gorm:"type:text;not null" json:"validation_flow"` // opaque JSON
	State          workflow.State `gorm:"type:varchar(1);not null;default:'P';index" json:"state"`
	Version        int            `gorm:"not null;default:0" json:"version"` // bumped on every state write
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
