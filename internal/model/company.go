package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company owns documents. Deleting a company that still has documents is restricted.
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaxID         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"tax_id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Location      string    `gorm:"type:varchar(100);not null" json:"location"`
	EmployeeCount int       `gorm:"not null" json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
