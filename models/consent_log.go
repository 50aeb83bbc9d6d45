package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsentType represents the type of consent given
type ConsentType string

// ConsentTypeDataProcessing is the agreement to the privacy policy on the lead form (152-FZ)
const ConsentTypeDataProcessing ConsentType = "DATA_PROCESSING"

// ConsentLog is an immutable record that a lead accepted the privacy policy.
type ConsentLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_consent_created_at" json:"created_at"`

	// Subject identification, denormalized for historical accuracy
	Email string `gorm:"not null;index:idx_consent_email" json:"email"`
	Name  string `json:"name"`

	ConsentType   ConsentType `gorm:"not null;index:idx_consent_type" json:"consent_type"`
	Granted       bool        `gorm:"not null" json:"granted"`
	PolicyVersion string      `gorm:"not null" json:"policy_version"`
	PolicyText    string      `gorm:"type:text;not null" json:"policy_text"` // Snapshot of policy at time of consent

	// Request metadata (for legal evidence)
	IPAddress string `gorm:"not null" json:"ip_address"`
	UserAgent string `gorm:"not null" json:"user_agent"`
}

// BeforeCreate generates UUID
func (c *ConsentLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of consent logs (immutability)
func (c *ConsentLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of consent logs (immutability)
func (c *ConsentLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (ConsentLog) TableName() string {
	return "consent_logs"
}
