package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery status of a received lead
const (
	LeadStatusDelivered = "delivered"
	LeadStatusDemo      = "demo"
	LeadStatusFailed    = "failed"
)

// LeadSubmission is the archived copy of a lead received by the send-form endpoint
type LeadSubmission struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_lead_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null;index:idx_lead_email" json:"email"`
	Phone string `gorm:"not null" json:"phone"`

	// Delivery outcome
	Status        string `gorm:"not null;default:delivered;index:idx_lead_status" json:"status"`
	Provider      string `json:"provider,omitempty"`
	Attempts      int    `gorm:"not null;default:0" json:"attempts"` // Real delivery attempts, 0 in demo mode
	DeliveryError string `gorm:"type:text" json:"delivery_error,omitempty"`

	// Request metadata
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// BeforeCreate generates UUID
func (l *LeadSubmission) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// Payload returns the lead as it would be posted to the send-form endpoint
func (l *LeadSubmission) Payload() LeadPayload {
	return LeadPayload{Name: l.Name, Email: l.Email, Phone: l.Phone}
}

// TableName specifies the table name
func (LeadSubmission) TableName() string {
	return "lead_submissions"
}

// IsValidLeadStatus checks if a status value is known
func IsValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusDelivered, LeadStatusDemo, LeadStatusFailed:
		return true
	}
	return false
}
