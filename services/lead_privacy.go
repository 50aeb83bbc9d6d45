package services

import (
	"fmt"
	"strings"
	"time"

	"btb_landing_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnonymizeLeads replaces the personal data of every archived lead sent from email.
// Rows are kept so delivery statistics stay intact. Consent records are not
// touched: they are the evidence that processing was agreed to.
func AnonymizeLeads(db *gorm.DB, email string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, ErrMissingFields
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var submissions []models.LeadSubmission
		if err := tx.Where("LOWER(email) = ?", strings.ToLower(email)).Find(&submissions).Error; err != nil {
			return fmt.Errorf("failed to find leads: %w", err)
		}

		timestamp := time.Now().UTC().Format("20060102")
		for _, s := range submissions {
			suffix := uuid.New().String()[:8]
			updates := map[string]interface{}{
				"name":       "Anonymized " + suffix,
				"email":      fmt.Sprintf("deleted_%s_%s@anonymized.invalid", timestamp, suffix),
				"phone":      "",
				"ip_address": "",
				"user_agent": "",
			}
			if err := tx.Model(&models.LeadSubmission{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to anonymize lead %s: %w", s.ID, err)
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
