package services

import (
	"context"
	"fmt"
	"strings"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"

	"gorm.io/gorm"
)

// CurrentPrivacyPolicyVersion matches the "last updated" date on the /privacy page
const CurrentPrivacyPolicyVersion = "2024-11-18"

// LogConsent stores that a lead accepted the privacy policy. The consent
// statement is saved in the visitor's language as it was shown to them.
func LogConsent(ctx context.Context, db *gorm.DB, lead models.LeadPayload, consentType models.ConsentType, granted bool, ipAddress, userAgent string) error {
	consent := models.ConsentLog{
		Email:         strings.TrimSpace(lead.Email),
		Name:          strings.TrimSpace(lead.Name),
		ConsentType:   consentType,
		Granted:       granted,
		PolicyVersion: CurrentPrivacyPolicyVersion,
		PolicyText:    i18n.T(ctx, "consent.policy_text"),
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	}

	if err := db.WithContext(ctx).Create(&consent).Error; err != nil {
		return fmt.Errorf("failed to log consent: %w", err)
	}
	return nil
}

// ConsentsByEmail returns every consent record of an email address, newest first.
// Addresses are compared case-insensitively.
func ConsentsByEmail(db *gorm.DB, email string) ([]models.ConsentLog, error) {
	var consents []models.ConsentLog
	err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		Find(&consents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get consents: %w", err)
	}
	return consents, nil
}

// HasCurrentConsent reports whether the latest record of consentType for email
// grants it under CurrentPrivacyPolicyVersion
func HasCurrentConsent(db *gorm.DB, email string, consentType models.ConsentType) (bool, error) {
	consents, err := ConsentsByEmail(db, email)
	if err != nil {
		return false, err
	}
	for _, c := range consents {
		if c.ConsentType == consentType {
			return c.Granted && c.PolicyVersion == CurrentPrivacyPolicyVersion, nil
		}
	}
	return false, nil
}
