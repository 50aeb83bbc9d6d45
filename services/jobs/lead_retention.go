package jobs

import (
	"log"
	"time"

	"btb_landing_go/models"

	"gorm.io/gorm"
)

// PurgeExpiredLeads deletes archived leads older than retention. Consent logs
// are kept. A zero retention disables the purge.
func PurgeExpiredLeads(database *gorm.DB, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().Add(-retention)
	result := database.Where("created_at < ?", cutoff).Delete(&models.LeadSubmission{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d lead submissions older than %s", result.RowsAffected, cutoff.Format(time.RFC3339))
	}
	return result.RowsAffected, nil
}
