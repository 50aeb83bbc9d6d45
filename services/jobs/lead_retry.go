package jobs

import (
	"context"
	"log"

	"btb_landing_go/models"
	"btb_landing_go/services"

	"gorm.io/gorm"
)

// MaxDeliveryAttempts caps how often a failed lead is re-sent
const MaxDeliveryAttempts = 5

// RetryFailedLeads re-sends archived leads whose delivery failed. Leads that
// still fail keep the failed status with their attempt counter raised.
func RetryFailedLeads(ctx context.Context, database *gorm.DB, sender services.EmailSender, recipient, appURL string) (int, error) {
	if services.IsDemoSender(sender) {
		return 0, nil
	}

	var leads []models.LeadSubmission
	err := database.WithContext(ctx).
		Where("status = ?", models.LeadStatusFailed).
		Where("attempts < ?", MaxDeliveryAttempts).
		Order("created_at ASC").
		Find(&leads).Error
	if err != nil {
		return 0, err
	}

	delivered := 0
	for i := range leads {
		lead := &leads[i]

		email, err := services.BuildLeadNotificationEmail(ctx, lead.Payload(), recipient, appURL)
		if err != nil {
			log.Printf("Failed to rebuild notification for lead %s: %v", lead.ID, err)
			continue
		}

		updates := map[string]interface{}{
			"attempts": lead.Attempts + 1,
			"provider": sender.Provider(),
		}
		if err := sender.Send(ctx, email); err != nil {
			updates["delivery_error"] = err.Error()
			log.Printf("Retry %d for lead %s failed: %v", lead.Attempts+1, lead.ID, err)
		} else {
			updates["status"] = models.LeadStatusDelivered
			updates["delivery_error"] = ""
			delivered++
		}

		if err := database.WithContext(ctx).Model(lead).Updates(updates).Error; err != nil {
			log.Printf("Failed to update lead %s after retry: %v", lead.ID, err)
		}
	}

	if len(leads) > 0 {
		log.Printf("Lead retry job: %d of %d failed leads delivered", delivered, len(leads))
	}
	return delivered, nil
}
