package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
)

// LeadEmailData is the template data of the lead notification email
type LeadEmailData struct {
	Name      string
	Email     string
	Phone     string
	PhoneDial string // Phone reduced to + and digits for the tel: link
	SiteName  string
}

// BuildLeadNotificationEmail renders the notification sent to the sales inbox for a new lead.
// The lead's address is used as Reply-To so the manager can answer directly.
func BuildLeadNotificationEmail(ctx context.Context, lead models.LeadPayload, recipient, appURL string) (*Email, error) {
	data := LeadEmailData{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		PhoneDial: dialablePhone(lead.Phone),
		SiteName:  siteName(appURL),
	}

	lang := i18n.GetLocale(ctx)
	htmlBody, textBody, err := loadTemplate(emailTemplates, "lead_notification", lang, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render lead email: %w", err)
	}

	email := &Email{
		To:       []string{recipient},
		Subject:  i18n.T(ctx, "email.lead_subject", map[string]interface{}{"name": lead.Name}),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
	if IsValidLeadEmail(lead.Email) {
		email.ReplyTo = lead.Email
	}
	return email, nil
}

func dialablePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// siteName is the host part of appURL, "btbsales.ru" when it cannot be parsed
func siteName(appURL string) string {
	u, err := url.Parse(appURL)
	if err != nil || u.Hostname() == "" {
		return "btbsales.ru"
	}
	return u.Hostname()
}
