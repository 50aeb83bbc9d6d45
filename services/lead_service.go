package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
	"btb_landing_go/services/metrics"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// ErrMissingFields is returned when name, email or phone is empty
var ErrMissingFields = errors.New("missing required fields")

var leadSanitizer = bluemonday.StrictPolicy()

// sanitizeLeadField strips markup from a user supplied value. bluemonday escapes
// entities, so they are unescaped back to plain text for storage and templates.
func sanitizeLeadField(value string) string {
	return strings.TrimSpace(html.UnescapeString(leadSanitizer.Sanitize(value)))
}

// ReceiveResult describes what happened to a received lead
type ReceiveResult struct {
	Submission *models.LeadSubmission
	Demo       bool
}

// LeadReceiver accepts leads posted to the send-form endpoint, archives them and
// forwards them to the sales inbox.
type LeadReceiver struct {
	DB        *gorm.DB
	Sender    EmailSender // nil or console sender means demo mode
	Recipient string
	AppURL    string
	Metrics   *metrics.LeadMetrics
}

// RequestMeta carries request details stored next to the lead
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta attaches the visitor's request details to ctx for in-process delivery
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFrom returns the details stored by WithRequestMeta
func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

// Receive checks that every field is still present once markup is stripped, emails
// the lead and records the delivery status. A delivery error is returned after the
// failed submission has been archived.
func (r *LeadReceiver) Receive(ctx context.Context, lead models.LeadPayload, meta RequestMeta) (*ReceiveResult, error) {
	clean := models.LeadPayload{
		Name:  sanitizeLeadField(lead.Name),
		Email: sanitizeLeadField(lead.Email),
		Phone: sanitizeLeadField(lead.Phone),
	}
	if clean.Name == "" || clean.Email == "" || clean.Phone == "" {
		return nil, ErrMissingFields
	}

	submission := &models.LeadSubmission{
		Name:      clean.Name,
		Email:     clean.Email,
		Phone:     clean.Phone,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	email, err := BuildLeadNotificationEmail(ctx, clean, r.Recipient, r.AppURL)
	if err != nil {
		submission.Status = models.LeadStatusFailed
		submission.DeliveryError = err.Error()
		r.archive(submission)
		return nil, err
	}

	if IsDemoSender(r.Sender) {
		if r.Sender != nil {
			_ = r.Sender.Send(ctx, email)
		} else {
			logEmailToConsole(email)
		}
		submission.Status = models.LeadStatusDemo
		r.archive(submission)
		return &ReceiveResult{Submission: submission, Demo: true}, nil
	}

	submission.Provider = r.Sender.Provider()
	submission.Attempts = 1
	if err := r.Sender.Send(ctx, email); err != nil {
		submission.Status = models.LeadStatusFailed
		submission.DeliveryError = err.Error()
		r.archive(submission)
		return nil, fmt.Errorf("failed to deliver lead: %w", err)
	}

	submission.Status = models.LeadStatusDelivered
	r.archive(submission)
	return &ReceiveResult{Submission: submission}, nil
}

// Reply receives lead and describes the outcome the way the send-form endpoint answers it
func (r *LeadReceiver) Reply(ctx context.Context, lead models.LeadPayload, meta RequestMeta) *LeadReply {
	result, err := r.Receive(ctx, lead, meta)
	switch {
	case errors.Is(err, ErrMissingFields):
		return newLeadReply(http.StatusBadRequest, models.SendFormResponse{
			Error: i18n.T(ctx, "send_form.missing_fields"),
		})
	case err != nil:
		log.Printf("Failed to deliver lead: %v", err)
		return newLeadReply(http.StatusInternalServerError, models.SendFormResponse{
			Error: i18n.T(ctx, "send_form.failed"),
		})
	case result.Demo:
		return newLeadReply(http.StatusOK, models.SendFormResponse{
			Success: true,
			Message: i18n.T(ctx, "send_form.demo"),
			Note:    i18n.T(ctx, "send_form.demo_note"),
		})
	}
	return newLeadReply(http.StatusOK, models.SendFormResponse{
		Success: true,
		Message: i18n.T(ctx, "send_form.delivered"),
	})
}

func newLeadReply(status int, body models.SendFormResponse) *LeadReply {
	return &LeadReply{
		StatusCode: status,
		OK:         status >= 200 && status < 300,
		Body:       body,
	}
}

// archive stores the submission and counts it. Storage errors are logged only,
// the lead has already been handled by then.
func (r *LeadReceiver) archive(submission *models.LeadSubmission) {
	r.Metrics.ObserveReceived(submission.Status, submission.Provider)
	if r.DB == nil {
		return
	}
	if err := r.DB.Create(submission).Error; err != nil {
		log.Printf("Failed to archive lead submission from %s: %v", submission.Email, err)
	}
}

// ListLeadSubmissions returns archived leads, newest first. An empty status returns all.
func ListLeadSubmissions(db *gorm.DB, status string, limit int) ([]models.LeadSubmission, error) {
	var submissions []models.LeadSubmission
	query := db.Model(&models.LeadSubmission{})
	if status != "" {
		if !models.IsValidLeadStatus(status) {
			return nil, fmt.Errorf("unknown lead status %q", status)
		}
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list lead submissions: %w", err)
	}
	return submissions, nil
}
