package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
	"btb_landing_go/services/metrics"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrSubmissionInProgress is returned when Submit is called while a request is in flight
	ErrSubmissionInProgress = errors.New("lead submission already in progress")
	// ErrLeadTransport wraps failures where the lead endpoint never produced a usable reply
	ErrLeadTransport = errors.New("lead endpoint unreachable")
)

// SubmitOutcome classifies how a submit attempt ended
type SubmitOutcome string

const (
	OutcomeInvalid   SubmitOutcome = "invalid"
	OutcomeSucceeded SubmitOutcome = "succeeded"
	OutcomeRejected  SubmitOutcome = "rejected"
	OutcomeTransport SubmitOutcome = "transport_error"
)

// LeadReply is what the lead endpoint answered
type LeadReply struct {
	StatusCode int
	OK         bool // 2xx status
	Body       models.SendFormResponse
}

// Accepted reports whether both the HTTP status and the body flag signal success
func (r *LeadReply) Accepted() bool {
	return r != nil && r.OK && bool(r.Body.Success)
}

// LeadSender performs exactly one delivery attempt for a lead payload.
// A non-nil error wrapping ErrLeadTransport means no usable reply was received.
type LeadSender interface {
	Send(ctx context.Context, payload models.LeadPayload) (*LeadReply, error)
}

// LeadEndpoint is the process-wide sender used by the lead form handler
var LeadEndpoint LeadSender

// LeadSubmitter posts leads to a fixed endpoint as JSON
type LeadSubmitter struct {
	client   *resty.Client
	endpoint string
	metrics  *metrics.LeadMetrics
}

// NewLeadSubmitter creates a submitter for endpoint. A zero timeout leaves the
// request unbounded; cancellation then only comes from ctx or the transport.
func NewLeadSubmitter(endpoint string, timeout time.Duration, m *metrics.LeadMetrics) *LeadSubmitter {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &LeadSubmitter{
		client:   client,
		endpoint: endpoint,
		metrics:  m,
	}
}

// Endpoint returns the URL leads are posted to
func (s *LeadSubmitter) Endpoint() string {
	return s.endpoint
}

// Send issues a single POST with the payload. No retries are made.
func (s *LeadSubmitter) Send(ctx context.Context, payload models.LeadPayload) (*LeadReply, error) {
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.endpoint)
	if err != nil {
		s.metrics.ObserveForward(string(OutcomeTransport), time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrLeadTransport, err)
	}

	reply := &LeadReply{
		StatusCode: resp.StatusCode(),
		OK:         resp.IsSuccess(),
	}
	if err := json.Unmarshal(resp.Body(), &reply.Body); err != nil {
		s.metrics.ObserveForward(string(OutcomeTransport), time.Since(start))
		return nil, fmt.Errorf("%w: unreadable reply (status %d): %v", ErrLeadTransport, reply.StatusCode, err)
	}

	outcome := OutcomeRejected
	if reply.Accepted() {
		outcome = OutcomeSucceeded
	}
	s.metrics.ObserveForward(string(outcome), time.Since(start))
	return reply, nil
}

// LocalLeadSender hands leads straight to a receiver in the same process.
// The visitor's RequestMeta is taken from ctx, see WithRequestMeta.
type LocalLeadSender struct {
	Receiver *LeadReceiver
}

func (s *LocalLeadSender) Send(ctx context.Context, payload models.LeadPayload) (*LeadReply, error) {
	start := time.Now()
	reply := s.Receiver.Reply(ctx, payload, RequestMetaFrom(ctx))

	outcome := OutcomeRejected
	if reply.Accepted() {
		outcome = OutcomeSucceeded
	}
	s.Receiver.Metrics.ObserveForward(string(outcome), time.Since(start))
	return reply, nil
}

// SubmitResult is the user-facing result of one submit attempt
type SubmitResult struct {
	Outcome      SubmitOutcome
	Notification models.Notification
}

// LeadFormState holds the lead form, its current validation errors and the
// submitting flag. Only the submitting flag is safe for concurrent use.
type LeadFormState struct {
	Form   models.LeadForm
	Errors models.ValidationErrors

	submitting atomic.Bool
	metrics    *metrics.LeadMetrics
}

// NewLeadFormState wraps form in a fresh state
func NewLeadFormState(form models.LeadForm, m *metrics.LeadMetrics) *LeadFormState {
	return &LeadFormState{
		Form:    form,
		Errors:  models.ValidationErrors{},
		metrics: m,
	}
}

// Submitting reports whether a request is in flight
func (s *LeadFormState) Submitting() bool {
	return s.submitting.Load()
}

// SubmitLabel is the submit control caption for the current state
func (s *LeadFormState) SubmitLabel(ctx context.Context) string {
	if s.Submitting() {
		return i18n.T(ctx, "lead.form.submitting")
	}
	return i18n.T(ctx, "lead.form.submit")
}

// Reset returns the form to its initial state
func (s *LeadFormState) Reset() {
	s.Form = models.LeadForm{}
	s.Errors = models.ValidationErrors{}
}

// Submit validates the form and, when valid, sends it once through sender.
// Invalid forms never reach the network. The form is reset only after the
// endpoint confirms success; every other outcome keeps the entered values.
func (s *LeadFormState) Submit(ctx context.Context, sender LeadSender) (SubmitResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return SubmitResult{}, ErrSubmissionInProgress
	}
	defer s.submitting.Store(false)

	s.Errors = ValidateLeadForm(ctx, s.Form)
	if !s.Errors.Valid() {
		s.metrics.ObserveSubmission(string(OutcomeInvalid))
		return SubmitResult{
			Outcome:      OutcomeInvalid,
			Notification: models.ErrorNotification(i18n.T(ctx, "lead.notify.fix_errors")),
		}, nil
	}

	reply, err := sender.Send(ctx, s.Form.Payload())
	if err != nil {
		log.Printf("Lead form submission error: %v", err)
		s.metrics.ObserveSubmission(string(OutcomeTransport))
		return SubmitResult{
			Outcome:      OutcomeTransport,
			Notification: models.ErrorNotification(i18n.T(ctx, "lead.notify.offline")),
		}, nil
	}

	if reply.Accepted() {
		s.Reset()
		s.metrics.ObserveSubmission(string(OutcomeSucceeded))
		return SubmitResult{
			Outcome:      OutcomeSucceeded,
			Notification: models.SuccessNotification(i18n.T(ctx, "lead.notify.success")),
		}, nil
	}

	message := reply.Body.Error
	if message == "" {
		message = i18n.T(ctx, "lead.notify.failed")
	}
	s.metrics.ObserveSubmission(string(OutcomeRejected))
	return SubmitResult{
		Outcome:      OutcomeRejected,
		Notification: models.ErrorNotification(message),
	}, nil
}
