package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"btb_landing_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender captures sent emails and optionally fails
type recordingSender struct {
	mu   sync.Mutex
	sent []*Email
	err  error
}

func (s *recordingSender) Provider() string { return "recording" }

func (s *recordingSender) Send(ctx context.Context, email *Email) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, email)
	return nil
}

func (s *recordingSender) sentEmails() []*Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Email(nil), s.sent...)
}

func testLead() models.LeadPayload {
	return models.LeadPayload{Name: "Иван", Email: "ivan@test.com", Phone: "+7 999 123-45-67"}
}

func TestLeadReceiver_MissingFields(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &recordingSender{}
	receiver := &LeadReceiver{DB: db, Sender: sender, Recipient: "sales@btbsales.ru"}

	for _, lead := range []models.LeadPayload{
		{Email: "ivan@test.com", Phone: "1"},
		{Name: "Иван", Phone: "1"},
		{Name: "Иван", Email: "ivan@test.com"},
	} {
		_, err := receiver.Receive(context.Background(), lead, RequestMeta{})
		assert.ErrorIs(t, err, ErrMissingFields)
	}

	assert.Empty(t, sender.sent)
	var count int64
	db.Model(&models.LeadSubmission{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLeadReceiver_MarkupOnlyFieldsAreMissing(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &recordingSender{}
	receiver := &LeadReceiver{DB: db, Sender: sender, Recipient: "sales@btbsales.ru"}

	for _, lead := range []models.LeadPayload{
		{Name: "<b></b>", Email: "ivan@test.com", Phone: "1"},
		{Name: "Иван", Email: "<script>x</script>", Phone: "1"},
		{Name: "Иван", Email: "ivan@test.com", Phone: "   "},
	} {
		_, err := receiver.Receive(context.Background(), lead, RequestMeta{})
		assert.ErrorIs(t, err, ErrMissingFields)
	}

	assert.Empty(t, sender.sentEmails())
	var count int64
	db.Model(&models.LeadSubmission{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLeadReceiver_Reply(t *testing.T) {
	db := setupLeadTestDB(t)

	tests := map[string]struct {
		sender  EmailSender
		lead    models.LeadPayload
		status  int
		success bool
		message string
		errText string
	}{
		"delivered":      {sender: &recordingSender{}, lead: testLead(), status: http.StatusOK, success: true, message: "Заявка успешно отправлена"},
		"demo":           {lead: testLead(), status: http.StatusOK, success: true, message: "Form submitted successfully (demo mode)"},
		"missing fields": {sender: &recordingSender{}, lead: models.LeadPayload{Name: "Иван"}, status: http.StatusBadRequest, errText: "Missing required fields"},
		"delivery error": {sender: &recordingSender{err: errors.New("timeout")}, lead: testLead(), status: http.StatusInternalServerError, errText: "Произошла ошибка при отправке"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			receiver := &LeadReceiver{DB: db, Sender: tt.sender, Recipient: "sales@btbsales.ru"}
			reply := receiver.Reply(context.Background(), tt.lead, RequestMeta{})

			assert.Equal(t, tt.status, reply.StatusCode)
			assert.Equal(t, tt.success, reply.Accepted())
			assert.Equal(t, tt.message, reply.Body.Message)
			assert.Equal(t, tt.errText, reply.Body.Error)
		})
	}
}

func TestLocalLeadSender(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &LocalLeadSender{Receiver: &LeadReceiver{DB: db, Recipient: "sales@btbsales.ru"}}

	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "203.0.113.7", UserAgent: "visitor-agent"})
	reply, err := sender.Send(ctx, testLead())
	require.NoError(t, err)
	assert.True(t, reply.Accepted())

	var stored models.LeadSubmission
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "203.0.113.7", stored.IPAddress)
	assert.Equal(t, "visitor-agent", stored.UserAgent)

	t.Run("submit through form state", func(t *testing.T) {
		state := NewLeadFormState(models.LeadForm{Name: "Иван", Email: "ivan@test.com", Phone: "123", Agree: true}, nil)
		result, err := state.Submit(context.Background(), sender)
		require.NoError(t, err)
		assert.Equal(t, OutcomeSucceeded, result.Outcome)
	})

	t.Run("rejected lead keeps the form", func(t *testing.T) {
		failing := &LocalLeadSender{Receiver: &LeadReceiver{DB: db, Sender: &recordingSender{err: errors.New("down")}}}
		state := NewLeadFormState(models.LeadForm{Name: "Иван", Email: "ivan@test.com", Phone: "123", Agree: true}, nil)
		result, err := state.Submit(context.Background(), failing)
		require.NoError(t, err)
		assert.Equal(t, OutcomeRejected, result.Outcome)
		assert.Equal(t, "Произошла ошибка при отправке", result.Notification.Message)
		assert.Equal(t, "Иван", state.Form.Name)
	})
}

func TestLeadReceiver_Delivered(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &recordingSender{}
	receiver := &LeadReceiver{DB: db, Sender: sender, Recipient: "sales@btbsales.ru", AppURL: "https://btbsales.ru"}

	result, err := receiver.Receive(context.Background(), testLead(), RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test-agent"})
	require.NoError(t, err)
	assert.False(t, result.Demo)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Новая заявка с сайта от Иван", sender.sent[0].Subject)
	assert.Equal(t, []string{"sales@btbsales.ru"}, sender.sent[0].To)

	var stored models.LeadSubmission
	require.NoError(t, db.First(&stored, "id = ?", result.Submission.ID).Error)
	assert.Equal(t, models.LeadStatusDelivered, stored.Status)
	assert.Equal(t, "recording", stored.Provider)
	assert.Equal(t, "10.0.0.1", stored.IPAddress)
	assert.Equal(t, "test-agent", stored.UserAgent)
	assert.Equal(t, "+7 999 123-45-67", stored.Phone)
}

func TestLeadReceiver_DemoMode(t *testing.T) {
	db := setupLeadTestDB(t)

	for name, receiver := range map[string]*LeadReceiver{
		"no sender":      {DB: db, Recipient: "sales@btbsales.ru"},
		"console sender": {DB: db, Sender: &ConsoleSender{}, Recipient: "sales@btbsales.ru"},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := receiver.Receive(context.Background(), testLead(), RequestMeta{})
			require.NoError(t, err)
			assert.True(t, result.Demo)
			assert.Equal(t, models.LeadStatusDemo, result.Submission.Status)
			assert.Empty(t, result.Submission.Provider)
		})
	}

	var count int64
	db.Model(&models.LeadSubmission{}).Where("status = ?", models.LeadStatusDemo).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestLeadReceiver_DeliveryFailureArchived(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &recordingSender{err: errors.New("smtp: 535 authentication failed")}
	receiver := &LeadReceiver{DB: db, Sender: sender, Recipient: "sales@btbsales.ru"}

	_, err := receiver.Receive(context.Background(), testLead(), RequestMeta{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")

	var stored models.LeadSubmission
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, models.LeadStatusFailed, stored.Status)
	assert.Contains(t, stored.DeliveryError, "authentication failed")
}

func TestLeadReceiver_SanitizesMarkup(t *testing.T) {
	db := setupLeadTestDB(t)
	sender := &recordingSender{}
	receiver := &LeadReceiver{DB: db, Sender: sender, Recipient: "sales@btbsales.ru"}

	lead := testLead()
	lead.Name = `<script>alert(1)</script>Иван & Co`
	result, err := receiver.Receive(context.Background(), lead, RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, "Иван & Co", result.Submission.Name)
	assert.NotContains(t, sender.sent[0].HTMLBody, "<script>")
	assert.Contains(t, sender.sent[0].HTMLBody, "Иван &amp; Co")
}

func TestLeadReceiver_WithoutDatabase(t *testing.T) {
	receiver := &LeadReceiver{Sender: &recordingSender{}, Recipient: "sales@btbsales.ru"}
	result, err := receiver.Receive(context.Background(), testLead(), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusDelivered, result.Submission.Status)
}

func TestListLeadSubmissions(t *testing.T) {
	db := setupLeadTestDB(t)
	require.NoError(t, db.Create(&models.LeadSubmission{Name: "A", Email: "a@a.ru", Phone: "1", Status: models.LeadStatusDelivered}).Error)
	require.NoError(t, db.Create(&models.LeadSubmission{Name: "B", Email: "b@b.ru", Phone: "2", Status: models.LeadStatusFailed}).Error)

	all, err := ListLeadSubmissions(db, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := ListLeadSubmissions(db, models.LeadStatusFailed, 0)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "B", failed[0].Name)

	limited, err := ListLeadSubmissions(db, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = ListLeadSubmissions(db, "lost", 0)
	assert.Error(t, err)
}
