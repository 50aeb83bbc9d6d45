package services

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"btb_landing_go/models"
	"btb_landing_go/services/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leadEndpointStub records every request and answers with a fixed status/body
type leadEndpointStub struct {
	calls    atomic.Int32
	mu       sync.Mutex
	payloads []map[string]interface{}
	headers  []http.Header
}

func newLeadEndpoint(t *testing.T, status int, body string) (*httptest.Server, *leadEndpointStub) {
	t.Helper()
	stub := &leadEndpointStub{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		stub.mu.Lock()
		stub.payloads = append(stub.payloads, payload)
		stub.headers = append(stub.headers, r.Header.Clone())
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, stub
}

// unreachableURL returns a URL on a port nothing listens on
func unreachableURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()
	return "http://" + addr
}

func TestLeadFormState_ScenarioA_ValidFormReachesNetwork(t *testing.T) {
	server, stub := newLeadEndpoint(t, http.StatusOK, `{"success":true}`)
	state := NewLeadFormState(validLeadForm(), nil)

	assert.True(t, ValidateLeadForm(context.Background(), state.Form).Valid())

	_, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)
	assert.Equal(t, int32(1), stub.calls.Load())

	require.Len(t, stub.payloads, 1)
	assert.Equal(t, map[string]interface{}{
		"name":  "Иван",
		"email": "ivan@test.com",
		"phone": "+7 999 123-45-67",
	}, stub.payloads[0])
	assert.Contains(t, stub.headers[0].Get("Content-Type"), "application/json")
}

func TestLeadFormState_ScenarioB_InvalidFormSkipsNetwork(t *testing.T) {
	server, stub := newLeadEndpoint(t, http.StatusOK, `{"success":true}`)
	form := models.LeadForm{Name: "", Email: "bad", Phone: "abc", Agree: false}
	state := NewLeadFormState(form, nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, result.Outcome)
	assert.Equal(t, models.NotificationError, result.Notification.Kind)
	assert.Equal(t, "Пожалуйста, исправьте ошибки в форме", result.Notification.Message)
	assert.Len(t, state.Errors, 4)
	assert.Equal(t, form, state.Form)
	assert.Equal(t, int32(0), stub.calls.Load())
	assert.False(t, state.Submitting())
}

func TestLeadFormState_ScenarioC_SuccessResetsForm(t *testing.T) {
	server, stub := newLeadEndpoint(t, http.StatusOK, `{"success":true}`)
	state := NewLeadFormState(validLeadForm(), nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)

	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.Equal(t, models.NotificationSuccess, result.Notification.Kind)
	assert.Equal(t, "Спасибо! Ваша заявка успешно отправлена", result.Notification.Message)
	assert.Equal(t, models.LeadForm{}, state.Form)
	assert.False(t, state.Form.Agree)
	assert.Empty(t, state.Errors)
	assert.Equal(t, int32(1), stub.calls.Load())
	assert.False(t, state.Submitting())
}

func TestLeadFormState_ScenarioD_ServerErrorKeepsForm(t *testing.T) {
	server, _ := newLeadEndpoint(t, http.StatusOK, `{"success":false,"error":"Лимит превышен"}`)
	form := validLeadForm()
	state := NewLeadFormState(form, nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, models.NotificationError, result.Notification.Kind)
	assert.Equal(t, "Лимит превышен", result.Notification.Message)
	assert.Equal(t, form, state.Form)
}

func TestLeadFormState_ScenarioE_TransportFailureKeepsForm(t *testing.T) {
	form := validLeadForm()
	state := NewLeadFormState(form, nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(unreachableURL(t), 0, nil))
	require.NoError(t, err)

	assert.Equal(t, OutcomeTransport, result.Outcome)
	assert.Equal(t, "Не удалось отправить заявку. Проверьте подключение к интернету", result.Notification.Message)
	assert.Equal(t, form, state.Form)
	assert.False(t, state.Submitting())
}

func TestLeadFormState_RejectedWithoutMessageUsesFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success false", http.StatusOK, `{"success":false}`},
		{"server error with success true", http.StatusInternalServerError, `{"success":true}`},
		{"missing success flag", http.StatusOK, `{}`},
		{"bad request", http.StatusBadRequest, `{"error":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newLeadEndpoint(t, tt.status, tt.body)
			form := validLeadForm()
			state := NewLeadFormState(form, nil)

			result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
			require.NoError(t, err)
			assert.Equal(t, OutcomeRejected, result.Outcome)
			assert.Equal(t, "Произошла ошибка при отправке", result.Notification.Message)
			assert.Equal(t, form, state.Form)
		})
	}
}

func TestLeadFormState_ServerErrorMessagePassedThrough(t *testing.T) {
	server, _ := newLeadEndpoint(t, http.StatusBadRequest, `{"error":"Missing required fields"}`)
	state := NewLeadFormState(validLeadForm(), nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)
	assert.Equal(t, "Missing required fields", result.Notification.Message)
}

func TestLeadFormState_TruthySuccessFlag(t *testing.T) {
	server, _ := newLeadEndpoint(t, http.StatusOK, `{"success":1}`)
	state := NewLeadFormState(validLeadForm(), nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, result.Outcome)
}

func TestLeadFormState_NonJSONReplyIsTransportFailure(t *testing.T) {
	server, stub := newLeadEndpoint(t, http.StatusBadGateway, `<html>Bad Gateway</html>`)
	form := validLeadForm()
	state := NewLeadFormState(form, nil)

	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, nil))
	require.NoError(t, err)
	assert.Equal(t, OutcomeTransport, result.Outcome)
	assert.Equal(t, int32(1), stub.calls.Load())
	assert.Equal(t, form, state.Form)
}

func TestLeadFormState_TimeoutIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	state := NewLeadFormState(validLeadForm(), nil)
	result, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 50*time.Millisecond, nil))
	require.NoError(t, err)
	assert.Equal(t, OutcomeTransport, result.Outcome)
}

// blockingSender holds Send until released
type blockingSender struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *blockingSender) Send(ctx context.Context, payload models.LeadPayload) (*LeadReply, error) {
	s.calls.Add(1)
	close(s.started)
	<-s.release
	return &LeadReply{StatusCode: http.StatusOK, OK: true, Body: models.SendFormResponse{Success: true}}, nil
}

func TestLeadFormState_ConcurrentSubmitRejected(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}), release: make(chan struct{})}
	state := NewLeadFormState(validLeadForm(), nil)

	done := make(chan SubmitResult)
	go func() {
		result, _ := state.Submit(context.Background(), sender)
		done <- result
	}()

	<-sender.started
	assert.True(t, state.Submitting())
	assert.Equal(t, "Отправка...", state.SubmitLabel(context.Background()))

	_, err := state.Submit(context.Background(), sender)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(sender.release)
	result := <-done
	assert.Equal(t, OutcomeSucceeded, result.Outcome)
	assert.Equal(t, int32(1), sender.calls.Load())
	assert.False(t, state.Submitting())
	assert.Equal(t, "Получить программу и КП", state.SubmitLabel(context.Background()))
}

func TestLeadSubmitter_SendReply(t *testing.T) {
	server, _ := newLeadEndpoint(t, http.StatusOK, `{"success":true,"message":"Заявка успешно отправлена"}`)
	submitter := NewLeadSubmitter(server.URL, time.Second, nil)

	assert.Equal(t, server.URL, submitter.Endpoint())

	reply, err := submitter.Send(context.Background(), validLeadForm().Payload())
	require.NoError(t, err)
	assert.True(t, reply.Accepted())
	assert.Equal(t, http.StatusOK, reply.StatusCode)
	assert.Equal(t, "Заявка успешно отправлена", reply.Body.Message)
}

func TestLeadSubmitter_TransportErrorWrapped(t *testing.T) {
	submitter := NewLeadSubmitter(unreachableURL(t), 0, nil)
	_, err := submitter.Send(context.Background(), validLeadForm().Payload())
	assert.ErrorIs(t, err, ErrLeadTransport)
}

func TestLeadSubmitter_RecordsMetrics(t *testing.T) {
	server, _ := newLeadEndpoint(t, http.StatusOK, `{"success":true}`)
	reg := prometheus.NewRegistry()
	m := metrics.NewLeadMetrics(reg)

	state := NewLeadFormState(validLeadForm(), m)
	_, err := state.Submit(context.Background(), NewLeadSubmitter(server.URL, 0, m))
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "landing_lead_form_submissions_total")
	assert.Contains(t, names, "landing_lead_form_forward_latency_seconds")
}
