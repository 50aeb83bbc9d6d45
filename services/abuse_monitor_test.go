package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbuseMonitor(t *testing.T) {
	m := NewAbuseMonitor("")
	clock := time.Date(2024, 11, 18, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	ctx := context.Background()
	ip := "203.0.113.7"

	t.Run("alert after threshold", func(t *testing.T) {
		for i := 0; i < abuseThreshold-1; i++ {
			m.TrackFailedCaptcha(ctx, ip)
		}
		assert.Empty(t, m.RecentAlerts())

		m.TrackFailedCaptcha(ctx, ip)
		alerts := m.RecentAlerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, ip, alerts[0].IP)
		assert.Equal(t, abuseThreshold, alerts[0].Failures)
		assert.Contains(t, alerts[0].Reason, "CAPTCHA")
	})

	t.Run("alerts are rate limited per ip", func(t *testing.T) {
		for i := 0; i < abuseThreshold; i++ {
			m.TrackFailedCaptcha(ctx, ip)
		}
		assert.Len(t, m.RecentAlerts(), 1)
	})

	t.Run("failures outside the window are forgotten", func(t *testing.T) {
		other := "198.51.100.1"
		for i := 0; i < abuseThreshold-1; i++ {
			m.TrackFailedCaptcha(ctx, other)
		}
		clock = clock.Add(abuseWindow + time.Minute)
		m.TrackFailedCaptcha(ctx, other)
		assert.Len(t, m.RecentAlerts(), 1)
	})

	t.Run("cleanup", func(t *testing.T) {
		clock = clock.Add(2 * abuseAlertInterval)
		m.cleanup()
		m.mu.Lock()
		defer m.mu.Unlock()
		assert.Empty(t, m.failures)
		assert.Empty(t, m.alertedIPs)
	})
}

func TestAbuseMonitor_EmailsAlertRecipient(t *testing.T) {
	sender := &recordingSender{}
	previous := Mailer
	Mailer = sender
	t.Cleanup(func() { Mailer = previous })

	m := NewAbuseMonitor("security@btbsales.ru")
	for i := 0; i < abuseThreshold; i++ {
		m.TrackFailedCaptcha(context.Background(), "203.0.113.9")
	}

	assert.Eventually(t, func() bool { return len(sender.sentEmails()) == 1 }, time.Second, 10*time.Millisecond)
	email := sender.sentEmails()[0]
	assert.Equal(t, []string{"security@btbsales.ru"}, email.To)
	assert.Contains(t, email.TextBody, "203.0.113.9")
}

func TestAbuseMonitor_NilSafe(t *testing.T) {
	var m *AbuseMonitor
	assert.NotPanics(t, func() { m.TrackFailedCaptcha(context.Background(), "127.0.0.1") })
}
