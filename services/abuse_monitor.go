package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	abuseWindow        = 10 * time.Minute
	abuseThreshold     = 5
	abuseAlertInterval = time.Hour
)

// AbuseMonitor counts failed CAPTCHA checks per IP and raises an alert when one
// address keeps failing. Alerts are rate limited to one per IP per hour.
type AbuseMonitor struct {
	mu         sync.Mutex
	failures   map[string][]time.Time
	alertedIPs map[string]time.Time
	alerts     []AbuseAlert
	now        func() time.Time

	// AlertRecipient receives an email per alert when Mailer is a real sender
	AlertRecipient string
}

// AbuseAlert is one raised alert
type AbuseAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Failures  int
}

// Monitor is the process-wide abuse monitor, nil until InitAbuseMonitor
var Monitor *AbuseMonitor

// NewAbuseMonitor creates an empty monitor
func NewAbuseMonitor(alertRecipient string) *AbuseMonitor {
	return &AbuseMonitor{
		failures:       make(map[string][]time.Time),
		alertedIPs:     make(map[string]time.Time),
		now:            time.Now,
		AlertRecipient: alertRecipient,
	}
}

// InitAbuseMonitor sets the global monitor and starts its cleanup loop
func InitAbuseMonitor(ctx context.Context, alertRecipient string) {
	Monitor = NewAbuseMonitor(alertRecipient)
	go Monitor.cleanupLoop(ctx)
}

// TrackFailedCaptcha records a failed or missing CAPTCHA for ip
func (m *AbuseMonitor) TrackFailedCaptcha(ctx context.Context, ip string) {
	if m == nil {
		return
	}

	m.mu.Lock()
	now := m.now()
	windowStart := now.Add(-abuseWindow)

	recent := m.failures[ip][:0]
	for _, t := range m.failures[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures[ip] = recent

	var alert *AbuseAlert
	if len(recent) >= abuseThreshold {
		alert = m.raiseLocked(ip, "Repeated CAPTCHA failures on the lead form", len(recent))
	}
	m.mu.Unlock()

	if alert != nil {
		m.notify(ctx, *alert)
	}
}

// raiseLocked records an alert unless ip was alerted within the last hour
func (m *AbuseMonitor) raiseLocked(ip, reason string, failures int) *AbuseAlert {
	if last, ok := m.alertedIPs[ip]; ok && m.now().Sub(last) < abuseAlertInterval {
		return nil
	}
	m.alertedIPs[ip] = m.now()

	alert := AbuseAlert{Timestamp: m.now(), IP: ip, Reason: reason, Failures: failures}
	// newest first, keep 100
	m.alerts = append([]AbuseAlert{alert}, m.alerts...)
	if len(m.alerts) > 100 {
		m.alerts = m.alerts[:100]
	}
	return &alert
}

func (m *AbuseMonitor) notify(ctx context.Context, alert AbuseAlert) {
	log.Printf("[SECURITY ALERT] %s from IP: %s (%d in %s)", alert.Reason, alert.IP, alert.Failures, abuseWindow)

	sender := Mailer
	if m.AlertRecipient == "" || IsDemoSender(sender) {
		return
	}
	email := &Email{
		To:      []string{m.AlertRecipient},
		Subject: "Security alert: " + alert.Reason,
		TextBody: fmt.Sprintf("Type: %s\nIP address: %s\nFailures: %d\nTime: %s\n",
			alert.Reason, alert.IP, alert.Failures, alert.Timestamp.Format(time.RFC1123)),
	}
	go func() {
		if err := sender.Send(context.WithoutCancel(ctx), email); err != nil {
			log.Printf("Failed to send security alert email: %v", err)
		}
	}()
}

// RecentAlerts returns a copy of the alert history, newest first
func (m *AbuseMonitor) RecentAlerts() []AbuseAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	alerts := make([]AbuseAlert, len(m.alerts))
	copy(alerts, m.alerts)
	return alerts
}

func (m *AbuseMonitor) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup drops counters and alert marks that can no longer matter
func (m *AbuseMonitor) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ip, attempts := range m.failures {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > abuseWindow {
			delete(m.failures, ip)
		}
	}
	for ip, last := range m.alertedIPs {
		if now.Sub(last) > abuseAlertInterval {
			delete(m.alertedIPs, ip)
		}
	}
}
