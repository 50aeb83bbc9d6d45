package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Cloudflare rejects longer tokens without looking at them
const maxTurnstileTokenLength = 2048

var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var turnstileClient = resty.New().SetTimeout(10 * time.Second)

// ErrCaptchaRejected means Cloudflare answered and refused the token
var ErrCaptchaRejected = errors.New("captcha rejected")

// TurnstileResponse is the siteverify reply
type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	Action      string    `json:"action"`
	ErrorCodes  []string  `json:"error-codes"`
}

// VerifyTurnstileToken checks a lead form CAPTCHA token with Cloudflare.
// A refused token wraps ErrCaptchaRejected; transport problems do not.
func VerifyTurnstileToken(ctx context.Context, token, secretKey, ip string) (bool, error) {
	if token == "" || secretKey == "" {
		return false, fmt.Errorf("missing token or secret key")
	}
	if len(token) > maxTurnstileTokenLength {
		return false, fmt.Errorf("%w: token too long", ErrCaptchaRejected)
	}

	var result TurnstileResponse
	resp, err := turnstileClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   secretKey,
			"response": token,
			"remoteip": ip,
		}).
		SetResult(&result).
		ForceContentType("application/json").
		Post(turnstileVerifyURL)
	if err != nil {
		return false, fmt.Errorf("failed to verify token: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("turnstile siteverify returned %d", resp.StatusCode())
	}

	if !result.Success {
		return false, fmt.Errorf("%w: %s", ErrCaptchaRejected, strings.Join(result.ErrorCodes, ", "))
	}
	return true, nil
}
