package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"btb_landing_go/config"
	"btb_landing_go/templates/emails"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/gophish/gomail"
	"github.com/resend/resend-go/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrEmailNotConfigured means the selected provider has no credentials
var ErrEmailNotConfigured = errors.New("email delivery not configured")

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

func (e *Email) validate() error {
	if len(e.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if e.HTMLBody == "" && e.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}
	return nil
}

// EmailSender delivers an email through one provider
type EmailSender interface {
	Send(ctx context.Context, email *Email) error
	Provider() string
}

// Mailer is the process-wide sender; nil when delivery is not configured
var Mailer EmailSender

// NewEmailSender builds the sender selected by cfg.EmailProvider.
// In test mode emails are only logged to the console.
func NewEmailSender(ctx context.Context, cfg *config.Config) (EmailSender, error) {
	if cfg.EmailTestMode {
		return &ConsoleSender{}, nil
	}

	from := formatFromAddress(cfg.EmailFromName, cfg.EmailFrom)

	switch cfg.EmailProvider {
	case config.EmailProviderResend, "":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("%w: RESEND_API_KEY not configured", ErrEmailNotConfigured)
		}
		return NewResendSender(cfg.ResendAPIKey, from), nil
	case config.EmailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("%w: SENDGRID_API_KEY not configured", ErrEmailNotConfigured)
		}
		return NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName), nil
	case config.EmailProviderSES:
		opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
		// Explicit SES keys win over the default credential chain
		if cfg.SESAccessKeyID != "" && cfg.SESSecretAccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.SESAccessKeyID, cfg.SESSecretAccessKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewSESSender(sesv2.NewFromConfig(awsCfg), from), nil
	case config.EmailProviderSMTP:
		if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("%w: SMTP_USER/SMTP_PASSWORD not configured", ErrEmailNotConfigured)
		}
		return NewSMTPSender(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFromName), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

// InitMailer sets Mailer from configuration. A provider without credentials
// leaves Mailer nil, which makes the send-form endpoint answer in demo mode.
func InitMailer(ctx context.Context, cfg *config.Config) error {
	sender, err := NewEmailSender(ctx, cfg)
	if err != nil {
		Mailer = nil
		if errors.Is(err, ErrEmailNotConfigured) {
			log.Printf("[WARNING] %v - leads will be logged only (demo mode)", err)
			return nil
		}
		return err
	}
	Mailer = sender
	log.Printf("Email delivery via %s", sender.Provider())
	return nil
}

func formatFromAddress(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// ConsoleSender logs emails instead of sending them
type ConsoleSender struct{}

func (s *ConsoleSender) Provider() string { return "console" }

func (s *ConsoleSender) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}
	logEmailToConsole(email)
	log.Printf("✅ Email logged successfully (test mode - not actually sent)")
	return nil
}

// IsDemoSender reports whether sender does not actually deliver mail
func IsDemoSender(sender EmailSender) bool {
	if sender == nil {
		return true
	}
	_, console := sender.(*ConsoleSender)
	return console
}

// ResendSender sends emails using the Resend API
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Provider() string { return config.EmailProviderResend }

func (s *ResendSender) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
		ReplyTo: email.ReplyTo,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendGridSender sends emails using the SendGrid v3 API
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Provider() string { return config.EmailProviderSendGrid }

func (s *SendGridSender) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	text := email.TextBody
	if text == "" {
		text = email.HTMLBody
	}

	for _, recipient := range email.To {
		message := mail.NewSingleEmail(from, email.Subject, mail.NewEmail("", recipient), text, email.HTMLBody)
		if email.ReplyTo != "" {
			message.SetReplyTo(mail.NewEmail("", email.ReplyTo))
		}

		response, err := s.client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to send email via SendGrid: %w", err)
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
		}
	}

	log.Printf("Email sent successfully via SendGrid to: %v", email.To)
	return nil
}

// SESSender sends emails using AWS SES v2
type SESSender struct {
	client *sesv2.Client
	from   string
}

func NewSESSender(client *sesv2.Client, from string) *SESSender {
	return &SESSender{client: client, from: from}
}

func (s *SESSender) Provider() string { return config.EmailProviderSES }

func (s *SESSender) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	body := &sestypes.Body{}
	if email.TextBody != "" {
		body.Text = &sestypes.Content{Data: aws.String(email.TextBody), Charset: aws.String("UTF-8")}
	}
	if email.HTMLBody != "" {
		body.Html = &sestypes.Content{Data: aws.String(email.HTMLBody), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &sestypes.Destination{ToAddresses: email.To},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}
	if email.ReplyTo != "" {
		input.ReplyToAddresses = []string{email.ReplyTo}
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	log.Printf("Email sent successfully via SES (ID: %s) to: %v", aws.ToString(out.MessageId), email.To)
	return nil
}

// SMTPSender sends emails over SMTP. Port 465 uses implicit TLS, other ports STARTTLS.
type SMTPSender struct {
	dialer   *gomail.Dialer
	user     string
	fromName string
}

func NewSMTPSender(host string, port int, user, password, fromName string) *SMTPSender {
	dialer := gomail.NewDialer(host, port, user, password)
	dialer.TLSConfig = &tls.Config{ServerName: host}

	return &SMTPSender{
		dialer:   dialer,
		user:     user,
		fromName: fromName,
	}
}

func (s *SMTPSender) Provider() string { return config.EmailProviderSMTP }

func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := newSMTPMessage(s.user, s.fromName, email)
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP (%s:%d): %w", s.dialer.Host, s.dialer.Port, err)
	}

	log.Printf("Email sent successfully via SMTP (%s:%d) to: %v", s.dialer.Host, s.dialer.Port, email.To)
	return nil
}

// newSMTPMessage builds a multipart/alternative message, plain text first
func newSMTPMessage(from, fromName string, email *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)
	m.SetDateHeader("Date", time.Now())

	switch {
	case email.TextBody != "" && email.HTMLBody != "":
		m.SetBody("text/plain", email.TextBody)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.TextBody != "":
		m.SetBody("text/plain", email.TextBody)
	default:
		m.SetBody("text/html", email.HTMLBody)
	}
	return m
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	if email.ReplyTo != "" {
		log.Printf("Reply-To: %s", email.ReplyTo)
	}
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate shortens s to at most maxLen bytes without splitting a rune
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// loadTemplate renders templateName from fsys. It tries templateName_lang first and
// falls back to the base file. HTML goes through html/template, text through text/template.
func loadTemplate(fsys fs.FS, templateName string, lang string, data interface{}) (html string, text string, err error) {
	read := func(ext string) (string, []byte, error) {
		path := fmt.Sprintf("%s_%s%s", templateName, lang, ext)
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			path = templateName + ext
			content, err = fs.ReadFile(fsys, path)
			if err != nil {
				return "", nil, fmt.Errorf("failed to read template %s: %w", path, err)
			}
		}
		return path, content, nil
	}

	path, content, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", path, err)
	}

	path, content, err = read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", path, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// emailTemplates is swapped in tests
var emailTemplates fs.FS = emails.FS
