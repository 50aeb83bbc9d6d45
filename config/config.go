package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email providers understood by services.NewEmailSender
const (
	EmailProviderResend   = "resend"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
	EmailProviderSMTP     = "smtp"
)

// SendFormPath is where the JSON lead endpoint is mounted
const SendFormPath = "/api/send-form"

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	AppURL      string
	StaticDir   string
	// Lead form submission target
	LeadEndpointURL     string
	LeadEndpointTimeout time.Duration // Zero means no client-side timeout
	// Lead archive maintenance
	LeadRetention     time.Duration // Archived leads older than this are deleted, zero keeps them
	LeadRetryInterval time.Duration // How often failed deliveries are retried, zero disables retries
	// Email delivery for the send-form endpoint
	EmailProvider  string
	EmailTestMode  bool // When true, emails are logged to console instead of sent
	EmailFrom      string
	EmailFromName  string
	RecipientEmail string
	ResendAPIKey   string
	SendGridAPIKey string
	AWSRegion      string
	SMTPServer     string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	// Optional static SES keys, the default AWS chain is used otherwise
	SESAccessKeyID     string
	SESSecretAccessKey string
	// Other
	AllowedOrigins []string
	RedisURL       string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	appURL := strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/")

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		DBPath:              getEnv("DB_PATH", "db/app.db"),
		Environment:         environment,
		AppURL:              appURL,
		StaticDir:           getEnv("STATIC_DIR", "static"),
		LeadEndpointURL:     getEnv("LEAD_ENDPOINT_URL", appURL+SendFormPath),
		LeadEndpointTimeout: getEnvDuration("LEAD_ENDPOINT_TIMEOUT", 0),
		LeadRetention:       getEnvDuration("LEAD_RETENTION", 365*24*time.Hour),
		LeadRetryInterval:   getEnvDuration("LEAD_RETRY_INTERVAL", 15*time.Minute),
		EmailProvider:       strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderResend)),
		EmailTestMode:       getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		EmailFrom:           getEnv("EMAIL_FROM", "noreply@btbsales.ru"),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "B2B Sales"),
		RecipientEmail:      getEnv("RECIPIENT_EMAIL", "email@btbsales.ru"),
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		AWSRegion:           getEnv("AWS_REGION", "eu-central-1"),
		SESAccessKeyID:      os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey:  os.Getenv("SES_SECRET_ACCESS_KEY"),
		SMTPServer:          getEnv("SMTP_SERVER", "smtp.yandex.ru"),
		SMTPPort:            getEnvInt("SMTP_PORT", 465),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", "*"),
		RedisURL:            os.Getenv("REDIS_URL"),
		TurnstileSiteKey:    getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey:  os.Getenv("TURNSTILE_SECRET_KEY"),
	}
}

// IsProduction reports whether the app runs with production hardening
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LeadsDeliveredInProcess reports whether the lead form targets this server's own
// send-form endpoint, in which case leads skip the HTTP round trip.
func (c *Config) LeadsDeliveredInProcess() bool {
	endpoint := strings.TrimRight(c.LeadEndpointURL, "/")
	return endpoint == "" || endpoint == c.AppURL+SendFormPath
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key, defaultValue string) []string {
	var list []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// getEnvDuration accepts Go duration strings ("15s") or a plain number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
	return defaultValue
}
