package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btb_landing_go/config"
	"btb_landing_go/db"
	"btb_landing_go/handlers"
	"btb_landing_go/middleware"
	"btb_landing_go/services"
	"btb_landing_go/services/i18n"
	"btb_landing_go/services/jobs"
	"btb_landing_go/services/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	middleware.InitAssetVersions(cfg.StaticDir)

	leadMetrics := metrics.NewLeadMetrics(nil)
	handlers.Metrics = leadMetrics

	// Email delivery for the send-form endpoint; demo mode when not configured
	if err := services.InitMailer(ctx, cfg); err != nil {
		log.Fatalf("Failed to initialize email sender: %v", err)
	}

	// Repeated CAPTCHA failures raise alerts to the sales inbox
	services.InitAbuseMonitor(ctx, cfg.RecipientEmail)

	// Rate limits are shared across instances when Redis is available
	var store middleware.RateLimitStore
	if client := middleware.NewRedisClient(ctx, cfg.RedisURL); client != nil {
		defer client.Close()
		store = middleware.NewRedisStore(client)
		log.Println("Rate limiting backed by Redis")
	}
	middleware.ConfigureRateLimiters(store, leadMetrics)

	// Leads aimed at our own send-form endpoint skip HTTP and its per-IP limit
	if cfg.LeadsDeliveredInProcess() {
		services.LeadEndpoint = &services.LocalLeadSender{Receiver: handlers.NewLeadReceiver(cfg)}
		log.Println("Lead form delivers in-process")
	} else {
		submitter := services.NewLeadSubmitter(cfg.LeadEndpointURL, cfg.LeadEndpointTimeout, leadMetrics)
		services.LeadEndpoint = submitter
		log.Printf("Lead form posts to %s", submitter.Endpoint())
	}

	// Retry failed deliveries and purge expired leads in the background
	go runLeadJobs(ctx, cfg)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Secure())

	// Make config available in context
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.Use(middleware.CSPNonce())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.CSRFContext())

	e.Static("/static", cfg.StaticDir)

	// Public pages
	e.GET("/", handlers.LandingHandler)
	e.GET("/privacy", handlers.PrivacyHandler)
	e.POST("/lead", handlers.LeadFormPostHandler, middleware.LeadFormRateLimiter.Middleware())

	// Lead delivery endpoint, callable cross-origin
	e.Any(config.SendFormPath, handlers.SendFormHandler, middleware.SendFormRateLimiter.Middleware())

	// SEO and operations
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/health", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func runLeadJobs(ctx context.Context, cfg *config.Config) {
	if cfg.LeadRetryInterval <= 0 || db.DB == nil {
		return
	}

	ticker := time.NewTicker(cfg.LeadRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := jobs.RetryFailedLeads(ctx, db.DB, services.Mailer, cfg.RecipientEmail, cfg.AppURL); err != nil {
				log.Printf("Error retrying failed leads: %v", err)
			}
			if _, err := jobs.PurgeExpiredLeads(db.DB, cfg.LeadRetention); err != nil {
				log.Printf("Error purging expired leads: %v", err)
			}
		}
	}
}
