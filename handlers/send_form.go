package handlers

import (
	"encoding/json"
	"net/http"

	"btb_landing_go/config"
	"btb_landing_go/db"
	"btb_landing_go/models"
	"btb_landing_go/services"
	"btb_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// SendFormHandler receives a lead as JSON and delivers it by email.
// It answers CORS preflights itself so it can be called from any origin.
func SendFormHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	ctx := c.Request().Context()

	setSendFormCORS(c, cfg)

	switch c.Request().Method {
	case http.MethodOptions:
		return c.NoContent(http.StatusOK)
	case http.MethodPost:
	default:
		return c.JSON(http.StatusMethodNotAllowed, echo.Map{"error": i18n.T(ctx, "send_form.method_not_allowed")})
	}

	var lead models.LeadPayload
	if err := json.NewDecoder(c.Request().Body).Decode(&lead); err != nil {
		c.Logger().Warnf("Invalid send-form body: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(ctx, "send_form.missing_fields")})
	}

	reply := NewLeadReceiver(cfg).Reply(ctx, lead, services.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if reply.StatusCode == http.StatusBadRequest {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reply.Body.Error})
	}
	return c.JSON(reply.StatusCode, reply.Body)
}

// NewLeadReceiver wires a receiver to the process-wide archive and mailer
func NewLeadReceiver(cfg *config.Config) *services.LeadReceiver {
	return &services.LeadReceiver{
		DB:        db.DB,
		Sender:    services.Mailer,
		Recipient: cfg.RecipientEmail,
		AppURL:    cfg.AppURL,
		Metrics:   Metrics,
	}
}

func setSendFormCORS(c echo.Context, cfg *config.Config) {
	header := c.Response().Header()
	if origin := allowedOrigin(cfg.AllowedOrigins, c.Request().Header.Get(echo.HeaderOrigin)); origin != "" {
		header.Set(echo.HeaderAccessControlAllowOrigin, origin)
		if origin != "*" {
			header.Add(echo.HeaderVary, echo.HeaderOrigin)
		}
	}
	if c.Request().Method == http.MethodOptions {
		header.Set(echo.HeaderAccessControlAllowMethods, "POST, OPTIONS")
		header.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
		header.Set(echo.HeaderAccessControlMaxAge, "86400")
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// "*" when every origin is allowed and "" when origin is not listed.
func allowedOrigin(allowed []string, origin string) string {
	if len(allowed) == 0 {
		return "*"
	}
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}
