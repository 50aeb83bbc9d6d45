package middleware

import (
	"context"
	"net/http"
	"strings"

	"btb_landing_go/config"
	"btb_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const CSRFKey contextKey = "csrf_token"

// CSRFFormField is the hidden input name the lead form posts its token in
const CSRFFormField = "_csrf"

// csrfExemptPrefixes are machine endpoints without a browser session
var csrfExemptPrefixes = []string{"/api/send-form", "/health", "/metrics"}

// CSRF protects form posts with a double submit cookie.
// The JSON send-form endpoint is cross-origin by contract and is skipped.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			for _, prefix := range csrfExemptPrefixes {
				if strings.HasPrefix(path, prefix) {
					return true
				}
			}
			return false
		},
		TokenLookup:    "form:" + CSRFFormField + ",header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
		ErrorHandler: func(err error, c echo.Context) error {
			if isHTMXRequest(c) {
				return htmxErrorToast(c, i18n.T(c.Request().Context(), "lead.notify.session_expired"))
			}
			return err
		},
	})
}

// CSRFContext copies the token set by CSRF into the request context for templates
func CSRFContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := GetCSRFToken(c); token != "" {
				ctx := context.WithValue(c.Request().Context(), CSRFKey, token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get("csrf")
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}

// CSRFTokenFromContext returns the token stored by CSRFContext
func CSRFTokenFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(CSRFKey).(string); ok {
		return val
	}
	return ""
}
