package middleware

import (
	"net/http"
	"strings"
	"time"

	"btb_landing_go/config"
	"btb_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const (
	langCookieName = "lang"
	langCookieTTL  = 365 * 24 * time.Hour
)

// Locale picks the page language and stores it in both the echo and the
// request context. Order: ?lang= (remembered in a cookie), the lang cookie,
// Accept-Language, then Russian.
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := resolveLanguage(c)
			if c.QueryParam("lang") != "" {
				setLanguageCookie(c, lang, cfg.IsProduction())
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
			return next(c)
		}
	}
}

func resolveLanguage(c echo.Context) string {
	if q := c.QueryParam("lang"); q != "" {
		if i18n.IsSupported(q) {
			return q
		}
		return i18n.DefaultLanguage()
	}
	if cookie, err := c.Cookie(langCookieName); err == nil && i18n.IsSupported(cookie.Value) {
		return cookie.Value
	}
	return languageFromHeader(c.Request().Header.Get("Accept-Language"))
}

// languageFromHeader picks the first supported language of an Accept-Language value
func languageFromHeader(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if i18n.IsSupported(base) {
			return base
		}
	}
	return i18n.DefaultLanguage()
}

// setLanguageCookie remembers lang for later visits
func setLanguageCookie(c echo.Context, lang string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Path:     "/",
		Expires:  time.Now().Add(langCookieTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetLocale returns the language chosen by Locale
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.DefaultLanguage()
}
