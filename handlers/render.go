package handlers

import (
	"btb_landing_go/services/metrics"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Metrics receives lead form and send-form observations. Nil disables them.
var Metrics *metrics.LeadMetrics

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// render writes component as an HTML response with the given status
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}
