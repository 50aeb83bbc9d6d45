package middleware

import (
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
)

// toastRegionID matches components.ToastRegionID
const toastRegionID = "toasts"

func isHTMXRequest(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// htmxErrorToast answers an htmx request with an out-of-band error toast and
// leaves the swap target untouched. htmx drops the body of non-2xx responses,
// so the status is always 200.
func htmxErrorToast(c echo.Context, message string) error {
	c.Response().Header().Set("HX-Reswap", "none")
	return c.HTML(http.StatusOK,
		`<div id="`+toastRegionID+`" hx-swap-oob="beforeend">`+
			`<div class="toast toast-error" role="alert" data-autohide="5000"><span>`+html.EscapeString(message)+`</span></div>`+
			`</div>`)
}
