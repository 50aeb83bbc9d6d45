package components

import (
	"btb_landing_go/models"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ToastRegionID is the container notifications are swapped into
const ToastRegionID = "toasts"

// ToastRegion renders the empty live region at the end of the body
func ToastRegion(children ...g.Node) g.Node {
	return h.Div(
		h.ID(ToastRegionID),
		h.Class("toast-region fixed bottom-4 right-4 z-50 space-y-2"),
		g.Attr("aria-live", "polite"),
		g.Group(children),
	)
}

// Toast renders a single notification
func Toast(n models.Notification) g.Node {
	if n.IsZero() {
		return nil
	}
	return h.Div(
		h.Class("toast toast-"+string(n.Kind)),
		h.Role(toastRole(n.Kind)),
		g.Attr("data-autohide", "5000"),
		h.Span(g.Text(n.Message)),
	)
}

// ToastOOB renders a notification that htmx swaps into the toast region out of band
func ToastOOB(n models.Notification) g.Node {
	if n.IsZero() {
		return nil
	}
	return h.Div(
		h.ID(ToastRegionID),
		g.Attr("hx-swap-oob", "beforeend"),
		Toast(n),
	)
}

func toastRole(kind models.NotificationKind) string {
	if kind == models.NotificationError {
		return "alert"
	}
	return "status"
}
