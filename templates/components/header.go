package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HeaderScrollThreshold is the vertical offset in pixels past which the header turns opaque
const HeaderScrollThreshold = 50

const (
	headerBaseClass        = "site-header fixed top-0 left-0 right-0 z-50 transition-all duration-300"
	headerOpaqueClass      = "bg-white shadow-md"
	headerTransparentClass = "bg-transparent"
)

// IsScrolled reports whether a page offset puts the header in the scrolled state.
// The offset must be strictly greater than the threshold.
func IsScrolled(offset float64) bool {
	return offset > HeaderScrollThreshold
}

// HeaderClass returns the class list of the header for the given state
func HeaderClass(scrolled bool) string {
	if scrolled {
		return headerBaseClass + " " + headerOpaqueClass
	}
	return headerBaseClass + " " + headerTransparentClass
}

// Header renders the landing page header. It starts transparent; header.js
// toggles the opaque classes from the data attributes while the page is shown.
func Header() g.Node {
	return h.Header(
		h.ID("site-header"),
		h.Class(HeaderClass(IsScrolled(0))),
		g.Attr("data-scroll-threshold", strconv.Itoa(HeaderScrollThreshold)),
		g.Attr("data-scrolled-class", headerOpaqueClass),
		g.Attr("data-top-class", headerTransparentClass),
		h.Div(
			h.Class("container mx-auto px-4 py-4 flex justify-between items-center"),
			h.Div(h.Class("text-2xl font-bold gradient-text"), g.Text(SiteTagline)),
			phoneLink(),
		),
	)
}

// StaticHeader renders the always-opaque header used on secondary pages
func StaticHeader() g.Node {
	return h.Header(
		h.Class("bg-white shadow-md"),
		h.Div(
			h.Class("container mx-auto px-4 py-4 flex justify-between items-center"),
			h.A(h.Href("/"), h.Class("text-2xl font-bold gradient-text"), g.Text(SiteName)),
			phoneLink(),
		),
	)
}

func phoneLink() g.Node {
	return h.A(
		h.Href(PhoneHref),
		h.Class("text-lg font-semibold text-primary hover:text-secondary transition-colors"),
		g.Text(PhoneDisplay),
	)
}
