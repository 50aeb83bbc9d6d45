package components

import (
	"context"

	"btb_landing_go/middleware"
	"btb_landing_go/models"
	"btb_landing_go/services/i18n"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Layout renders the HTML document shell shared by every page
func Layout(ctx context.Context, seo *models.SEO, body ...g.Node) g.Node {
	nonce := middleware.GetNonce(ctx)

	return h.Doctype(
		h.HTML(
			h.Lang(i18n.GetLocale(ctx)),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.If(middleware.CSRFTokenFromContext(ctx) != "",
					h.Meta(h.Name("csrf-token"), h.Content(middleware.CSRFTokenFromContext(ctx))),
				),
				seoHead(seo),
				h.Link(h.Rel("icon"), h.Type("image/svg+xml"), h.Href(middleware.AssetURL(ctx, middleware.AssetFavicon))),
				h.Link(h.Rel("stylesheet"), h.Href(middleware.AssetURL(ctx, middleware.AssetSiteCSS))),
				h.Script(h.Src(htmxSrc), g.Attr("nonce", nonce)),
				h.Script(h.Src(middleware.AssetURL(ctx, middleware.AssetHeaderJS)), g.Attr("nonce", nonce), g.Attr("defer")),
				h.Script(h.Src(middleware.AssetURL(ctx, middleware.AssetLeadFormJS)), g.Attr("nonce", nonce), g.Attr("defer")),
				structuredData(nonce),
			),
			h.Body(
				h.Class("min-h-screen bg-white"),
				g.Group(body),
				ToastRegion(),
			),
		),
	)
}

func seoHead(seo *models.SEO) g.Node {
	if seo == nil {
		return g.El("title", g.Text(SiteName))
	}

	nodes := []g.Node{
		g.El("title", g.Text(seo.Title)),
		h.Meta(h.Name("description"), h.Content(seo.Description)),
		g.If(seo.Keywords != "", h.Meta(h.Name("keywords"), h.Content(seo.Keywords))),
		g.If(seo.Canonical != "", h.Link(h.Rel("canonical"), h.Href(seo.Canonical))),
		h.Meta(g.Attr("property", "og:title"), h.Content(seo.GetOGTitle())),
		h.Meta(g.Attr("property", "og:description"), h.Content(seo.GetOGDesc())),
		h.Meta(g.Attr("property", "og:type"), h.Content(seo.OGType)),
		h.Meta(g.Attr("property", "og:locale"), h.Content(seo.OGLocale())),
		g.If(seo.Canonical != "", h.Meta(g.Attr("property", "og:url"), h.Content(seo.Canonical))),
		g.If(seo.OGImage != "", h.Meta(g.Attr("property", "og:image"), h.Content(seo.OGImage))),
		g.If(seo.TwitterCard != "", h.Meta(h.Name("twitter:card"), h.Content(seo.TwitterCard))),
	}
	for _, alt := range seo.AltLocales {
		if seo.Canonical == "" {
			break
		}
		nodes = append(nodes, h.Link(h.Rel("alternate"), g.Attr("hreflang", alt), h.Href(seo.Canonical+"?lang="+alt)))
	}
	return g.Group(nodes)
}

// structuredData describes the organisation for search engines
func structuredData(nonce string) g.Node {
	org := map[string]interface{}{
		"@context":  "https://schema.org",
		"@type":     "Organization",
		"name":      SiteName,
		"url":       WebsiteURL,
		"email":     ContactEmail,
		"telephone": "+79267318859",
	}
	return h.Script(h.Type("application/ld+json"), g.Attr("nonce", nonce), g.Raw(JSON(org)))
}
