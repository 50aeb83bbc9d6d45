package components

import (
	"context"

	"btb_landing_go/services/i18n"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Footer renders the site footer with contacts and the privacy policy link
func Footer(ctx context.Context) g.Node {
	return h.Footer(
		h.Class("bg-gray-900 text-white py-12"),
		h.Div(
			h.Class("container mx-auto px-4"),
			h.Div(
				h.Class("grid md:grid-cols-3 gap-8"),
				h.Div(
					h.Div(h.Class("text-2xl font-bold mb-4"), g.Text(SiteName)),
					h.P(h.Class("text-gray-400"), g.Text(SiteTagline)),
				),
				h.Div(
					h.H4(h.Class("font-semibold mb-4"), g.Text("Контакты")),
					h.Div(
						h.Class("space-y-2 text-gray-400"),
						ContactLines("hover:text-white transition-colors"),
					),
				),
				h.Div(
					h.H4(h.Class("font-semibold mb-4"), g.Text("Ссылки")),
					h.Div(
						h.Class("space-y-2"),
						externalLink(TrainingsURL, "Программы обучения B2B продажам", "block text-gray-400 hover:text-white transition-colors"),
						externalLink(ArticlesURL, "Статьи о продажах", "block text-gray-400 hover:text-white transition-colors"),
						externalLink(VideoURL, "Видео о продажах", "block text-gray-400 hover:text-white transition-colors"),
					),
				),
			),
			h.Div(
				h.Class("border-t border-gray-800 mt-8 pt-8 text-center text-gray-400"),
				h.P(
					g.Text("© 2024 B2B Sales. Все права защищены. "),
					h.A(h.Href("/privacy"), h.Class("hover:text-white transition-colors underline"), g.Text(i18n.T(ctx, "nav.privacy"))),
				),
			),
		),
	)
}

// ContactLines renders phone, email and website paragraphs with linkClass on the links
func ContactLines(linkClass string) g.Node {
	return g.Group([]g.Node{
		h.P(g.Text("Телефон: "), h.A(h.Href(PhoneHref), h.Class(linkClass), g.Text(PhoneDisplay))),
		h.P(g.Text("Email: "), h.A(h.Href("mailto:"+ContactEmail), h.Class(linkClass), g.Text(ContactEmail))),
		h.P(g.Text("Сайт: "), externalLink(WebsiteURL, WebsiteLabel, linkClass)),
	})
}

func externalLink(href, label, class string) g.Node {
	return h.A(h.Href(href), h.Target("_blank"), h.Rel("noopener noreferrer"), h.Class(class), g.Text(label))
}
