package pages

import (
	"context"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
	"btb_landing_go/templates/components"
	"btb_landing_go/templates/partials"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// LandingData is the view model of the landing page
type LandingData struct {
	SEO          *models.SEO
	LeadForm     partials.LeadFormData
	Notification models.Notification
}

// Landing renders the full landing page
func Landing(data LandingData) templ.Component {
	return components.Build(func(ctx context.Context) g.Node {
		return components.Layout(ctx, data.SEO,
			components.Header(),
			h.Main(
				heroSection(),
				painSection(),
				audienceSection(),
				outcomesSection(),
				casesSection(),
				programmeSection(),
				reasonsSection(),
				trainerSection(),
				pricingSection(),
				contactSection(ctx, data.LeadForm),
			),
			components.Footer(ctx),
			initialToast(data.Notification),
		)
	})
}

// initialToast is shown after a non-htmx POST; htmx requests use the OOB swap
func initialToast(n models.Notification) g.Node {
	if n.IsZero() {
		return nil
	}
	return h.Div(
		h.ID("initial-toast"),
		h.Class("fixed bottom-4 right-4 z-50"),
		components.Toast(n),
	)
}

func ctaLink(label, class string) g.Node {
	return h.A(h.Href("#"+components.ContactFormID), h.Class("btn "+class), g.Text(label))
}

func sectionTitle(text, class string) g.Node {
	return h.H2(h.Class("text-4xl font-bold text-center "+class), g.Text(text))
}

func heroSection() g.Node {
	return h.Section(
		h.Class("relative min-h-screen flex items-center gradient-bg text-white overflow-hidden pt-20"),
		h.Div(
			h.Class("container mx-auto px-4 py-20 grid lg:grid-cols-2 gap-12 items-center relative z-10"),
			h.Div(
				h.Class("space-y-6 animate-fade-in"),
				h.H1(h.Class("text-5xl lg:text-6xl font-bold leading-tight"), g.Text(heroTitle)),
				h.P(h.Class("text-xl lg:text-2xl text-gray-100"), g.Text(heroSubtitle)),
				h.P(h.Class("text-lg text-gray-200"), g.Text(heroFormat)),
				h.Div(
					h.Class("flex flex-col sm:flex-row gap-4 pt-4"),
					ctaLink("Оставить заявку на программу", "bg-accent hover:bg-accent/90 text-white text-lg px-8 py-6 pulse-animation"),
					ctaLink("Скачать программу тренинга", "border-2 border-white text-white hover:bg-white hover:text-primary text-lg px-8 py-6"),
				),
			),
			h.Div(
				h.Class("animate-scale-in"),
				h.Img(h.Src(heroImage), h.Alt("AI Neural Network"), h.Class("rounded-2xl shadow-2xl")),
			),
		),
	)
}

func painSection() g.Node {
	return h.Section(
		h.Class("py-20 bg-gray-50"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle(painTitle, "mb-4 gradient-text"),
			h.Div(
				h.Class("grid md:grid-cols-3 gap-8 mt-12"),
				g.Map(painPoints, func(c Card) g.Node { return card(c, "card p-8") }),
			),
			h.Div(
				h.Class("text-center mt-12"),
				h.P(h.Class("text-2xl font-bold text-primary"), g.Text(painClosing)),
			),
		),
	)
}

func audienceSection() g.Node {
	return h.Section(
		h.Class("py-20"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Для кого этот тренинг?", "mb-12 gradient-text"),
			h.Div(
				h.Class("grid md:grid-cols-3 gap-8"),
				g.Map(audience, func(c Card) g.Node { return card(c, "card p-8 text-center") }),
			),
		),
	)
}

func outcomesSection() g.Node {
	return h.Section(
		h.Class("py-20 gradient-bg text-white"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Что получает ваша команда за 1 день обучения", "mb-12"),
			h.Div(
				h.Class("grid md:grid-cols-2 lg:grid-cols-4 gap-6"),
				g.Map(outcomes, func(c Card) g.Node {
					return h.Div(
						h.Class("bg-white/10 backdrop-blur-sm rounded-xl p-6 text-center"),
						icon(c.Icon),
						h.P(h.Class("text-lg font-semibold"), g.Text(c.Title)),
					)
				}),
			),
		),
	)
}

func casesSection() g.Node {
	return h.Section(
		h.Class("py-20"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Реальные результаты наших клиентов", "mb-12 gradient-text"),
			h.Div(
				h.Class("grid md:grid-cols-2 gap-8 max-w-5xl mx-auto"),
				g.Map(caseStudies, func(cs CaseStudy) g.Node {
					return h.Div(
						h.Class("card p-8 border-2 border-"+cs.Accent),
						h.Div(
							h.Class("flex items-center gap-3 mb-4"),
							icon(cs.Icon),
							h.H3(h.Class("text-xl font-bold"), g.Text(cs.Client)),
						),
						h.Div(
							h.Class("space-y-3 text-gray-700"),
							h.P(h.Strong(g.Text("Проблема:")), g.Text(" "+cs.Problem)),
							h.P(h.Strong(g.Text("Решение:")), g.Text(" "+cs.Solution)),
							h.P(h.Class("text-2xl font-bold text-"+cs.Accent), g.Text(cs.Result)),
						),
					)
				}),
			),
		),
	)
}

func programmeSection() g.Node {
	return h.Section(
		h.Class("py-20 bg-gray-50"),
		h.Div(
			h.Class("container mx-auto px-4 max-w-4xl"),
			sectionTitle("Программа тренинга: 5 ключевых модулей", "mb-12 gradient-text"),
			h.Div(
				h.Class("space-y-4"),
				g.Map(programme, func(m ProgrammeModule) g.Node {
					return g.El("details",
						h.Class("accordion-item bg-white rounded-lg px-6 border-2 border-"+m.Accent+"/20"),
						g.El("summary",
							h.Class("py-4 text-lg font-semibold cursor-pointer"),
							h.Span(h.Class("text-"+m.Accent+" mr-2"), g.Text(m.Number)),
							g.Text(" "+m.Title),
						),
						h.P(h.Class("text-gray-600 pt-2 pb-4"), g.Text(m.Summary)),
					)
				}),
			),
		),
	)
}

func reasonsSection() g.Node {
	return h.Section(
		h.Class("py-20"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Почему этот тренинг работает", "mb-12 gradient-text"),
			h.Div(
				h.Class("grid md:grid-cols-2 lg:grid-cols-4 gap-6"),
				g.Map(reasons, func(c Card) g.Node { return card(c, "card p-6 text-center") }),
			),
		),
	)
}

func trainerSection() g.Node {
	return h.Section(
		h.Class("py-20 bg-gray-50"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Автор и ведущий программы", "mb-4 gradient-text"),
			h.Div(
				h.Class("max-w-4xl mx-auto mt-12 card p-8 md:p-12"),
				h.Div(
					h.Class("grid md:grid-cols-3 gap-8 items-center"),
					h.Div(
						h.Class("md:col-span-1"),
						h.Img(h.Src(trainerPhoto), h.Alt(trainerName), h.Class("rounded-2xl shadow-lg w-full")),
					),
					h.Div(
						h.Class("md:col-span-2 space-y-4"),
						h.H3(h.Class("text-3xl font-bold"), g.Text(trainerName)),
						h.P(h.Class("text-xl text-gray-600"), g.Text(trainerRole)),
						h.P(h.Class("text-lg font-semibold text-primary"), g.Text(trainerStats)),
						h.P(h.Class("text-gray-600"), g.Text(trainerNote)),
						h.Div(
							h.Class("pt-4"),
							h.P(h.Class("text-sm text-gray-500 mb-3"), g.Text("Клиенты:")),
							h.Div(
								h.Class("flex flex-wrap gap-4 items-center"),
								g.Map(trainerClients, func(name string) g.Node {
									return h.Div(h.Class("px-4 py-2 bg-gray-100 rounded-lg font-semibold text-gray-700"), g.Text(name))
								}),
							),
						),
						h.Div(
							h.Class("flex gap-4"),
							h.A(h.Href(components.TrainingsURL), h.Target("_blank"), h.Rel("noopener noreferrer"), h.Class("text-primary hover:underline"), g.Text("Все программы →")),
							h.A(h.Href(components.VideoURL), h.Target("_blank"), h.Rel("noopener noreferrer"), h.Class("text-primary hover:underline"), g.Text("Видео →")),
						),
					),
				),
			),
		),
	)
}

func pricingSection() g.Node {
	return h.Section(
		h.Class("py-20"),
		h.Div(
			h.Class("container mx-auto px-4"),
			sectionTitle("Форматы и стоимость", "mb-12 gradient-text"),
			h.Div(
				h.Class("grid md:grid-cols-2 gap-8 max-w-5xl mx-auto"),
				g.Map(pricing, func(p PricingPlan) g.Node {
					return h.Div(
						h.Class("card p-8 border-2 border-"+p.Accent),
						h.Div(
							h.Class("text-center space-y-4"),
							icon(p.Icon),
							h.H3(h.Class("text-2xl font-bold"), g.Text(p.Title)),
							h.P(h.Class("text-gray-600"), g.Text(p.Duration)),
							h.Div(h.Class("py-4"), h.P(h.Class("text-4xl font-bold text-"+p.Accent), g.Text(p.Price))),
							h.Ul(
								h.Class("text-left space-y-2 text-gray-600"),
								g.Map(p.Features, func(f string) g.Node {
									return h.Li(h.Class("flex items-start gap-2"), h.Span(h.Class("text-"+p.Accent), g.Text("✓")), h.Span(g.Text(f)))
								}),
							),
							ctaLink("Оставить заявку", "w-full bg-"+p.Accent+" hover:bg-"+p.Accent+"/90 text-white py-6 text-lg"),
						),
					)
				}),
			),
		),
	)
}

func contactSection(ctx context.Context, form partials.LeadFormData) g.Node {
	return h.Section(
		h.ID(components.ContactFormID),
		h.Class("py-20 gradient-bg text-white"),
		h.Div(
			h.Class("container mx-auto px-4 max-w-2xl"),
			sectionTitle(i18n.T(ctx, "lead.form.title"), "mb-4"),
			h.P(h.Class("text-center text-xl mb-12 text-gray-100"), g.Text(i18n.T(ctx, "lead.form.subtitle"))),
			h.Div(
				h.Class("card p-8 bg-white/10 backdrop-blur-md border-white/20"),
				partials.LeadForm(ctx, form),
			),
		),
	)
}

func card(c Card, class string) g.Node {
	return h.Div(
		h.Class(class),
		icon(c.Icon),
		h.H3(h.Class("text-xl font-bold mb-2"), g.Text(c.Title)),
		g.If(c.Description != "", h.P(h.Class("text-gray-600"), g.Text(c.Description))),
	)
}

func icon(symbol string) g.Node {
	return h.Div(h.Class("icon text-4xl mb-4"), g.Attr("aria-hidden", "true"), g.Text(symbol))
}
