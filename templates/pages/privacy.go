package pages

import (
	"context"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
	"btb_landing_go/templates/components"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PrivacyPolicyUpdated is the revision date shown under the policy text
const PrivacyPolicyUpdated = "18 ноября 2024 года"

type policySection struct {
	Title      string
	Paragraphs []string
	Items      []string
}

var privacySections = []policySection{
	{
		Title: "1. Общие положения",
		Paragraphs: []string{
			"Настоящая Политика конфиденциальности персональных данных (далее — Политика) действует в отношении всей информации, которую B2B Sales (далее — Компания) может получить о пользователе во время использования сайта www.btbsales.ru.",
			"Использование сайта означает безоговорочное согласие пользователя с настоящей Политикой и указанными в ней условиями обработки его персональной информации.",
		},
	},
	{
		Title:      "2. Персональная информация пользователей",
		Paragraphs: []string{"В рамках настоящей Политики под «персональной информацией пользователя» понимаются:"},
		Items: []string{
			"Персональная информация, которую пользователь предоставляет о себе самостоятельно при заполнении форм обратной связи, включая персональные данные пользователя (имя, email, телефон).",
			"Данные, которые автоматически передаются в процессе использования сайта с помощью установленного на устройстве пользователя программного обеспечения (IP-адрес, информация из cookie, информация о браузере).",
		},
	},
	{
		Title:      "3. Цели обработки персональной информации",
		Paragraphs: []string{"Компания собирает и хранит только ту персональную информацию, которая необходима для предоставления услуг:"},
		Items: []string{
			"Связь с пользователем для предоставления информации об услугах и программах обучения",
			"Подготовка коммерческих предложений",
			"Организация и проведение тренингов",
			"Улучшение качества услуг и сервиса",
			"Статистический анализ посещаемости сайта",
		},
	},
	{
		Title:      "4. Условия обработки персональной информации",
		Paragraphs: []string{"Компания обрабатывает персональную информацию пользователя на следующих условиях:"},
		Items: []string{
			"Обработка производится с согласия пользователя на обработку его персональной информации",
			"Обработка необходима для исполнения договора, стороной которого является пользователь",
			"Обработка персональных данных осуществляется с соблюдением принципов и правил, предусмотренных Федеральным законом от 27.07.2006 N 152-ФЗ «О персональных данных»",
		},
	},
	{
		Title: "5. Защита персональной информации",
		Paragraphs: []string{
			"Компания принимает необходимые и достаточные организационные и технические меры для защиты персональной информации пользователя от неправомерного или случайного доступа, уничтожения, изменения, блокирования, копирования, распространения, а также от иных неправомерных действий с ней третьих лиц.",
		},
	},
	{
		Title: "6. Изменение Политики конфиденциальности",
		Paragraphs: []string{
			"Компания имеет право вносить изменения в настоящую Политику конфиденциальности. При внесении изменений в актуальной редакции указывается дата последнего обновления. Новая редакция Политики вступает в силу с момента ее размещения на сайте.",
		},
	},
	{
		Title:      "7. Обратная связь",
		Paragraphs: []string{"Все предложения или вопросы по поводу настоящей Политики следует направлять по адресу:"},
	},
}

// Privacy renders the privacy policy page
func Privacy(seo *models.SEO) templ.Component {
	return components.Build(func(ctx context.Context) g.Node {
		return components.Layout(ctx, seo,
			components.StaticHeader(),
			h.Main(
				h.Class("container mx-auto px-4 py-16 max-w-4xl"),
				backLink(ctx),
				h.H1(h.Class("text-4xl font-bold mb-8 gradient-text"), g.Text(i18n.T(ctx, "nav.privacy"))),
				h.Div(
					h.Class("prose prose-lg max-w-none space-y-6 text-gray-700"),
					g.Map(privacySections, renderPolicySection),
					h.Div(
						h.Class("bg-gray-50 p-6 rounded-lg mt-4"),
						h.P(h.Class("font-semibold"), g.Text(components.SiteName)),
						components.ContactLines("text-primary hover:underline"),
					),
					h.Div(
						h.Class("mt-12 pt-8 border-t border-gray-200 text-sm text-gray-500"),
						h.P(g.Text("Дата последнего обновления: "+PrivacyPolicyUpdated)),
					),
				),
			),
			components.Footer(ctx),
		)
	})
}

// backLink goes to the landing page; header.js upgrades it to history.back when there is history
func backLink(ctx context.Context) g.Node {
	return h.A(
		h.Href("/"),
		h.Class("btn btn-ghost mb-8 inline-flex items-center"),
		g.Attr("data-history-back"),
		g.Text("← "+i18n.T(ctx, "nav.back")),
	)
}

func renderPolicySection(s policySection) g.Node {
	return h.Section(
		h.H2(h.Class("text-2xl font-bold text-gray-900 mb-4"), g.Text(s.Title)),
		g.Map(s.Paragraphs, func(p string) g.Node { return h.P(g.Text(p)) }),
		g.If(len(s.Items) > 0,
			h.Ul(
				h.Class("list-disc pl-6 space-y-2"),
				g.Map(s.Items, func(item string) g.Node { return h.Li(g.Text(item)) }),
			),
		),
	)
}
