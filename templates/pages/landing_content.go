package pages

// Card is an icon/title/description tile
type Card struct {
	Icon        string
	Title       string
	Description string
}

// CaseStudy is a client result block
type CaseStudy struct {
	Icon     string
	Client   string
	Problem  string
	Solution string
	Result   string
	Accent   string
}

// ProgrammeModule is one accordion entry of the training programme
type ProgrammeModule struct {
	Number  string
	Title   string
	Summary string
	Accent  string
}

// PricingPlan is a training format with its price
type PricingPlan struct {
	Icon     string
	Title    string
	Duration string
	Price    string
	Features []string
	Accent   string
}

const (
	heroTitle    = "Нейросети — ускоритель для B2B продаж и КАМ"
	heroSubtitle = "Как искусственный интеллект снимает рутину и ускоряет сделки в B2B-командах"
	heroFormat   = "Корпоративный тренинг: офлайн 1 день (6-7 часов) / онлайн 2 модуля × 2.5 часа"
	heroImage    = "https://cdn.poehali.dev/projects/ef60223c-4a9e-43e0-b23a-9fe748d10593/files/fe2b259e-3f3b-4bf7-8edd-fcf759b5c0c9.jpg"

	painTitle   = "Менеджеры тратят до 40% времени на рутину"
	painClosing = "AI уже умеет делать это быстрее. Научим его думать, как ваш отдел продаж."

	trainerName  = "Николай Лукша"
	trainerRole  = "Бизнес-тренер по В2В-продажам и работе КАМ"
	trainerStats = "15 лет в B2B | 100+ компаний | 300+ тренингов"
	trainerNote  = "Международный опыт обучения B2B-команд"
	trainerPhoto = "https://cdn.poehali.dev/files/5f9fb9bf-c2a4-4e66-809b-e5df09e39ded.png"
)

var painPoints = []Card{
	{Icon: "🗄", Title: "Анализ CRM и тендерной документации", Description: "Часы уходят на обработку данных и поиск информации"},
	{Icon: "📄", Title: "Подготовка КП и ответы на возражения", Description: "Однотипные задачи отнимают время от продаж"},
	{Icon: "🕒", Title: "Планирование и рутинные задачи", Description: "Ежедневная операционная работа снижает эффективность"},
}

var audience = []Card{
	{Icon: "👥", Title: "РОПы и коммерческие директора", Description: "Управление командой с AI-инструментами для повышения KPI"},
	{Icon: "📈", Title: "КАМы и менеджеры по продажам", Description: "Рост личной эффективности и увеличение результатов"},
	{Icon: "🏢", Title: "B2B-команды", Description: "Корпоративный формат обучения под задачи бизнеса"},
}

var outcomes = []Card{
	{Icon: "⏱", Title: "–8–10 часов рутины в неделю на менеджера"},
	{Icon: "⚡", Title: "КП за 15 минут вместо 2 часов"},
	{Icon: "🎯", Title: "Навык создания промптов под любые задачи"},
	{Icon: "🛡", Title: "Решения для кризисных ситуаций с клиентами"},
}

var caseStudies = []CaseStudy{
	{
		Icon:     "🏭",
		Client:   "Промышленный дистрибьютор",
		Problem:  "КП готовились 2+ часа",
		Solution: "Внедрили AI-промпты для КП",
		Result:   "Результат: 25 минут + 27% конверсия",
		Accent:   "secondary",
	},
	{
		Icon:     "🖥",
		Client:   "IT-компания",
		Problem:  "Рутина с CRM-отчетами",
		Solution: "Автоматизация анализа данных",
		Result:   "Результат: 3 часа экономии в неделю",
		Accent:   "primary",
	},
}

var programme = []ProgrammeModule{
	{Number: "01.", Title: "ИИ для «умной» подготовки", Summary: "Анализ рынка и конкурентов, лидогенерация через AI, обогащение CRM, создание ICP", Accent: "primary"},
	{Number: "02.", Title: "Промпт-инжиниринг для продавца", Summary: "Как правильно ставить задачи ИИ, создание библиотеки промптов, практические упражнения", Accent: "secondary"},
	{Number: "03.", Title: "ИИ в коммуникациях и КП", Summary: "Персонализация КП и презентаций, создание скриптов продаж, анализ звонков и переписок", Accent: "accent"},
	{Number: "04.", Title: "ИИ для роста ключевых клиентов (КАМ)", Summary: "Карта развития клиента, прогнозирование потребностей, до- и кросс-продажи с AI", Accent: "primary"},
	{Number: "05.", Title: "Интеграция ИИ в работу", Summary: "План внедрения в компанию, преодоление барьеров, этика использования AI, персональный план действий", Accent: "secondary"},
}

var reasons = []Card{
	{Icon: "⚡", Title: "Практика на реальных задачах", Description: "Не теория, а применимые навыки"},
	{Icon: "🎯", Title: "Корпоративный формат", Description: "Адаптация под ваш продукт и клиентов"},
	{Icon: "📖", Title: "20+ готовых промптов", Description: "Готовая библиотека для отдела продаж"},
	{Icon: "✅", Title: "Измеримый результат", Description: "План внедрения на 30 дней"},
}

var trainerClients = []string{"Сбер", "MARS", "МТС", "Яндекс"}

var pricing = []PricingPlan{
	{
		Icon:     "📍",
		Title:    "Офлайн-интенсив",
		Duration: "1 день (6-7 часов)",
		Price:    "от 150 000 ₽",
		Features: []string{"Адаптация под ваш продукт", "Раздаточные материалы", "Поддержка 7 дней"},
		Accent:   "primary",
	},
	{
		Icon:     "🎥",
		Title:    "Онлайн-формат",
		Duration: "2 модуля × 2.5 часа",
		Price:    "от 180 000 ₽",
		Features: []string{"Адаптация под ваш продукт", "Записи модулей", "Поддержка 7 дней"},
		Accent:   "secondary",
	},
}
