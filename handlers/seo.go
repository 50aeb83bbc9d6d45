package handlers

import (
	"btb_landing_go/config"
	"btb_landing_go/models"
	"btb_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const defaultOGImage = "https://cdn.poehali.dev/projects/ef60223c-4a9e-43e0-b23a-9fe748d10593/files/fe2b259e-3f3b-4bf7-8edd-fcf759b5c0c9.jpg"

type pageMeta struct {
	Path        string
	Title       string
	Description string
	Keywords    string
	TwitterCard string
	// Sitemap hints
	ChangeFreq string
	Priority   float32
}

// sitemapPages lists the indexable pages in sitemap order
var sitemapPages = []string{"landing", "privacy"}

// SEO configurations for public pages
var pageSEO = map[string]pageMeta{
	"landing": {
		Path:        "/",
		Title:       "Нейросети для B2B продаж и КАМ | Корпоративный тренинг B2B Sales",
		Description: "Корпоративный тренинг: как искусственный интеллект снимает рутину и ускоряет сделки в B2B-командах. Офлайн 1 день или онлайн 2 модуля.",
		Keywords:    "нейросети для продаж, AI в B2B продажах, тренинг КАМ, обучение отдела продаж, промпты для продавцов",
		TwitterCard: "summary_large_image",
		ChangeFreq:  "weekly",
		Priority:    1.0,
	},
	"privacy": {
		Path:        "/privacy",
		Title:       "Политика конфиденциальности | B2B Sales",
		Description: "Политика конфиденциальности B2B Sales: какие персональные данные мы собираем, как обрабатываем и защищаем их.",
		Keywords:    "политика конфиденциальности, персональные данные, 152-ФЗ",
		TwitterCard: "summary",
		ChangeFreq:  "yearly",
		Priority:    0.3,
	},
}

// GetSEO returns the SEO configuration for a page rooted at baseURL, or nil for unknown pages
func GetSEO(page, baseURL, locale string) *models.SEO {
	meta, ok := pageSEO[page]
	if !ok {
		return nil
	}

	alt := "en"
	if locale == "en" {
		alt = "ru"
	}

	seo := models.DefaultSEO(meta.Title, meta.Description).
		WithCanonical(baseURL+meta.Path).
		WithOGImage(defaultOGImage).
		WithLocale(locale, alt)
	seo.Keywords = meta.Keywords
	seo.TwitterCard = meta.TwitterCard
	return seo
}

func seoFor(c echo.Context, page string) *models.SEO {
	cfg := c.Get("config").(*config.Config)
	return GetSEO(page, cfg.AppURL, i18n.GetLocale(c.Request().Context()))
}
