package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSitemapHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, GetSitemapHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	body := rec.Body.String()
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:xhtml="http://www.w3.org/1999/xhtml">`)
	assert.Contains(t, body, "<loc>https://btbsales.ru/</loc>")
	assert.Contains(t, body, "<loc>https://btbsales.ru/privacy</loc>")
	assert.Contains(t, body, `<xhtml:link rel="alternate" hreflang="en" href="https://btbsales.ru/privacy?lang=en"></xhtml:link>`)
}

func TestBuildSitemap(t *testing.T) {
	set := buildSitemap("https://btbsales.ru")

	require.Len(t, set.URLs, 2)
	assert.Equal(t, "https://btbsales.ru/", set.URLs[0].Loc)
	assert.Equal(t, float32(1.0), set.URLs[0].Priority)
	assert.Equal(t, "yearly", set.URLs[1].ChangeFreq)
	require.Len(t, set.URLs[0].Alternates, 2)
	assert.Equal(t, "ru", set.URLs[0].Alternates[0].Hreflang)
	assert.Equal(t, "https://btbsales.ru/?lang=ru", set.URLs[0].Alternates[0].Href)
}

func TestGetRobotsHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)

	require.NoError(t, GetRobotsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disallow: /api/\nDisallow: /lead\n")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://btbsales.ru/sitemap.xml")
}

func TestGetSEO(t *testing.T) {
	seo := GetSEO("landing", "https://btbsales.ru", "ru")
	require.NotNil(t, seo)
	assert.Equal(t, "https://btbsales.ru/", seo.Canonical)
	assert.Equal(t, []string{"en"}, seo.AltLocales)
	assert.Equal(t, "summary_large_image", seo.TwitterCard)

	seo = GetSEO("privacy", "https://btbsales.ru", "en")
	require.NotNil(t, seo)
	assert.Equal(t, "https://btbsales.ru/privacy", seo.Canonical)
	assert.Equal(t, "en", seo.Locale)
	assert.Equal(t, []string{"ru"}, seo.AltLocales)

	assert.Nil(t, GetSEO("unknown", "https://btbsales.ru", "ru"))
}
